package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

func TestRunOnceSweepsAndAccrues(t *testing.T) {
	interest := &stubInterest{}
	deposits := &stubDeposits{
		matured: []*domain.FixedDeposit{{ID: "fd-1"}, {ID: "fd-2"}},
	}
	s := newTestScheduler(interest, deposits)

	s.runOnce(context.Background())

	if deposits.calls != 1 {
		t.Fatalf("expected one sweep call, got %d", deposits.calls)
	}
	if len(interest.periods) != 1 {
		t.Fatalf("expected one accrual run, got %d", len(interest.periods))
	}
	if want := previousPeriod(time.Now().UTC()); interest.periods[0] != want {
		t.Fatalf("expected accrual for %s, got %s", want, interest.periods[0])
	}
}

func TestAccrualRunsOncePerPeriod(t *testing.T) {
	interest := &stubInterest{}
	deposits := &stubDeposits{}
	s := newTestScheduler(interest, deposits)

	ctx := context.Background()
	s.runOnce(ctx)
	s.runOnce(ctx)
	s.runOnce(ctx)

	if len(interest.periods) != 1 {
		t.Fatalf("expected a single accrual run for the period, got %d", len(interest.periods))
	}
}

func TestAccrualRetriesAfterFailure(t *testing.T) {
	interest := &stubInterest{err: errors.New("db down")}
	deposits := &stubDeposits{}
	s := newTestScheduler(interest, deposits)

	ctx := context.Background()
	s.runOnce(ctx)

	interest.err = nil
	s.runOnce(ctx)

	// Both attempts reached the runner; the period is only marked done on
	// the successful one.
	if len(interest.periods) != 2 {
		t.Fatalf("expected failed run to be retried, got %d runs", len(interest.periods))
	}
	if s.lastPeriod != interest.periods[1] {
		t.Fatalf("expected period to be recorded after success")
	}
}

func TestSweepErrorDoesNotBlockAccrual(t *testing.T) {
	interest := &stubInterest{}
	deposits := &stubDeposits{err: errors.New("db down")}
	s := newTestScheduler(interest, deposits)

	s.runOnce(context.Background())

	if len(interest.periods) != 1 {
		t.Fatalf("expected accrual to run despite sweep failure")
	}
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	s := newTestScheduler(&stubInterest{}, &stubDeposits{})
	s.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "2026-08"},
		{time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC), "2026-02"},
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "2025-12"},
	}

	for _, tt := range tests {
		if got := previousPeriod(tt.now); got != tt.want {
			t.Fatalf("previousPeriod(%s) = %s, want %s", tt.now, got, tt.want)
		}
	}
}

func newTestScheduler(interest *stubInterest, deposits *stubDeposits) *Scheduler {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return New(Config{
		Interest: interest,
		Deposits: deposits,
		Logger:   logger,
		Interval: 5 * time.Millisecond,
	})
}

type stubInterest struct {
	periods []string
	err     error
}

func (s *stubInterest) Run(ctx context.Context, period string) (*usecase.AccrualResult, error) {
	s.periods = append(s.periods, period)
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.AccrualResult{
		Period:            period,
		AccountsProcessed: 1,
		TotalCredited:     decimal.NewFromInt(1),
	}, nil
}

type stubDeposits struct {
	matured []*domain.FixedDeposit
	calls   int
	err     error
}

func (s *stubDeposits) SweepMatured(ctx context.Context) ([]*domain.FixedDeposit, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.matured, nil
}
