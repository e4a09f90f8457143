package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/infrastructure/metrics"
	"github.com/nuvobank/ledger/internal/usecase"
)

// InterestRunner runs one monthly interest accrual batch.
type InterestRunner interface {
	Run(ctx context.Context, period string) (*usecase.AccrualResult, error)
}

// DepositSweeper reports fixed deposits that have passed their maturity date.
type DepositSweeper interface {
	SweepMatured(ctx context.Context) ([]*domain.FixedDeposit, error)
}

// Scheduler drives the periodic ledger jobs: the matured-deposit sweep on
// every tick, and the interest accrual once per closed calendar month.
// Both jobs are idempotent, so overlapping runs after a restart are harmless.
type Scheduler struct {
	interest InterestRunner
	deposits DepositSweeper
	metrics  *metrics.Metrics
	logger   *slog.Logger
	interval time.Duration

	lastPeriod string
}

// Config for Scheduler.
type Config struct {
	Interest InterestRunner
	Deposits DepositSweeper
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Interval time.Duration // Polling interval
}

// New creates a new Scheduler.
func New(cfg Config) *Scheduler {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Scheduler{
		interest: cfg.Interest,
		deposits: cfg.Deposits,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		interval: cfg.Interval,
	}
}

// Start begins the scheduler loop.
// It runs continuously until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.sweepDeposits(ctx); err != nil {
		s.logger.Error("deposit sweep failed", slog.String("error", err.Error()))
	}
	if err := s.accrueInterest(ctx); err != nil {
		s.logger.Error("interest accrual failed", slog.String("error", err.Error()))
	}
}

func (s *Scheduler) sweepDeposits(ctx context.Context) error {
	matured, err := s.deposits.SweepMatured(ctx)
	if err != nil {
		return err
	}
	if len(matured) == 0 {
		return nil
	}

	if s.metrics != nil {
		s.metrics.DepositsSwept.Add(float64(len(matured)))
	}
	s.logger.Info("matured deposits awaiting withdrawal", slog.Int("count", len(matured)))
	return nil
}

// accrueInterest accrues the previous calendar month once it has closed.
// The accrual engine is idempotent per period, so re-running after a restart
// only skips accounts that are already credited.
func (s *Scheduler) accrueInterest(ctx context.Context) error {
	period := previousPeriod(time.Now().UTC())
	if period == s.lastPeriod {
		return nil
	}

	result, err := s.interest.Run(ctx, period)
	if err != nil {
		return err
	}
	s.lastPeriod = period

	if s.metrics != nil {
		s.metrics.InterestRuns.Inc()
		s.metrics.InterestAccrued.Add(float64(result.AccountsProcessed))
		s.metrics.AccrualFailures.Add(float64(len(result.Failures)))
	}

	s.logger.Info("interest accrual completed",
		slog.String("period", result.Period),
		slog.Int("processed", result.AccountsProcessed),
		slog.Int("skipped", result.AccountsSkipped),
		slog.Int("failures", len(result.Failures)),
		slog.String("total_credited", result.TotalCredited.String()))
	return nil
}

// previousPeriod returns the last closed calendar month. Going through the
// first of the current month avoids AddDate normalization on month-end days.
func previousPeriod(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 0, -1).Format("2006-01")
}
