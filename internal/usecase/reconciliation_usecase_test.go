package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
	"github.com/nuvobank/ledger/internal/usecase/mocks"
)

type reconFixture struct {
	accRepo   *mocks.MockAccountRepository
	entryRepo *mocks.MockEntryRepository
	corpRepo  *mocks.MockCorporateRepository
	cache     *mocks.MockCache
	uc        *usecase.ReconciliationUseCase
}

func newReconFixture() *reconFixture {
	f := &reconFixture{
		accRepo:   mocks.NewMockAccountRepository(),
		entryRepo: mocks.NewMockEntryRepository(),
		corpRepo:  mocks.NewMockCorporateRepository(),
		cache:     mocks.NewMockCache(),
	}
	f.corpRepo.Seed(houseAccount("0", "0", "0"))
	f.uc = usecase.NewReconciliationUseCase(f.accRepo, f.entryRepo, f.corpRepo, f.cache)
	return f
}

func (f *reconFixture) addEntry(t *testing.T, id, accountID string, entryType domain.EntryType, amount string, status domain.EntryStatus) {
	t.Helper()
	err := f.entryRepo.Create(context.Background(), nil, &domain.Entry{
		ID:        id,
		AccountID: accountID,
		UserID:    "user-1",
		Type:      entryType,
		Amount:    decimal.RequireFromString(amount),
		Status:    status,
		Reference: "REF-" + id,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReconciliationUseCase_CheckAccount(t *testing.T) {
	f := newReconFixture()
	f.accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "100"))
	f.addEntry(t, "ent-1", "acc-1", domain.EntryTypeCredit, "150", domain.EntryStatusCompleted)
	f.addEntry(t, "ent-2", "acc-1", domain.EntryTypeDebit, "50", domain.EntryStatusCompleted)
	// PENDING entries never count toward the invariant.
	f.addEntry(t, "ent-3", "acc-1", domain.EntryTypeCredit, "999", domain.EntryStatusPending)

	mismatch, err := f.uc.CheckAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mismatch != nil {
		t.Errorf("expected account to reconcile, got mismatch %s vs %s", mismatch.Stored, mismatch.Computed)
	}
}

func TestReconciliationUseCase_CheckAccount_DetectsDrift(t *testing.T) {
	f := newReconFixture()
	f.accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "120"))
	f.addEntry(t, "ent-1", "acc-1", domain.EntryTypeCredit, "100", domain.EntryStatusCompleted)

	mismatch, err := f.uc.CheckAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mismatch == nil {
		t.Fatal("expected mismatch, got nil")
	}
	if !mismatch.Stored.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected stored 120, got %s", mismatch.Stored)
	}
	if !mismatch.Computed.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected computed 100, got %s", mismatch.Computed)
	}
}

func TestReconciliationUseCase_CheckAll(t *testing.T) {
	f := newReconFixture()
	f.accRepo.Seed(
		activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "100"),
		activeAccount("acc-2", "user-2", "2222222222", domain.AccountTypeChecking, "55"),
	)
	f.addEntry(t, "ent-1", "acc-1", domain.EntryTypeCredit, "100", domain.EntryStatusCompleted)
	// acc-2 is drifted: stored 55, entries sum to 50.
	f.addEntry(t, "ent-2", "acc-2", domain.EntryTypeCredit, "50", domain.EntryStatusCompleted)

	report, err := f.uc.CheckAll(context.Background(), testCorporateID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalAccounts != 2 {
		t.Errorf("expected 2 accounts, got %d", report.TotalAccounts)
	}
	if report.Reconciled != 1 {
		t.Errorf("expected 1 reconciled, got %d", report.Reconciled)
	}
	if len(report.Mismatches) != 1 || report.Mismatches[0].AccountID != "acc-2" {
		t.Errorf("expected one mismatch for acc-2, got %+v", report.Mismatches)
	}
	if !report.CorporateReconciled {
		t.Error("expected empty corporate account to reconcile")
	}

	// The report round-trips through the cache.
	cached, err := f.uc.LatestReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached == nil {
		t.Fatal("expected cached report, got nil")
	}
	if cached.TotalAccounts != report.TotalAccounts || cached.Reconciled != report.Reconciled {
		t.Errorf("cached report differs: %+v vs %+v", cached, report)
	}
}

func TestReconciliationUseCase_CheckCorporate_DetectsDrift(t *testing.T) {
	f := newReconFixture()

	corporate, err := f.corpRepo.GetByID(context.Background(), testCorporateID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	corporate.Balance = decimal.NewFromInt(10)

	mismatch, err := f.uc.CheckCorporate(context.Background(), testCorporateID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mismatch == nil {
		t.Fatal("expected mismatch, got nil")
	}
	if !mismatch.Computed.IsZero() {
		t.Errorf("expected computed 0, got %s", mismatch.Computed)
	}
}

func TestReconciliationUseCase_LatestReport_Empty(t *testing.T) {
	f := newReconFixture()

	report, err := f.uc.LatestReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != nil {
		t.Errorf("expected no cached report, got %+v", report)
	}
}
