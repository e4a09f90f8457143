package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
	"github.com/nuvobank/ledger/internal/usecase/mocks"
)

func newInterestUseCase(accRepo *mocks.MockAccountRepository, entryRepo *mocks.MockEntryRepository) *usecase.InterestUseCase {
	return usecase.NewInterestUseCase(
		mocks.NewMockTransactionManager(),
		accRepo,
		entryRepo,
		mocks.NewMockRetrier(),
		mocks.NewMockIDGenerator(),
		domain.DefaultRateTable(),
	)
}

func TestInterestUseCase_Run(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "1000"))

	uc := newInterestUseCase(accRepo, entryRepo)
	result, err := uc.Run(context.Background(), "2026-09")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AccountsProcessed)
	assert.Equal(t, 0, result.AccountsSkipped)
	assert.Empty(t, result.Failures)

	// 1000 at 2.5% annually is 2.0833../month, rounded half-up to cents.
	assert.True(t, result.TotalCredited.Equal(decimal.RequireFromString("2.08")),
		"expected 2.08 credited, got %s", result.TotalCredited)

	account, err := accRepo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("1002.08")))

	entries, err := entryRepo.GetByAccount(context.Background(), "acc-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EntryTypeCredit, entries[0].Type)
	assert.Equal(t, domain.CategoryInterest, entries[0].Category)
	assert.Equal(t, "INT-2026-09-1111111111", entries[0].Reference)
}

func TestInterestUseCase_Run_SecondRunIsNoOp(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "1000"))

	uc := newInterestUseCase(accRepo, entryRepo)
	_, err := uc.Run(context.Background(), "2026-09")
	require.NoError(t, err)

	second, err := uc.Run(context.Background(), "2026-09")
	require.NoError(t, err)

	assert.Equal(t, 0, second.AccountsProcessed)
	assert.Equal(t, 1, second.AccountsSkipped)
	assert.True(t, second.TotalCredited.IsZero())

	account, err := accRepo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("1002.08")), "re-run must not credit twice")
}

func TestInterestUseCase_Run_NewPeriodAccruesAgain(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "1000"))

	uc := newInterestUseCase(accRepo, entryRepo)
	_, err := uc.Run(context.Background(), "2026-09")
	require.NoError(t, err)

	next, err := uc.Run(context.Background(), "2026-10")
	require.NoError(t, err)
	assert.Equal(t, 1, next.AccountsProcessed)

	entries, err := entryRepo.GetByAccount(context.Background(), "acc-1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestInterestUseCase_Run_SkipsBelowMinimumAndNonPositive(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	accRepo.Seed(
		// CHECKING pays nothing below its 100 minimum.
		activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeChecking, "50"),
		activeAccount("acc-2", "user-2", "2222222222", domain.AccountTypeSavings, "0"),
		activeAccount("acc-3", "user-3", "3333333333", domain.AccountTypeSavings, "1000"),
	)

	uc := newInterestUseCase(accRepo, entryRepo)
	result, err := uc.Run(context.Background(), "2026-09")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AccountsProcessed)
	assert.Equal(t, 2, result.AccountsSkipped)

	for _, id := range []string{"acc-1", "acc-2"} {
		entries, err := entryRepo.GetByAccount(context.Background(), id, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, entries, "account %s must not accrue", id)
	}
}

func TestInterestUseCase_Run_OneFailureDoesNotAbortBatch(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	accRepo.Seed(
		activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "1000"),
		activeAccount("acc-2", "user-2", "2222222222", domain.AccountTypeSavings, "2000"),
	)

	lockFailure := errors.New("lock timeout")
	accRepo.GetByIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
		if id == "acc-1" {
			return nil, lockFailure
		}
		return accRepo.GetByID(ctx, id)
	}

	uc := newInterestUseCase(accRepo, entryRepo)
	result, err := uc.Run(context.Background(), "2026-09")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AccountsProcessed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "acc-1", result.Failures[0].AccountID)
	assert.ErrorIs(t, result.Failures[0].Err, lockFailure)

	account, err := accRepo.GetByID(context.Background(), "acc-2")
	require.NoError(t, err)
	assert.True(t, account.Balance.GreaterThan(decimal.NewFromInt(2000)), "healthy account still accrues")
}

func TestInterestUseCase_Run_RequiresPeriod(t *testing.T) {
	uc := newInterestUseCase(mocks.NewMockAccountRepository(), mocks.NewMockEntryRepository())
	_, err := uc.Run(context.Background(), "")
	assert.Error(t, err)
}

func TestRateTable_TierFallback(t *testing.T) {
	table := domain.DefaultRateTable()

	tier := table.TierFor(domain.AccountType("UNKNOWN"))
	assert.True(t, tier.AnnualRate.Equal(table.Default.AnnualRate))

	savings := table.TierFor(domain.AccountTypeSavings)
	assert.True(t, savings.AnnualRate.Equal(decimal.RequireFromString("2.5")))
}
