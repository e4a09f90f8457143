package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
	"github.com/nuvobank/ledger/internal/usecase/mocks"
)

type depositFixture struct {
	accRepo     *mocks.MockAccountRepository
	entryRepo   *mocks.MockEntryRepository
	depositRepo *mocks.MockDepositRepository
	uc          *usecase.DepositUseCase
}

func newDepositFixture() *depositFixture {
	f := &depositFixture{
		accRepo:     mocks.NewMockAccountRepository(),
		entryRepo:   mocks.NewMockEntryRepository(),
		depositRepo: mocks.NewMockDepositRepository(),
	}
	f.uc = usecase.NewDepositUseCase(
		mocks.NewMockTransactionManager(),
		f.accRepo,
		f.entryRepo,
		f.depositRepo,
		mocks.NewMockRetrier(),
		mocks.NewMockIDGenerator(),
	)
	return f
}

func TestDepositUseCase_Create(t *testing.T) {
	f := newDepositFixture()
	f.accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "5000"))

	deposit, err := f.uc.Create(context.Background(), usecase.CreateDepositInput{
		UserID:         "user-1",
		AccountID:      "acc-1",
		Amount:         decimal.NewFromInt(1000),
		AnnualRate:     decimal.NewFromInt(5),
		DurationMonths: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DepositStatusActive, deposit.Status)
	assert.True(t, deposit.Principal.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, deposit.CreatedAt.AddDate(0, 12, 0), deposit.MaturesAt)

	// The principal leaves the spendable balance immediately.
	account, err := f.accRepo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(4000)))

	entries, err := f.entryRepo.GetByAccount(context.Background(), "acc-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EntryTypeDebit, entries[0].Type)
	assert.Equal(t, domain.CategoryDeposit, entries[0].Category)
	assert.Equal(t, "FD-"+deposit.ID+"-OPEN", entries[0].Reference)
}

func TestDepositUseCase_Create_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateDepositInput
		want  error
	}{
		{
			name: "insufficient balance",
			input: usecase.CreateDepositInput{
				UserID: "user-1", AccountID: "acc-1",
				Amount: decimal.NewFromInt(10000), AnnualRate: decimal.NewFromInt(5), DurationMonths: 12,
			},
			want: domain.ErrInsufficientBalance,
		},
		{
			name: "non-positive principal",
			input: usecase.CreateDepositInput{
				UserID: "user-1", AccountID: "acc-1",
				Amount: decimal.Zero, AnnualRate: decimal.NewFromInt(5), DurationMonths: 12,
			},
			want: domain.ErrInvalidAmount,
		},
		{
			name: "non-positive rate",
			input: usecase.CreateDepositInput{
				UserID: "user-1", AccountID: "acc-1",
				Amount: decimal.NewFromInt(100), AnnualRate: decimal.Zero, DurationMonths: 12,
			},
			want: domain.ErrInvalidRate,
		},
		{
			name: "zero duration",
			input: usecase.CreateDepositInput{
				UserID: "user-1", AccountID: "acc-1",
				Amount: decimal.NewFromInt(100), AnnualRate: decimal.NewFromInt(5), DurationMonths: 0,
			},
			want: domain.ErrInvalidDuration,
		},
		{
			name: "not account owner",
			input: usecase.CreateDepositInput{
				UserID: "user-2", AccountID: "acc-1",
				Amount: decimal.NewFromInt(100), AnnualRate: decimal.NewFromInt(5), DurationMonths: 12,
			},
			want: domain.ErrNotAccountOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDepositFixture()
			f.accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "5000"))

			_, err := f.uc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)

			account, getErr := f.accRepo.GetByID(context.Background(), "acc-1")
			require.NoError(t, getErr)
			assert.True(t, account.Balance.Equal(decimal.NewFromInt(5000)), "rejected deposit must not debit")
		})
	}
}

func seededDeposit(id string, createdDaysAgo int, maturesIn time.Duration) *domain.FixedDeposit {
	now := time.Now().UTC()
	return &domain.FixedDeposit{
		ID:             id,
		UserID:         "user-1",
		AccountID:      "acc-1",
		Principal:      decimal.NewFromInt(1000),
		AnnualRate:     decimal.NewFromInt(5),
		DurationMonths: 12,
		MaturesAt:      now.Add(maturesIn),
		Status:         domain.DepositStatusActive,
		CreatedAt:      now.AddDate(0, 0, -createdDaysAgo),
	}
}

func TestDepositUseCase_Withdraw(t *testing.T) {
	f := newDepositFixture()
	f.accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "0"))
	f.depositRepo.Seed(seededDeposit("fd-1", 365, -time.Hour))

	result, err := f.uc.Withdraw(context.Background(), "user-1", "fd-1")
	require.NoError(t, err)

	// 1000 at 5% over 365 elapsed days is exactly one year of interest.
	assert.True(t, result.Interest.Equal(decimal.RequireFromString("50.00")),
		"expected 50.00 interest, got %s", result.Interest)
	assert.Equal(t, domain.DepositStatusWithdrawn, result.Deposit.Status)
	require.NotNil(t, result.Deposit.WithdrawnAt)

	account, err := f.accRepo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("1050.00")))

	require.NotNil(t, result.CreditEntry)
	assert.Equal(t, domain.EntryTypeCredit, result.CreditEntry.Type)
	assert.Equal(t, "FD-fd-1-CLOSE", result.CreditEntry.Reference)
}

func TestDepositUseCase_Withdraw_BeforeMaturity(t *testing.T) {
	f := newDepositFixture()
	f.accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "0"))
	f.depositRepo.Seed(seededDeposit("fd-1", 30, 24*time.Hour))

	_, err := f.uc.Withdraw(context.Background(), "user-1", "fd-1")
	assert.ErrorIs(t, err, domain.ErrDepositNotMatured)

	deposit, getErr := f.depositRepo.GetByID(context.Background(), "fd-1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.DepositStatusActive, deposit.Status)
}

func TestDepositUseCase_Withdraw_Twice(t *testing.T) {
	f := newDepositFixture()
	f.accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "0"))
	f.depositRepo.Seed(seededDeposit("fd-1", 365, -time.Hour))

	_, err := f.uc.Withdraw(context.Background(), "user-1", "fd-1")
	require.NoError(t, err)

	_, err = f.uc.Withdraw(context.Background(), "user-1", "fd-1")
	assert.ErrorIs(t, err, domain.ErrDepositAlreadyWithdrawn)

	account, getErr := f.accRepo.GetByID(context.Background(), "acc-1")
	require.NoError(t, getErr)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("1050.00")), "second withdrawal must not pay out")
}

func TestDepositUseCase_Withdraw_WrongUser(t *testing.T) {
	f := newDepositFixture()
	f.accRepo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "0"))
	f.depositRepo.Seed(seededDeposit("fd-1", 365, -time.Hour))

	_, err := f.uc.Withdraw(context.Background(), "user-2", "fd-1")
	assert.ErrorIs(t, err, domain.ErrNotAccountOwner)
}

func TestDepositUseCase_SweepMatured(t *testing.T) {
	f := newDepositFixture()

	matured := seededDeposit("fd-1", 400, -time.Hour)
	pending := seededDeposit("fd-2", 30, 300*24*time.Hour)
	withdrawn := seededDeposit("fd-3", 400, -time.Hour)
	withdrawn.Status = domain.DepositStatusWithdrawn
	f.depositRepo.Seed(matured, pending, withdrawn)

	ready, err := f.uc.SweepMatured(context.Background())
	require.NoError(t, err)

	require.Len(t, ready, 1)
	assert.Equal(t, "fd-1", ready[0].ID)
}

func TestFixedDeposit_EffectiveStatus(t *testing.T) {
	now := time.Now().UTC()

	active := seededDeposit("fd-1", 30, 24*time.Hour)
	assert.Equal(t, domain.DepositStatusActive, active.EffectiveStatus(now))

	matured := seededDeposit("fd-2", 400, -time.Hour)
	assert.Equal(t, domain.DepositStatusMatured, matured.EffectiveStatus(now))

	withdrawn := seededDeposit("fd-3", 400, -time.Hour)
	withdrawn.Status = domain.DepositStatusWithdrawn
	assert.Equal(t, domain.DepositStatusWithdrawn, withdrawn.EffectiveStatus(now))
}
