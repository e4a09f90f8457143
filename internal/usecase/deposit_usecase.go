package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
)

// DepositUseCase manages the fixed-deposit lifecycle: locking funds out of an
// account's spendable balance at creation and releasing principal plus
// realized interest back after maturity.
type DepositUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	depositRepo DepositRepository
	retrier     Retrier
	idGen       IDGenerator
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	depositRepo DepositRepository,
	retrier Retrier,
	idGen IDGenerator,
) *DepositUseCase {
	return &DepositUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		depositRepo: depositRepo,
		retrier:     retrier,
		idGen:       idGen,
	}
}

// CreateDepositInput represents a request to open a fixed deposit.
type CreateDepositInput struct {
	UserID         string
	AccountID      string
	Amount         decimal.Decimal
	AnnualRate     decimal.Decimal
	DurationMonths int
}

// Create debits the funding account and opens the deposit in ACTIVE status.
func (uc *DepositUseCase) Create(ctx context.Context, input CreateDepositInput) (*domain.FixedDeposit, error) {
	now := time.Now().UTC()

	deposit := &domain.FixedDeposit{
		ID:             uc.idGen.Generate(),
		UserID:         input.UserID,
		AccountID:      input.AccountID,
		Principal:      input.Amount,
		AnnualRate:     input.AnnualRate,
		DurationMonths: input.DurationMonths,
		MaturesAt:      now.AddDate(0, input.DurationMonths, 0),
		Status:         domain.DepositStatusActive,
		CreatedAt:      now,
	}

	if err := deposit.Validate(); err != nil {
		return nil, err
	}

	err := uc.retrier.Retry(ctx, func() error {
		return uc.executeCreate(ctx, deposit)
	})
	if err != nil {
		return nil, err
	}

	return deposit, nil
}

func (uc *DepositUseCase) executeCreate(ctx context.Context, deposit *domain.FixedDeposit) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, deposit.AccountID)
	if err != nil {
		return err
	}

	if !account.OwnedBy(deposit.UserID) {
		return domain.ErrNotAccountOwner
	}
	if err := account.ValidateDebit(deposit.Principal); err != nil {
		return err
	}

	newBalance := account.ApplyDebit(deposit.Principal)

	entry := &domain.Entry{
		ID:        uc.idGen.Generate(),
		AccountID: account.ID,
		UserID:    account.UserID,
		Type:      domain.EntryTypeDebit,
		Amount:    deposit.Principal,
		Description: fmt.Sprintf("fixed deposit %s (%d months at %s%%)",
			deposit.ID, deposit.DurationMonths, deposit.AnnualRate),
		Status:          domain.EntryStatusCompleted,
		Reference:       "FD-" + deposit.ID + "-OPEN",
		Category:        domain.CategoryDeposit,
		NetAmount:       deposit.Principal,
		PreviousBalance: account.Balance,
		CurrentBalance:  newBalance,
		AccountVersion:  account.Version + 1,
		CreatedAt:       deposit.CreatedAt,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, deposit.CreatedAt); err != nil {
		return err
	}

	if err := uc.depositRepo.Create(txCtx, tx, deposit); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

// WithdrawResult holds the released deposit and the credit written for it.
type WithdrawResult struct {
	Deposit     *domain.FixedDeposit
	Interest    decimal.Decimal
	CreditEntry *domain.Entry
}

// Withdraw releases a matured deposit: principal plus interest accrued over
// the actual elapsed days is credited back to the funding account and the
// deposit becomes WITHDRAWN. Withdrawing before maturity fails.
func (uc *DepositUseCase) Withdraw(ctx context.Context, userID, depositID string) (*WithdrawResult, error) {
	var result *WithdrawResult

	err := uc.retrier.Retry(ctx, func() error {
		var execErr error
		result, execErr = uc.executeWithdraw(ctx, userID, depositID)
		return execErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *DepositUseCase) executeWithdraw(ctx context.Context, userID, depositID string) (*WithdrawResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	deposit, err := uc.depositRepo.GetByIDForUpdate(txCtx, tx, depositID)
	if err != nil {
		return nil, err
	}

	if deposit.UserID != userID {
		return nil, domain.ErrNotAccountOwner
	}
	if deposit.Status == domain.DepositStatusWithdrawn {
		return nil, domain.ErrDepositAlreadyWithdrawn
	}

	now := time.Now().UTC()
	if !deposit.IsMatured(now) {
		return nil, domain.ErrDepositNotMatured
	}

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, deposit.AccountID)
	if err != nil {
		return nil, err
	}
	if err := account.ValidateCredit(deposit.Principal); err != nil {
		return nil, err
	}

	interest := deposit.AccruedInterest(now)
	payout := deposit.Principal.Add(interest)
	newBalance := account.ApplyCredit(payout)

	entry := &domain.Entry{
		ID:        uc.idGen.Generate(),
		AccountID: account.ID,
		UserID:    account.UserID,
		Type:      domain.EntryTypeCredit,
		Amount:    payout,
		Description: fmt.Sprintf("fixed deposit %s withdrawal (principal %s, interest %s)",
			deposit.ID, deposit.Principal, interest),
		Status:          domain.EntryStatusCompleted,
		Reference:       "FD-" + deposit.ID + "-CLOSE",
		Category:        domain.CategoryDeposit,
		NetAmount:       payout,
		PreviousBalance: account.Balance,
		CurrentBalance:  newBalance,
		AccountVersion:  account.Version + 1,
		CreatedAt:       now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.depositRepo.UpdateStatus(txCtx, tx, deposit.ID, domain.DepositStatusWithdrawn, &now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	deposit.Status = domain.DepositStatusWithdrawn
	deposit.WithdrawnAt = &now

	return &WithdrawResult{
		Deposit:     deposit,
		Interest:    interest,
		CreditEntry: entry,
	}, nil
}

// GetDeposit retrieves a deposit by ID.
func (uc *DepositUseCase) GetDeposit(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	return uc.depositRepo.GetByID(ctx, id)
}

// ListByUser lists a user's deposits with pagination.
func (uc *DepositUseCase) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.depositRepo.ListByUser(ctx, userID, limit, offset)
}

// SweepMatured reports deposits past maturity that are still held as ACTIVE.
// Withdrawal stays an explicit customer action; the sweep only surfaces what
// is ready so downstream notification can pick it up.
func (uc *DepositUseCase) SweepMatured(ctx context.Context) ([]*domain.FixedDeposit, error) {
	const sweepLimit = 1000
	return uc.depositRepo.ListMaturedActive(ctx, time.Now().UTC(), sweepLimit)
}
