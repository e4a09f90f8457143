package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
)

// SettlementUseCase is the corporate settlement router: the only sanctioned
// path for externally sourced money movement. Every credit or debit is
// mirrored against the house corporate account, which enforces rolling daily
// and monthly transfer limits and a flat fee on outbound debits.
type SettlementUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	entryRepo     EntryRepository
	corporateRepo CorporateRepository
	retrier       Retrier
	idGen         IDGenerator
	corporateID   string
}

// NewSettlementUseCase creates a new SettlementUseCase routing through the
// given corporate account.
func NewSettlementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	corporateRepo CorporateRepository,
	retrier Retrier,
	idGen IDGenerator,
	corporateID string,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		entryRepo:     entryRepo,
		corporateRepo: corporateRepo,
		retrier:       retrier,
		idGen:         idGen,
		corporateID:   corporateID,
	}
}

// SettlementInput represents one externally confirmed money event.
// Reference is the provider-issued id (or derived from it) and guarantees
// at-most-once application on redelivery.
type SettlementInput struct {
	UserID      string
	AccountID   string
	Amount      decimal.Decimal
	Description string
	Reference   string
}

// ProcessCredit routes externally sourced money into a customer account.
// Replaying the same reference returns the original entry without crediting
// again.
func (uc *SettlementUseCase) ProcessCredit(ctx context.Context, input SettlementInput) (*domain.Entry, error) {
	return uc.process(ctx, input, domain.EntryTypeDeposit)
}

// ProcessDebit routes money out of a customer account to an external
// destination, charging the corporate account's flat transfer fee.
func (uc *SettlementUseCase) ProcessDebit(ctx context.Context, input SettlementInput) (*domain.Entry, error) {
	return uc.process(ctx, input, domain.EntryTypeWithdrawal)
}

func (uc *SettlementUseCase) process(ctx context.Context, input SettlementInput, entryType domain.EntryType) (*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if input.Reference == "" {
		return nil, domain.ErrReferenceRequired
	}

	// Replay fast path: a reference we have already applied is returned
	// as-is. Webhook redelivery is not an error.
	existing, err := uc.entryRepo.GetByReference(ctx, input.Reference)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}

	var entry *domain.Entry

	err = uc.retrier.Retry(ctx, func() error {
		var execErr error
		entry, execErr = uc.execute(ctx, input, entryType)
		return execErr
	})
	if errors.Is(err, domain.ErrDuplicateReference) {
		// Lost the race against a concurrent replay; the winner's entry is
		// the canonical result.
		return uc.entryRepo.GetByReference(ctx, input.Reference)
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *SettlementUseCase) execute(ctx context.Context, input SettlementInput, entryType domain.EntryType) (*domain.Entry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock order is fixed: customer row first, then the corporate row.
	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	corporate, err := uc.corporateRepo.GetByIDForUpdate(txCtx, tx, uc.corporateID)
	if err != nil {
		return nil, err
	}

	if !account.OwnedBy(input.UserID) {
		return nil, domain.ErrNotAccountOwner
	}

	now := time.Now().UTC()

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	dailyTotal, err := uc.corporateRepo.SumTransfersSince(txCtx, tx, corporate.ID, dayStart)
	if err != nil {
		return nil, err
	}

	monthlyTotal, err := uc.corporateRepo.SumTransfersSince(txCtx, tx, corporate.ID, monthStart)
	if err != nil {
		return nil, err
	}

	if err := corporate.CheckLimits(dailyTotal, monthlyTotal, input.Amount); err != nil {
		return nil, err
	}

	fee := decimal.Zero
	newBalance := account.Balance
	newHouseBalance := corporate.Balance

	switch entryType {
	case domain.EntryTypeDeposit:
		if err := account.ValidateCredit(input.Amount); err != nil {
			return nil, err
		}
		newBalance = account.ApplyCredit(input.Amount)
		newHouseBalance = corporate.Balance.Add(input.Amount)
	case domain.EntryTypeWithdrawal:
		if err := account.ValidateDebit(input.Amount); err != nil {
			return nil, err
		}
		fee = corporate.TransferFee
		newBalance = account.ApplyDebit(input.Amount)
		// Outbound flow leaves net of the fee; the fee stays with the house.
		newHouseBalance = corporate.Balance.Sub(input.Amount.Sub(fee))
	default:
		return nil, domain.ErrInvalidStatusTransition
	}

	entry := &domain.Entry{
		ID:              uc.idGen.Generate(),
		AccountID:       account.ID,
		UserID:          account.UserID,
		Type:            entryType,
		Amount:          input.Amount,
		Description:     input.Description,
		Status:          domain.EntryStatusCompleted,
		Reference:       input.Reference,
		Category:        domain.CategorySettlement,
		Counterparty:    corporate.Number,
		Fee:             fee,
		NetAmount:       input.Amount.Sub(fee),
		PreviousBalance: account.Balance,
		CurrentBalance:  newBalance,
		AccountVersion:  account.Version + 1,
		CreatedAt:       now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	mirror := &domain.Entry{
		ID:              uc.idGen.Generate(),
		AccountID:       corporate.ID,
		Type:            entryType,
		Amount:          input.Amount,
		Description:     input.Description,
		Status:          domain.EntryStatusCompleted,
		Reference:       input.Reference + "-CORP",
		Category:        domain.CategorySettlement,
		Counterparty:    account.Number,
		Fee:             fee,
		NetAmount:       input.Amount.Sub(fee),
		PreviousBalance: corporate.Balance,
		CurrentBalance:  newHouseBalance,
		CreatedAt:       now,
	}

	if err := uc.corporateRepo.CreateMirrorEntry(txCtx, tx, mirror); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.corporateRepo.UpdateBalance(txCtx, tx, corporate.ID, newHouseBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}
