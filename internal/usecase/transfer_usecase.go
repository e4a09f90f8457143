package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
)

// TransferUseCase moves money between two customer accounts as one atomic
// unit: both balance mutations and the paired DEBIT/CREDIT entries commit
// together or not at all.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	retrier     Retrier
	idGen       IDGenerator
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	retrier Retrier,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		retrier:     retrier,
		idGen:       idGen,
	}
}

// TransferInput represents a transfer request from an authenticated caller.
type TransferInput struct {
	UserID          string
	FromAccountID   string
	ToAccountNumber string
	Amount          decimal.Decimal
	Description     string
}

// TransferResult holds the two entries written for a transfer.
type TransferResult struct {
	DebitEntry  *domain.Entry
	CreditEntry *domain.Entry
}

// Transfer debits the source account and credits the destination account.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	destination, err := uc.accountRepo.GetByNumber(ctx, input.ToAccountNumber)
	if err != nil {
		return nil, err
	}

	if destination.ID == input.FromAccountID {
		return nil, domain.ErrSameAccount
	}

	var result *TransferResult

	err = uc.retrier.Retry(ctx, func() error {
		var execErr error
		result, execErr = uc.execute(ctx, input, destination.ID, transferOpts{
			category:  domain.CategoryTransfer,
			refPrefix: "TRF",
		})
		return execErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// transferOpts distinguishes customer transfers from administrative reversals.
// refID, when set, fixes the reference stem so repeated reversals of the same
// entry collide on the unique reference index.
type transferOpts struct {
	category  string
	refPrefix string
	refID     string
	actorID   string
}

func (uc *TransferUseCase) execute(ctx context.Context, input TransferInput, toAccountID string, opts transferOpts) (*TransferResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock both rows in sorted ID order (deadlock prevention).
	ids := []string{input.FromAccountID, toAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var from, to *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.FromAccountID:
			from = a
		case toAccountID:
			to = a
		}
	}
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if !from.OwnedBy(input.UserID) {
		return nil, domain.ErrNotAccountOwner
	}
	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}
	if err := to.ValidateCredit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transferID := uc.idGen.Generate()

	refID := opts.refID
	if refID == "" {
		refID = transferID
	}

	debit := &domain.Entry{
		ID:              uc.idGen.Generate(),
		AccountID:       from.ID,
		UserID:          from.UserID,
		Type:            domain.EntryTypeDebit,
		Amount:          input.Amount,
		Description:     fmt.Sprintf("%s (to %s)", input.Description, to.Number),
		Status:          domain.EntryStatusCompleted,
		Reference:       opts.refPrefix + "-" + refID + "-D",
		Category:        opts.category,
		Counterparty:    to.Number,
		NetAmount:       input.Amount,
		PreviousBalance: from.Balance,
		CurrentBalance:  from.ApplyDebit(input.Amount),
		AccountVersion:  from.Version + 1,
		ActorID:         opts.actorID,
		CreatedAt:       now,
	}
	if err := uc.entryRepo.Create(txCtx, tx, debit); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.UpdateBalance(txCtx, tx, from.ID, debit.CurrentBalance, now); err != nil {
		return nil, err
	}

	credit := &domain.Entry{
		ID:              uc.idGen.Generate(),
		AccountID:       to.ID,
		UserID:          to.UserID,
		Type:            domain.EntryTypeCredit,
		Amount:          input.Amount,
		Description:     fmt.Sprintf("%s (from %s)", input.Description, from.Number),
		Status:          domain.EntryStatusCompleted,
		Reference:       opts.refPrefix + "-" + refID + "-C",
		Category:        opts.category,
		Counterparty:    from.Number,
		NetAmount:       input.Amount,
		PreviousBalance: to.Balance,
		CurrentBalance:  to.ApplyCredit(input.Amount),
		AccountVersion:  to.Version + 1,
		ActorID:         opts.actorID,
		CreatedAt:       now,
	}
	if err := uc.entryRepo.Create(txCtx, tx, credit); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.UpdateBalance(txCtx, tx, to.ID, credit.CurrentBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &TransferResult{DebitEntry: debit, CreditEntry: credit}, nil
}

// Reverse performs an administrative reversal of a completed transfer debit:
// an inverse movement between the same pair of accounts, recorded against the
// acting administrator. Dispute resolution never triggers this implicitly.
func (uc *TransferUseCase) Reverse(ctx context.Context, actorID, entryID, reason string) (*TransferResult, error) {
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Category != domain.CategoryTransfer || entry.Type != domain.EntryTypeDebit {
		return nil, domain.ErrInvalidStatusTransition
	}
	if entry.Status != domain.EntryStatusCompleted {
		return nil, domain.ErrInvalidStatusTransition
	}

	// The original destination pays the money back to the original source.
	source, err := uc.accountRepo.GetByNumber(ctx, entry.Counterparty)
	if err != nil {
		return nil, err
	}

	original, err := uc.accountRepo.GetByID(ctx, entry.AccountID)
	if err != nil {
		return nil, err
	}

	var result *TransferResult

	err = uc.retrier.Retry(ctx, func() error {
		var execErr error
		result, execErr = uc.execute(ctx, TransferInput{
			UserID:          source.UserID,
			FromAccountID:   source.ID,
			ToAccountNumber: original.Number,
			Amount:          entry.Amount,
			Description:     "reversal: " + reason,
		}, original.ID, transferOpts{
			category:  domain.CategoryReversal,
			refPrefix: "REV",
			refID:     entry.ID,
			actorID:   actorID,
		})
		return execErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
