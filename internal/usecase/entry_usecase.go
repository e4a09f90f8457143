package usecase

import (
	"context"

	"github.com/nuvobank/ledger/internal/domain"
)

// EntryUseCase exposes read access to the ledger plus the narrow status
// transition used to settle or fail PENDING entries during reconciliation.
type EntryUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(txManager TransactionManager, entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
	}
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// GetByReference retrieves an entry by its idempotency reference.
func (uc *EntryUseCase) GetByReference(ctx context.Context, reference string) (*domain.Entry, error) {
	return uc.entryRepo.GetByReference(ctx, reference)
}

// ListByAccount lists an account's entries with pagination, newest first.
func (uc *EntryUseCase) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.entryRepo.GetByAccount(ctx, accountID, limit, offset)
}

// SettleEntry transitions a PENDING entry to COMPLETED or FAILED. Any other
// edge is rejected; amounts and accounts never change after creation.
func (uc *EntryUseCase) SettleEntry(ctx context.Context, id string, status domain.EntryStatus) error {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !entry.Status.CanTransitionTo(status) {
		return domain.ErrInvalidStatusTransition
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.entryRepo.UpdateStatus(txCtx, tx, id, status); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}
