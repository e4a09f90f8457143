package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/nuvobank/ledger/internal/domain"
)

// DisputeUseCase tracks disputes raised against ledger entries through the
// PENDING -> RESOLVED | REJECTED state machine. Opening or resolving a
// dispute never touches balances.
type DisputeUseCase struct {
	txManager   TransactionManager
	entryRepo   EntryRepository
	disputeRepo DisputeRepository
	retrier     Retrier
	idGen       IDGenerator
}

// NewDisputeUseCase creates a new DisputeUseCase.
func NewDisputeUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	disputeRepo DisputeRepository,
	retrier Retrier,
	idGen IDGenerator,
) *DisputeUseCase {
	return &DisputeUseCase{
		txManager:   txManager,
		entryRepo:   entryRepo,
		disputeRepo: disputeRepo,
		retrier:     retrier,
		idGen:       idGen,
	}
}

// Open flags a ledger entry as disputed by its owner. An entry may carry only
// one open dispute at a time.
func (uc *DisputeUseCase) Open(ctx context.Context, userID, entryID, reason string) (*domain.Dispute, error) {
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrNotAccountOwner
	}

	var dispute *domain.Dispute

	err = uc.retrier.Retry(ctx, func() error {
		var execErr error
		dispute, execErr = uc.executeOpen(ctx, userID, entryID, reason)
		return execErr
	})
	if err != nil {
		return nil, err
	}

	return dispute, nil
}

func (uc *DisputeUseCase) executeOpen(ctx context.Context, userID, entryID, reason string) (*domain.Dispute, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	open, err := uc.disputeRepo.GetOpenByEntry(txCtx, tx, entryID)
	if err != nil && !errors.Is(err, domain.ErrDisputeNotFound) {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrDisputeAlreadyOpen
	}

	dispute := &domain.Dispute{
		ID:        uc.idGen.Generate(),
		EntryID:   entryID,
		UserID:    userID,
		Reason:    reason,
		Status:    domain.DisputeStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.disputeRepo.Create(txCtx, tx, dispute); err != nil {
		// The partial unique index backs up the check above under
		// concurrency.
		if errors.Is(err, domain.ErrDisputeAlreadyOpen) {
			return nil, domain.ErrDisputeAlreadyOpen
		}
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return dispute, nil
}

// Resolve closes a dispute with a terminal outcome. The resolving
// administrator's identity and a mandatory resolution text are recorded; any
// balance reversal is a separate explicit transfer.
func (uc *DisputeUseCase) Resolve(ctx context.Context, actorID, disputeID string, outcome domain.DisputeStatus, resolution string) (*domain.Dispute, error) {
	var dispute *domain.Dispute

	err := uc.retrier.Retry(ctx, func() error {
		var execErr error
		dispute, execErr = uc.executeResolve(ctx, actorID, disputeID, outcome, resolution)
		return execErr
	})
	if err != nil {
		return nil, err
	}

	return dispute, nil
}

func (uc *DisputeUseCase) executeResolve(ctx context.Context, actorID, disputeID string, outcome domain.DisputeStatus, resolution string) (*domain.Dispute, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	dispute, err := uc.disputeRepo.GetByIDForUpdate(txCtx, tx, disputeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := dispute.Resolve(outcome, resolution, actorID, now); err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.Update(txCtx, tx, dispute); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return dispute, nil
}

// GetDispute retrieves a dispute by ID.
func (uc *DisputeUseCase) GetDispute(ctx context.Context, id string) (*domain.Dispute, error) {
	return uc.disputeRepo.GetByID(ctx, id)
}

// ListByEntry lists all disputes ever raised against an entry.
func (uc *DisputeUseCase) ListByEntry(ctx context.Context, entryID string) ([]*domain.Dispute, error) {
	return uc.disputeRepo.ListByEntry(ctx, entryID)
}

// ListOpen lists PENDING disputes for the admin console.
func (uc *DisputeUseCase) ListOpen(ctx context.Context, limit, offset int) ([]*domain.Dispute, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.disputeRepo.ListOpen(ctx, limit, offset)
}
