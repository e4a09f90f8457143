package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

// DisputeRepository implements usecase.DisputeRepository. A partial unique
// index on (entry_id) WHERE status = 'PENDING' enforces the single open
// dispute rule; inserting a second open dispute maps to
// domain.ErrDisputeAlreadyOpen.
type DisputeRepository struct {
	pool *pgxpool.Pool
}

// NewDisputeRepository creates a new DisputeRepository.
func NewDisputeRepository(pool *pgxpool.Pool) *DisputeRepository {
	return &DisputeRepository{pool: pool}
}

const disputeColumns = `id, entry_id, user_id, reason, status, resolution, resolved_by,
	created_at, resolved_at`

// Create inserts a dispute inside a transaction.
func (r *DisputeRepository) Create(ctx context.Context, tx usecase.Transaction, dispute *domain.Dispute) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO disputes (`+disputeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		dispute.ID,
		dispute.EntryID,
		dispute.UserID,
		dispute.Reason,
		string(dispute.Status),
		dispute.Resolution,
		dispute.ResolvedBy,
		timeToPgTimestamptz(dispute.CreatedAt),
		timePtrToPgTimestamptz(dispute.ResolvedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDisputeAlreadyOpen
		}
		return err
	}

	return nil
}

// GetByID retrieves a dispute by ID.
func (r *DisputeRepository) GetByID(ctx context.Context, id string) (*domain.Dispute, error) {
	return scanDispute(r.pool.QueryRow(ctx, `
		SELECT `+disputeColumns+` FROM disputes WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a dispute with a FOR UPDATE lock.
func (r *DisputeRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Dispute, error) {
	return scanDispute(txQuerier(tx).QueryRow(ctx, `
		SELECT `+disputeColumns+` FROM disputes WHERE id = $1 FOR UPDATE`, id))
}

// GetOpenByEntry retrieves the PENDING dispute for an entry, if any.
func (r *DisputeRepository) GetOpenByEntry(ctx context.Context, tx usecase.Transaction, entryID string) (*domain.Dispute, error) {
	return scanDispute(txQuerier(tx).QueryRow(ctx, `
		SELECT `+disputeColumns+` FROM disputes
		WHERE entry_id = $1 AND status = 'PENDING'`, entryID))
}

// Update persists a dispute's resolution fields.
func (r *DisputeRepository) Update(ctx context.Context, tx usecase.Transaction, dispute *domain.Dispute) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE disputes
		SET status = $2, resolution = $3, resolved_by = $4, resolved_at = $5
		WHERE id = $1`,
		dispute.ID,
		string(dispute.Status),
		dispute.Resolution,
		dispute.ResolvedBy,
		timePtrToPgTimestamptz(dispute.ResolvedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDisputeNotFound
	}

	return nil
}

// ListByEntry lists every dispute ever raised against an entry, oldest first.
func (r *DisputeRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.Dispute, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+disputeColumns+` FROM disputes
		WHERE entry_id = $1
		ORDER BY created_at, id`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDisputes(rows)
}

// ListOpen lists PENDING disputes, oldest first.
func (r *DisputeRepository) ListOpen(ctx context.Context, limit, offset int) ([]*domain.Dispute, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+disputeColumns+` FROM disputes
		WHERE status = 'PENDING'
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDisputes(rows)
}

func scanDispute(row pgx.Row) (*domain.Dispute, error) {
	var (
		dispute    domain.Dispute
		status     string
		createdAt  pgtype.Timestamptz
		resolvedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&dispute.ID,
		&dispute.EntryID,
		&dispute.UserID,
		&dispute.Reason,
		&status,
		&dispute.Resolution,
		&dispute.ResolvedBy,
		&createdAt,
		&resolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}

	dispute.Status = domain.DisputeStatus(status)
	dispute.CreatedAt = createdAt.Time
	dispute.ResolvedAt = pgTimestamptzToTimePtr(resolvedAt)

	return &dispute, nil
}

func collectDisputes(rows pgx.Rows) ([]*domain.Dispute, error) {
	var disputes []*domain.Dispute
	for rows.Next() {
		dispute, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, dispute)
	}

	return disputes, rows.Err()
}
