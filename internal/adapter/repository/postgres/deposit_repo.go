package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

// DepositRepository implements usecase.DepositRepository.
type DepositRepository struct {
	pool *pgxpool.Pool
}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{pool: pool}
}

const depositColumns = `id, user_id, account_id, principal, annual_rate, duration_months,
	matures_at, status, created_at, withdrawn_at`

// Create inserts a fixed deposit inside a transaction.
func (r *DepositRepository) Create(ctx context.Context, tx usecase.Transaction, deposit *domain.FixedDeposit) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO fixed_deposits (`+depositColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		deposit.ID,
		deposit.UserID,
		deposit.AccountID,
		decimalToNumeric(deposit.Principal),
		decimalToNumeric(deposit.AnnualRate),
		deposit.DurationMonths,
		timeToPgTimestamptz(deposit.MaturesAt),
		string(deposit.Status),
		timeToPgTimestamptz(deposit.CreatedAt),
		timePtrToPgTimestamptz(deposit.WithdrawnAt),
	)

	return err
}

// GetByID retrieves a deposit by ID.
func (r *DepositRepository) GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	return scanDeposit(r.pool.QueryRow(ctx, `
		SELECT `+depositColumns+` FROM fixed_deposits WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a deposit with a FOR UPDATE lock.
func (r *DepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedDeposit, error) {
	return scanDeposit(txQuerier(tx).QueryRow(ctx, `
		SELECT `+depositColumns+` FROM fixed_deposits WHERE id = $1 FOR UPDATE`, id))
}

// UpdateStatus transitions a deposit's stored status.
func (r *DepositRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.DepositStatus, withdrawnAt *time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE fixed_deposits SET status = $2, withdrawn_at = $3 WHERE id = $1`,
		id, string(status), timePtrToPgTimestamptz(withdrawnAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// ListByUser lists a user's deposits, newest first.
func (r *DepositRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+depositColumns+` FROM fixed_deposits
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDeposits(rows)
}

// ListMaturedActive lists deposits past maturity still held as ACTIVE.
func (r *DepositRepository) ListMaturedActive(ctx context.Context, asOf time.Time, limit int) ([]*domain.FixedDeposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+depositColumns+` FROM fixed_deposits
		WHERE status = 'ACTIVE' AND matures_at <= $1
		ORDER BY matures_at
		LIMIT $2`,
		timeToPgTimestamptz(asOf), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDeposits(rows)
}

func scanDeposit(row pgx.Row) (*domain.FixedDeposit, error) {
	var (
		deposit     domain.FixedDeposit
		principal   pgtype.Numeric
		annualRate  pgtype.Numeric
		status      string
		maturesAt   pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		withdrawnAt pgtype.Timestamptz
	)

	err := row.Scan(
		&deposit.ID,
		&deposit.UserID,
		&deposit.AccountID,
		&principal,
		&annualRate,
		&deposit.DurationMonths,
		&maturesAt,
		&status,
		&createdAt,
		&withdrawnAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}

	deposit.Principal = numericToDecimal(principal)
	deposit.AnnualRate = numericToDecimal(annualRate)
	deposit.Status = domain.DepositStatus(status)
	deposit.MaturesAt = maturesAt.Time
	deposit.CreatedAt = createdAt.Time
	deposit.WithdrawnAt = pgTimestamptzToTimePtr(withdrawnAt)

	return &deposit, nil
}

func collectDeposits(rows pgx.Rows) ([]*domain.FixedDeposit, error) {
	var deposits []*domain.FixedDeposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, deposit)
	}

	return deposits, rows.Err()
}
