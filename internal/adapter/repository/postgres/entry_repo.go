package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. The entries table
// carries a unique index on reference; inserting a duplicate maps to
// domain.ErrDuplicateReference, which is how replays and double-runs are
// detected under concurrency.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, account_id, user_id, type, amount, description, status, reference,
	category, counterparty, fee, net_amount, previous_balance, current_balance,
	account_version, actor_id, created_at`

// Create inserts an entry inside a transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		entry.ID,
		entry.AccountID,
		entry.UserID,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		entry.Description,
		string(entry.Status),
		entry.Reference,
		entry.Category,
		entry.Counterparty,
		decimalToNumeric(entry.Fee),
		decimalToNumeric(entry.NetAmount),
		decimalToNumeric(entry.PreviousBalance),
		decimalToNumeric(entry.CurrentBalance),
		entry.AccountVersion,
		entry.ActorID,
		timeToPgTimestamptz(entry.CreatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateReference
		}
		return err
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	return scanEntry(r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM entries WHERE id = $1`, id))
}

// GetByReference retrieves an entry by its idempotency reference.
func (r *EntryRepository) GetByReference(ctx context.Context, reference string) (*domain.Entry, error) {
	return scanEntry(r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM entries WHERE reference = $1`, reference))
}

// UpdateStatus updates the status of an entry inside a transaction. Nothing
// else on an entry is ever updated.
func (r *EntryRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE entries SET status = $2 WHERE id = $1`,
		id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// GetByAccount lists an account's entries, newest first.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// SumCompletedByAccount returns the signed sum of an account's COMPLETED
// entries. CREDIT and DEPOSIT add; everything else subtracts.
func (r *EntryRepository) SumCompletedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(
			CASE WHEN type IN ('CREDIT', 'DEPOSIT') THEN amount ELSE -amount END
		), 0)
		FROM entries
		WHERE account_id = $1 AND status = 'COMPLETED'`,
		accountID).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry           domain.Entry
		entryType       string
		status          string
		amount          pgtype.Numeric
		fee             pgtype.Numeric
		netAmount       pgtype.Numeric
		previousBalance pgtype.Numeric
		currentBalance  pgtype.Numeric
		createdAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.UserID,
		&entryType,
		&amount,
		&entry.Description,
		&status,
		&entry.Reference,
		&entry.Category,
		&entry.Counterparty,
		&fee,
		&netAmount,
		&previousBalance,
		&currentBalance,
		&entry.AccountVersion,
		&entry.ActorID,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	entry.Type = domain.EntryType(entryType)
	entry.Status = domain.EntryStatus(status)
	entry.Amount = numericToDecimal(amount)
	entry.Fee = numericToDecimal(fee)
	entry.NetAmount = numericToDecimal(netAmount)
	entry.PreviousBalance = numericToDecimal(previousBalance)
	entry.CurrentBalance = numericToDecimal(currentBalance)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

func collectEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
