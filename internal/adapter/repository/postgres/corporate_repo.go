package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

// CorporateRepository implements usecase.CorporateRepository. Mirror entries
// live in their own table so the house account's flow can be summed and
// reconciled without scanning the customer ledger.
type CorporateRepository struct {
	pool *pgxpool.Pool
}

// NewCorporateRepository creates a new CorporateRepository.
func NewCorporateRepository(pool *pgxpool.Pool) *CorporateRepository {
	return &CorporateRepository{pool: pool}
}

const corporateColumns = `id, name, number, currency, balance, version, active,
	daily_limit, monthly_limit, transfer_fee, created_at, updated_at`

// GetByID retrieves a corporate account by ID.
func (r *CorporateRepository) GetByID(ctx context.Context, id string) (*domain.CorporateAccount, error) {
	return scanCorporate(r.pool.QueryRow(ctx, `
		SELECT `+corporateColumns+` FROM corporate_accounts WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a corporate account with a FOR UPDATE lock.
func (r *CorporateRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.CorporateAccount, error) {
	return scanCorporate(txQuerier(tx).QueryRow(ctx, `
		SELECT `+corporateColumns+` FROM corporate_accounts WHERE id = $1 FOR UPDATE`, id))
}

// UpdateBalance updates the house balance, bumping its version.
func (r *CorporateRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE corporate_accounts
		SET balance = $2, version = version + 1, updated_at = $3
		WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCorporateNotFound
	}

	return nil
}

// SumTransfersSince returns the gross amount routed through the corporate
// account in COMPLETED mirror entries created at or after the given time.
// Runs inside the settlement transaction so the rolling limit check sees
// concurrent writers' committed rows.
func (r *CorporateRepository) SumTransfersSince(ctx context.Context, tx usecase.Transaction, id string, since time.Time) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := txQuerier(tx).QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM corporate_entries
		WHERE corporate_id = $1 AND status = 'COMPLETED' AND created_at >= $2`,
		id, timeToPgTimestamptz(since)).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// CreateMirrorEntry inserts the corporate-side mirror of a settlement entry.
func (r *CorporateRepository) CreateMirrorEntry(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO corporate_entries (
			id, corporate_id, type, amount, description, status, reference,
			counterparty, fee, net_amount, previous_balance, current_balance, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID,
		entry.AccountID,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		entry.Description,
		string(entry.Status),
		entry.Reference,
		entry.Counterparty,
		decimalToNumeric(entry.Fee),
		decimalToNumeric(entry.NetAmount),
		decimalToNumeric(entry.PreviousBalance),
		decimalToNumeric(entry.CurrentBalance),
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

// SumMirrorEntries returns the net external flow recorded against the house
// account: inflows add the gross amount, outflows subtract the net amount
// because the fee stays with the house.
func (r *CorporateRepository) SumMirrorEntries(ctx context.Context, id string) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(
			CASE WHEN type IN ('CREDIT', 'DEPOSIT') THEN amount ELSE -net_amount END
		), 0)
		FROM corporate_entries
		WHERE corporate_id = $1 AND status = 'COMPLETED'`,
		id).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanCorporate(row pgx.Row) (*domain.CorporateAccount, error) {
	var (
		corporate    domain.CorporateAccount
		balance      pgtype.Numeric
		dailyLimit   pgtype.Numeric
		monthlyLimit pgtype.Numeric
		transferFee  pgtype.Numeric
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&corporate.ID,
		&corporate.Name,
		&corporate.Number,
		&corporate.Currency,
		&balance,
		&corporate.Version,
		&corporate.Active,
		&dailyLimit,
		&monthlyLimit,
		&transferFee,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCorporateNotFound
		}
		return nil, err
	}

	corporate.Balance = numericToDecimal(balance)
	corporate.DailyLimit = numericToDecimal(dailyLimit)
	corporate.MonthlyLimit = numericToDecimal(monthlyLimit)
	corporate.TransferFee = numericToDecimal(transferFee)
	corporate.CreatedAt = createdAt.Time
	corporate.UpdatedAt = updatedAt.Time

	return &corporate, nil
}
