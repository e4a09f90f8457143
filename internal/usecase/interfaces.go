package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
)

// AccountRepository defines data access for customer accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListActive(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByReference(ctx context.Context, reference string) (*domain.Entry, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.EntryStatus) error
	GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	SumCompletedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// CorporateRepository defines data access for corporate settlement accounts.
type CorporateRepository interface {
	GetByID(ctx context.Context, id string) (*domain.CorporateAccount, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.CorporateAccount, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	// SumTransfersSince returns the total routed through the corporate account
	// in COMPLETED mirror entries created at or after the given time.
	SumTransfersSince(ctx context.Context, tx Transaction, id string, since time.Time) (decimal.Decimal, error)
	CreateMirrorEntry(ctx context.Context, tx Transaction, entry *domain.Entry) error
	SumMirrorEntries(ctx context.Context, id string) (decimal.Decimal, error)
}

// DepositRepository defines data access for fixed deposits.
type DepositRepository interface {
	Create(ctx context.Context, tx Transaction, deposit *domain.FixedDeposit) error
	GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.FixedDeposit, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.DepositStatus, withdrawnAt *time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error)
	ListMaturedActive(ctx context.Context, asOf time.Time, limit int) ([]*domain.FixedDeposit, error)
}

// DisputeRepository defines data access for disputes.
type DisputeRepository interface {
	Create(ctx context.Context, tx Transaction, dispute *domain.Dispute) error
	GetByID(ctx context.Context, id string) (*domain.Dispute, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Dispute, error)
	GetOpenByEntry(ctx context.Context, tx Transaction, entryID string) (*domain.Dispute, error)
	Update(ctx context.Context, tx Transaction, dispute *domain.Dispute) error
	ListByEntry(ctx context.Context, entryID string) ([]*domain.Dispute, error)
	ListOpen(ctx context.Context, limit, offset int) ([]*domain.Dispute, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient infrastructure failures.
// Business-rule errors must pass through unchanged and unretried.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for the HTTP surface.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
