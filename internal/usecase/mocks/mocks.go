// Package mocks provides hand-rolled in-memory fakes for the usecase
// interfaces. Every method can be overridden per test through its Func field;
// the defaults behave like a tiny consistent store.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
	Committed    bool
	RolledBack   bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu           sync.Mutex
	Transactions []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.Transactions = append(m.Transactions, tx)
	m.mu.Unlock()
	return tx, nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + itoa(m.next)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// MockRetrier executes the operation once, no backoff.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockAccountRepository is an in-memory AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByNumberFunc       func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListActiveFunc        func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores an account directly.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Number == number {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.Version++
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return m.list(limit, offset, false), nil
}

func (m *MockAccountRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, limit, offset)
	}
	return m.list(limit, offset, true), nil
}

func (m *MockAccountRepository) list(limit, offset int, activeOnly bool) []*domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []*domain.Account
	for _, acc := range m.accounts {
		if activeOnly && !acc.Active {
			continue
		}
		all = append(all, acc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

// MockEntryRepository is an in-memory EntryRepository enforcing reference
// uniqueness like the real table does.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry
	byRef   map[string]*domain.Entry

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.Entry, error)
	GetByReferenceFunc        func(ctx context.Context, reference string) (*domain.Entry, error)
	UpdateStatusFunc          func(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus) error
	GetByAccountFunc          func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	SumCompletedByAccountFunc func(ctx context.Context, accountID string) (decimal.Decimal, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
		byRef:   make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byRef[entry.Reference]; exists {
		return domain.ErrDuplicateReference
	}
	m.entries[entry.ID] = entry
	m.byRef[entry.Reference] = entry
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByReference(ctx context.Context, reference string) (*domain.Entry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.byRef[reference]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		e.Status = status
		return nil
	}
	return domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockEntryRepository) SumCompletedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if m.SumCompletedByAccountFunc != nil {
		return m.SumCompletedByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.AccountID == accountID && e.Status == domain.EntryStatusCompleted {
			sum = sum.Add(e.SignedAmount())
		}
	}
	return sum, nil
}

// All returns every stored entry, for assertions.
func (m *MockEntryRepository) All() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Entry
	for _, e := range m.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// MockCorporateRepository is an in-memory CorporateRepository.
type MockCorporateRepository struct {
	mu        sync.RWMutex
	corporate map[string]*domain.CorporateAccount
	mirrors   []*domain.Entry
	mirrorRef map[string]bool

	GetByIDFunc           func(ctx context.Context, id string) (*domain.CorporateAccount, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.CorporateAccount, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	SumTransfersSinceFunc func(ctx context.Context, tx usecase.Transaction, id string, since time.Time) (decimal.Decimal, error)
	CreateMirrorEntryFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	SumMirrorEntriesFunc  func(ctx context.Context, id string) (decimal.Decimal, error)
}

func NewMockCorporateRepository() *MockCorporateRepository {
	return &MockCorporateRepository{
		corporate: make(map[string]*domain.CorporateAccount),
		mirrorRef: make(map[string]bool),
	}
}

// Seed stores a corporate account directly.
func (m *MockCorporateRepository) Seed(accounts ...*domain.CorporateAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range accounts {
		m.corporate[c.ID] = c
	}
}

func (m *MockCorporateRepository) GetByID(ctx context.Context, id string) (*domain.CorporateAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.corporate[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCorporateNotFound
}

func (m *MockCorporateRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.CorporateAccount, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCorporateRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.corporate[id]; ok {
		c.Balance = balance
		c.Version++
		c.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrCorporateNotFound
}

func (m *MockCorporateRepository) SumTransfersSince(ctx context.Context, tx usecase.Transaction, id string, since time.Time) (decimal.Decimal, error) {
	if m.SumTransfersSinceFunc != nil {
		return m.SumTransfersSinceFunc(ctx, tx, id, since)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.mirrors {
		if e.AccountID == id && !e.CreatedAt.Before(since) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (m *MockCorporateRepository) CreateMirrorEntry(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateMirrorEntryFunc != nil {
		return m.CreateMirrorEntryFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mirrorRef[entry.Reference] {
		return domain.ErrDuplicateReference
	}
	m.mirrorRef[entry.Reference] = true
	m.mirrors = append(m.mirrors, entry)
	return nil
}

func (m *MockCorporateRepository) SumMirrorEntries(ctx context.Context, id string) (decimal.Decimal, error) {
	if m.SumMirrorEntriesFunc != nil {
		return m.SumMirrorEntriesFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.mirrors {
		if e.AccountID != id {
			continue
		}
		if e.Type.IsCredit() {
			sum = sum.Add(e.Amount)
		} else {
			sum = sum.Sub(e.NetAmount)
		}
	}
	return sum, nil
}

// Mirrors returns the stored mirror entries, for assertions.
func (m *MockCorporateRepository) Mirrors() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Entry(nil), m.mirrors...)
}

// MockDepositRepository is an in-memory DepositRepository.
type MockDepositRepository struct {
	mu       sync.RWMutex
	deposits map[string]*domain.FixedDeposit

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, deposit *domain.FixedDeposit) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.FixedDeposit, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedDeposit, error)
	UpdateStatusFunc      func(ctx context.Context, tx usecase.Transaction, id string, status domain.DepositStatus, withdrawnAt *time.Time) error
	ListByUserFunc        func(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error)
	ListMaturedActiveFunc func(ctx context.Context, asOf time.Time, limit int) ([]*domain.FixedDeposit, error)
}

func NewMockDepositRepository() *MockDepositRepository {
	return &MockDepositRepository{deposits: make(map[string]*domain.FixedDeposit)}
}

// Seed stores a deposit directly.
func (m *MockDepositRepository) Seed(deposits ...*domain.FixedDeposit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range deposits {
		m.deposits[d.ID] = d
	}
}

func (m *MockDepositRepository) Create(ctx context.Context, tx usecase.Transaction, deposit *domain.FixedDeposit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, deposit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[deposit.ID] = deposit
	return nil
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.deposits[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (m *MockDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedDeposit, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockDepositRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.DepositStatus, withdrawnAt *time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, withdrawnAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.deposits[id]; ok {
		d.Status = status
		d.WithdrawnAt = withdrawnAt
		return nil
	}
	return domain.ErrDepositNotFound
}

func (m *MockDepositRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.FixedDeposit
	for _, d := range m.deposits {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockDepositRepository) ListMaturedActive(ctx context.Context, asOf time.Time, limit int) ([]*domain.FixedDeposit, error) {
	if m.ListMaturedActiveFunc != nil {
		return m.ListMaturedActiveFunc(ctx, asOf, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.FixedDeposit
	for _, d := range m.deposits {
		if d.Status == domain.DepositStatusActive && d.IsMatured(asOf) {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockDisputeRepository is an in-memory DisputeRepository.
type MockDisputeRepository struct {
	mu       sync.RWMutex
	disputes map[string]*domain.Dispute

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, dispute *domain.Dispute) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Dispute, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Dispute, error)
	GetOpenByEntryFunc   func(ctx context.Context, tx usecase.Transaction, entryID string) (*domain.Dispute, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, dispute *domain.Dispute) error
	ListByEntryFunc      func(ctx context.Context, entryID string) ([]*domain.Dispute, error)
	ListOpenFunc         func(ctx context.Context, limit, offset int) ([]*domain.Dispute, error)
}

func NewMockDisputeRepository() *MockDisputeRepository {
	return &MockDisputeRepository{disputes: make(map[string]*domain.Dispute)}
}

// Seed stores a dispute directly.
func (m *MockDisputeRepository) Seed(disputes ...*domain.Dispute) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range disputes {
		m.disputes[d.ID] = d
	}
}

func (m *MockDisputeRepository) Create(ctx context.Context, tx usecase.Transaction, dispute *domain.Dispute) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, dispute)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.disputes {
		if d.EntryID == dispute.EntryID && d.Status == domain.DisputeStatusPending {
			return domain.ErrDisputeAlreadyOpen
		}
	}
	m.disputes[dispute.ID] = dispute
	return nil
}

func (m *MockDisputeRepository) GetByID(ctx context.Context, id string) (*domain.Dispute, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.disputes[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDisputeNotFound
}

func (m *MockDisputeRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Dispute, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockDisputeRepository) GetOpenByEntry(ctx context.Context, tx usecase.Transaction, entryID string) (*domain.Dispute, error) {
	if m.GetOpenByEntryFunc != nil {
		return m.GetOpenByEntryFunc(ctx, tx, entryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.disputes {
		if d.EntryID == entryID && d.Status == domain.DisputeStatusPending {
			return d, nil
		}
	}
	return nil, domain.ErrDisputeNotFound
}

func (m *MockDisputeRepository) Update(ctx context.Context, tx usecase.Transaction, dispute *domain.Dispute) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, dispute)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.disputes[dispute.ID]; !ok {
		return domain.ErrDisputeNotFound
	}
	m.disputes[dispute.ID] = dispute
	return nil
}

func (m *MockDisputeRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.Dispute, error) {
	if m.ListByEntryFunc != nil {
		return m.ListByEntryFunc(ctx, entryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Dispute
	for _, d := range m.disputes {
		if d.EntryID == entryID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockDisputeRepository) ListOpen(ctx context.Context, limit, offset int) ([]*domain.Dispute, error) {
	if m.ListOpenFunc != nil {
		return m.ListOpenFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Dispute
	for _, d := range m.disputes {
		if d.Status == domain.DisputeStatusPending {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
