package usecase

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
)

// AccountUseCase handles account lifecycle operations. Balances are never
// mutated here; only the transfer, settlement, interest and deposit use cases
// move money.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	UserID   string
	Type     domain.AccountType
	Currency string
}

// OpenAccount creates a new active account with a zero balance and a
// generated account number.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidAccountType
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Number:    generateAccountNumber(),
		Type:      input.Type,
		Currency:  strings.ToUpper(strings.TrimSpace(input.Currency)),
		Balance:   decimal.Zero,
		Version:   0,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetByNumber retrieves an account by its account number.
func (uc *AccountUseCase) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}
	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// generateAccountNumber returns a random 10-digit account number.
func generateAccountNumber() string {
	const digits = "0123456789"

	var b strings.Builder
	// First digit non-zero so the number keeps its width.
	n, _ := rand.Int(rand.Reader, big.NewInt(9))
	b.WriteByte(digits[n.Int64()+1])

	for i := 0; i < 9; i++ {
		n, _ := rand.Int(rand.Reader, big.NewInt(10))
		b.WriteByte(digits[n.Int64()])
	}

	return b.String()
}
