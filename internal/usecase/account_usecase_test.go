package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
	"github.com/nuvobank/ledger/internal/usecase/mocks"
)

func TestAccountUseCase_OpenAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.OpenAccountInput
		expectError bool
		errorType   error
	}{
		{
			name: "successful savings account",
			input: usecase.OpenAccountInput{
				UserID:   "user-1",
				Type:     domain.AccountTypeSavings,
				Currency: "USD",
			},
			expectError: false,
		},
		{
			name: "currency is normalized",
			input: usecase.OpenAccountInput{
				UserID:   "user-1",
				Type:     domain.AccountTypeChecking,
				Currency: " usd ",
			},
			expectError: false,
		},
		{
			name: "invalid account type",
			input: usecase.OpenAccountInput{
				UserID:   "user-1",
				Type:     domain.AccountType("PREMIUM"),
				Currency: "USD",
			},
			expectError: true,
			errorType:   domain.ErrInvalidAccountType,
		},
		{
			name: "invalid currency",
			input: usecase.OpenAccountInput{
				UserID:   "user-1",
				Type:     domain.AccountTypeSavings,
				Currency: "XXX",
			},
			expectError: true,
			errorType:   domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

			account, err := uc.OpenAccount(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !account.Active {
				t.Error("expected new account to be active")
			}
			if !account.Balance.IsZero() {
				t.Errorf("expected zero opening balance, got %s", account.Balance)
			}
			if account.Currency != "USD" {
				t.Errorf("expected currency USD, got %q", account.Currency)
			}
			if err := domain.ValidateAccountNumber(account.Number); err != nil {
				t.Errorf("generated account number %q is invalid: %v", account.Number, err)
			}
		})
	}
}

func TestAccountUseCase_GetByNumber(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.Seed(activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "0"))
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	account, err := uc.GetByNumber(context.Background(), "1111111111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "acc-1" {
		t.Errorf("expected acc-1, got %s", account.ID)
	}

	if _, err := uc.GetByNumber(context.Background(), "not-a-number"); !errors.Is(err, domain.ErrInvalidAccountNumber) {
		t.Errorf("expected ErrInvalidAccountNumber, got %v", err)
	}

	if _, err := uc.GetByNumber(context.Background(), "9999999999"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.Seed(
		activeAccount("acc-1", "user-1", "1111111111", domain.AccountTypeSavings, "0"),
		activeAccount("acc-2", "user-2", "2222222222", domain.AccountTypeChecking, "0"),
		activeAccount("acc-3", "user-3", "3333333333", domain.AccountTypeBusiness, "0"),
	)
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	accounts, err := uc.ListAccounts(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(accounts))
	}

	rest, err := uc.ListAccounts(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("expected 1 account, got %d", len(rest))
	}
}
