package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account for interest and product rules.
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeBusiness AccountType = "BUSINESS"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeSavings:  true,
	AccountTypeChecking: true,
	AccountTypeBusiness: true,
}

// IsValid reports whether the account type is part of the closed set.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// Account is a customer account holding a spendable balance.
//
// Balance is mutated only by the transfer, settlement, interest and deposit
// use cases. It must always equal the signed sum of the account's COMPLETED
// ledger entries; the reconciliation use case verifies that invariant.
type Account struct {
	ID        string
	UserID    string
	Number    string
	Type      AccountType
	Currency  string
	Balance   decimal.Decimal
	Version   int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if the account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if !a.Active {
		return ErrAccountInactive
	}
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientBalance
	}
	return nil
}

// ValidateCredit checks if the account can be credited by amount.
func (a *Account) ValidateCredit(amount decimal.Decimal) error {
	if !a.Active {
		return ErrAccountInactive
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// OwnedBy reports whether the account belongs to the given user.
func (a *Account) OwnedBy(userID string) bool {
	return a.UserID == userID
}
