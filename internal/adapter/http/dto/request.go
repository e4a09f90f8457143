package dto

import (
	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	UserID   string `json:"user_id"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		UserID:   r.UserID,
		Type:     domain.AccountType(r.Type),
		Currency: r.Currency,
	}
}

// TransferRequest represents a request to move money between accounts.
type TransferRequest struct {
	UserID          string          `json:"user_id"`
	FromAccountID   string          `json:"from_account_id"`
	ToAccountNumber string          `json:"to_account_number"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		UserID:          r.UserID,
		FromAccountID:   r.FromAccountID,
		ToAccountNumber: r.ToAccountNumber,
		Amount:          r.Amount,
		Description:     r.Description,
	}
}

// ReverseTransferRequest represents a request to reverse a completed transfer.
type ReverseTransferRequest struct {
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason"`
}

// SettlementRequest represents one externally confirmed money event to route
// through the corporate account.
type SettlementRequest struct {
	UserID      string          `json:"user_id"`
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

// ToUseCaseInput converts to use case input.
func (r *SettlementRequest) ToUseCaseInput() usecase.SettlementInput {
	return usecase.SettlementInput{
		UserID:      r.UserID,
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Description: r.Description,
		Reference:   r.Reference,
	}
}

// SettleEntryRequest represents a request to finalize a pending entry.
type SettleEntryRequest struct {
	Status string `json:"status"`
}

// CreateDepositRequest represents a request to open a fixed deposit.
type CreateDepositRequest struct {
	UserID         string          `json:"user_id"`
	AccountID      string          `json:"account_id"`
	Amount         decimal.Decimal `json:"amount"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	DurationMonths int             `json:"duration_months"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDepositRequest) ToUseCaseInput() usecase.CreateDepositInput {
	return usecase.CreateDepositInput{
		UserID:         r.UserID,
		AccountID:      r.AccountID,
		Amount:         r.Amount,
		AnnualRate:     r.AnnualRate,
		DurationMonths: r.DurationMonths,
	}
}

// WithdrawDepositRequest represents a request to withdraw a matured deposit.
type WithdrawDepositRequest struct {
	UserID string `json:"user_id"`
}

// OpenDisputeRequest represents a request to dispute a ledger entry.
type OpenDisputeRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// ResolveDisputeRequest represents an operator's ruling on a dispute.
type ResolveDisputeRequest struct {
	ActorID    string `json:"actor_id"`
	Outcome    string `json:"outcome"`
	Resolution string `json:"resolution"`
}

// RunAccrualRequest represents a request to run interest accrual for a
// billing period.
type RunAccrualRequest struct {
	Period string `json:"period"`
}
