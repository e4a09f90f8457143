package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Number    string          `json:"number"`
	Type      string          `json:"type"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Number:    a.Number,
		Type:      string(a.Type),
		Currency:  a.Currency,
		Balance:   a.Balance,
		Version:   a.Version,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	UserID          string          `json:"user_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	Reference       string          `json:"reference"`
	Category        string          `json:"category,omitempty"`
	Counterparty    string          `json:"counterparty,omitempty"`
	Fee             decimal.Decimal `json:"fee"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	AccountVersion  int64           `json:"account_version"`
	ActorID         string          `json:"actor_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		AccountID:       e.AccountID,
		UserID:          e.UserID,
		Type:            string(e.Type),
		Amount:          e.Amount,
		Description:     e.Description,
		Status:          string(e.Status),
		Reference:       e.Reference,
		Category:        e.Category,
		Counterparty:    e.Counterparty,
		Fee:             e.Fee,
		NetAmount:       e.NetAmount,
		PreviousBalance: e.PreviousBalance,
		CurrentBalance:  e.CurrentBalance,
		AccountVersion:  e.AccountVersion,
		ActorID:         e.ActorID,
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransferResponse holds the pair of entries written for a transfer.
type TransferResponse struct {
	DebitEntry  *EntryResponse `json:"debit_entry"`
	CreditEntry *EntryResponse `json:"credit_entry"`
}

// TransferFromResult converts a transfer result to a response.
func TransferFromResult(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		DebitEntry:  EntryFromDomain(r.DebitEntry),
		CreditEntry: EntryFromDomain(r.CreditEntry),
	}
}

// DepositResponse represents a fixed deposit in API responses.
type DepositResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	AccountID      string          `json:"account_id"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	DurationMonths int             `json:"duration_months"`
	MaturesAt      time.Time       `json:"matures_at"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	WithdrawnAt    *time.Time      `json:"withdrawn_at,omitempty"`
}

// DepositFromDomain converts a domain deposit to a response.
func DepositFromDomain(d *domain.FixedDeposit) *DepositResponse {
	return &DepositResponse{
		ID:             d.ID,
		UserID:         d.UserID,
		AccountID:      d.AccountID,
		Principal:      d.Principal,
		AnnualRate:     d.AnnualRate,
		DurationMonths: d.DurationMonths,
		MaturesAt:      d.MaturesAt,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		WithdrawnAt:    d.WithdrawnAt,
	}
}

// DepositsFromDomain converts domain deposits to responses.
func DepositsFromDomain(deposits []*domain.FixedDeposit) []*DepositResponse {
	result := make([]*DepositResponse, len(deposits))
	for i, d := range deposits {
		result[i] = DepositFromDomain(d)
	}
	return result
}

// WithdrawDepositResponse holds the released deposit and the credit written
// back to the funding account.
type WithdrawDepositResponse struct {
	Deposit     *DepositResponse `json:"deposit"`
	Interest    decimal.Decimal  `json:"interest"`
	CreditEntry *EntryResponse   `json:"credit_entry"`
}

// WithdrawFromResult converts a withdraw result to a response.
func WithdrawFromResult(r *usecase.WithdrawResult) *WithdrawDepositResponse {
	return &WithdrawDepositResponse{
		Deposit:     DepositFromDomain(r.Deposit),
		Interest:    r.Interest,
		CreditEntry: EntryFromDomain(r.CreditEntry),
	}
}

// DisputeResponse represents a dispute in API responses.
type DisputeResponse struct {
	ID         string     `json:"id"`
	EntryID    string     `json:"entry_id"`
	UserID     string     `json:"user_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	Resolution string     `json:"resolution,omitempty"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// DisputeFromDomain converts a domain dispute to a response.
func DisputeFromDomain(d *domain.Dispute) *DisputeResponse {
	return &DisputeResponse{
		ID:         d.ID,
		EntryID:    d.EntryID,
		UserID:     d.UserID,
		Reason:     d.Reason,
		Status:     string(d.Status),
		Resolution: d.Resolution,
		ResolvedBy: d.ResolvedBy,
		CreatedAt:  d.CreatedAt,
		ResolvedAt: d.ResolvedAt,
	}
}

// DisputesFromDomain converts domain disputes to responses.
func DisputesFromDomain(disputes []*domain.Dispute) []*DisputeResponse {
	result := make([]*DisputeResponse, len(disputes))
	for i, d := range disputes {
		result[i] = DisputeFromDomain(d)
	}
	return result
}

// AccrualResponse summarizes one interest accrual run.
type AccrualResponse struct {
	Period            string          `json:"period"`
	AccountsProcessed int             `json:"accounts_processed"`
	AccountsSkipped   int             `json:"accounts_skipped"`
	TotalCredited     decimal.Decimal `json:"total_credited"`
	Failures          int             `json:"failures"`
}

// AccrualFromResult converts an accrual result to a response.
func AccrualFromResult(r *usecase.AccrualResult) *AccrualResponse {
	return &AccrualResponse{
		Period:            r.Period,
		AccountsProcessed: r.AccountsProcessed,
		AccountsSkipped:   r.AccountsSkipped,
		TotalCredited:     r.TotalCredited,
		Failures:          len(r.Failures),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
