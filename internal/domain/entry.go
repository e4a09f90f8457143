package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType describes the kind of money movement an entry records.
type EntryType string

const (
	EntryTypeCredit     EntryType = "CREDIT"
	EntryTypeDebit      EntryType = "DEBIT"
	EntryTypeTransfer   EntryType = "TRANSFER"
	EntryTypeWithdrawal EntryType = "WITHDRAWAL"
	EntryTypeDeposit    EntryType = "DEPOSIT"
)

var creditEntryTypes = map[EntryType]bool{
	EntryTypeCredit:  true,
	EntryTypeDeposit: true,
}

// IsCredit reports whether the entry type increases the account balance.
// TRANSFER entries are recorded on the sending side and count as debits.
func (t EntryType) IsCredit() bool {
	return creditEntryTypes[t]
}

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusCompleted EntryStatus = "COMPLETED"
	EntryStatusFailed    EntryStatus = "FAILED"
	EntryStatusCancelled EntryStatus = "CANCELLED"
)

// entryStatusEdges holds the allowed status transitions. COMPLETED, FAILED and
// CANCELLED are terminal for the entry itself; dispute sub-state lives on the
// Dispute record, not here.
var entryStatusEdges = map[EntryStatus][]EntryStatus{
	EntryStatusPending: {EntryStatusCompleted, EntryStatusFailed, EntryStatusCancelled},
}

// CanTransitionTo reports whether a status change is legal.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	for _, allowed := range entryStatusEdges[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Entry categories used by downstream reporting to identify the origin of a
// credit or debit without parsing descriptions.
const (
	CategoryTransfer   = "transfer"
	CategorySettlement = "settlement"
	CategoryInterest   = "interest"
	CategoryDeposit    = "deposit"
	CategoryReversal   = "reversal"
)

// Entry is an immutable record of one money movement affecting exactly one
// account. Amount is always positive; SignedAmount applies the direction.
// Reference is unique across the ledger and is the idempotency boundary:
// replaying an external event with the same reference must not double-apply.
type Entry struct {
	ID              string
	AccountID       string
	UserID          string
	Type            EntryType
	Amount          decimal.Decimal
	Description     string
	Status          EntryStatus
	Reference       string
	Category        string
	Counterparty    string
	Fee             decimal.Decimal
	NetAmount       decimal.Decimal
	PreviousBalance decimal.Decimal
	CurrentBalance  decimal.Decimal
	AccountVersion  int64
	ActorID         string
	CreatedAt       time.Time
}

// SignedAmount returns the amount with the sign implied by the entry type.
func (e *Entry) SignedAmount() decimal.Decimal {
	if e.Type.IsCredit() {
		return e.Amount
	}
	return e.Amount.Neg()
}

// Validate checks the invariants an entry must satisfy before it is written.
func (e *Entry) Validate() error {
	if e.AccountID == "" {
		return ErrAccountNotFound
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if e.Reference == "" {
		return ErrReferenceRequired
	}
	return nil
}
