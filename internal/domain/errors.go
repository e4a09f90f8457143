package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountInactive     = errors.New("account is not active")
	ErrNotAccountOwner     = errors.New("account does not belong to caller")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateAccount    = errors.New("account number already exists")
	ErrInvalidAccountType  = errors.New("unknown account type")

	// Entry errors
	ErrEntryNotFound           = errors.New("ledger entry not found")
	ErrDuplicateReference      = errors.New("ledger reference already exists")
	ErrReferenceRequired       = errors.New("ledger reference is required")
	ErrInvalidStatusTransition = errors.New("invalid entry status transition")

	// Transfer errors
	ErrSameAccount   = errors.New("cannot transfer to same account")
	ErrInvalidAmount = errors.New("amount must be positive")

	// Corporate settlement errors
	ErrCorporateNotFound  = errors.New("corporate account not found")
	ErrCorporateInactive  = errors.New("corporate account is not active")
	ErrLimitExceeded      = errors.New("corporate transfer limit exceeded")

	// Fixed deposit errors
	ErrDepositNotFound         = errors.New("fixed deposit not found")
	ErrDepositNotMatured       = errors.New("fixed deposit has not matured")
	ErrDepositAlreadyWithdrawn = errors.New("fixed deposit already withdrawn")
	ErrInvalidDuration         = errors.New("deposit duration must be at least one month")
	ErrInvalidRate             = errors.New("interest rate must be positive")

	// Dispute errors
	ErrDisputeNotFound    = errors.New("dispute not found")
	ErrDisputeAlreadyOpen = errors.New("a dispute is already open for this entry")
	ErrDisputeResolved    = errors.New("dispute is already resolved")
	ErrReasonRequired     = errors.New("dispute reason is required")
	ErrResolutionRequired = errors.New("resolution text is required")
)
