package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus is the lifecycle state of a fixed deposit.
// ACTIVE -> MATURED is implicit (time-based); ACTIVE -> WITHDRAWN is the only
// stored transition and is terminal.
type DepositStatus string

const (
	DepositStatusActive    DepositStatus = "ACTIVE"
	DepositStatusMatured   DepositStatus = "MATURED"
	DepositStatusWithdrawn DepositStatus = "WITHDRAWN"
)

const daysPerYear = 365

// FixedDeposit is a time-locked principal earning a fixed annual rate,
// funded by a debit against the owning account and released back with
// interest only at or after maturity.
type FixedDeposit struct {
	ID             string
	UserID         string
	AccountID      string
	Principal      decimal.Decimal
	AnnualRate     decimal.Decimal
	DurationMonths int
	MaturesAt      time.Time
	Status         DepositStatus
	CreatedAt      time.Time
	WithdrawnAt    *time.Time
}

// Validate checks the deposit terms at creation time.
func (d *FixedDeposit) Validate() error {
	if d.Principal.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if d.AnnualRate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}
	if d.DurationMonths < 1 {
		return ErrInvalidDuration
	}
	return nil
}

// IsMatured reports whether the deposit has reached maturity at the given time.
func (d *FixedDeposit) IsMatured(now time.Time) bool {
	return !now.Before(d.MaturesAt)
}

// EffectiveStatus returns WITHDRAWN or, for active deposits, MATURED once the
// maturity date has passed. The stored status never holds MATURED.
func (d *FixedDeposit) EffectiveStatus(now time.Time) DepositStatus {
	if d.Status == DepositStatusWithdrawn {
		return DepositStatusWithdrawn
	}
	if d.IsMatured(now) {
		return DepositStatusMatured
	}
	return DepositStatusActive
}

// AccruedInterest computes interest earned up to the given time using actual
// elapsed days: principal * rate/100 * days/365, rounded half-up to cents.
// Before maturity this is a display figure only; the realized amount is fixed
// at withdrawal time by the same formula.
func (d *FixedDeposit) AccruedInterest(now time.Time) decimal.Decimal {
	if now.Before(d.CreatedAt) {
		return decimal.Zero
	}
	days := decimal.NewFromInt(int64(now.Sub(d.CreatedAt).Hours() / 24))
	return d.Principal.
		Mul(d.AnnualRate).
		Div(decimal.NewFromInt(100)).
		Mul(days).
		Div(decimal.NewFromInt(daysPerYear)).
		Round(2)
}

// MaturityValue is the principal plus interest accrued up to the given time.
func (d *FixedDeposit) MaturityValue(now time.Time) decimal.Decimal {
	return d.Principal.Add(d.AccruedInterest(now))
}
