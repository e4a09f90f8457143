package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CorporateAccount is the bank's own settlement account. Every externally
// sourced credit or debit is mirrored against exactly one corporate account,
// so its balance tracks the net external money flow and can be reconciled
// independently.
type CorporateAccount struct {
	ID           string
	Name         string
	Number       string
	Currency     string
	Balance      decimal.Decimal
	Version      int64
	Active       bool
	DailyLimit   decimal.Decimal
	MonthlyLimit decimal.Decimal
	TransferFee  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CheckLimits verifies that routing amount on top of the rolling daily and
// monthly totals stays within the configured limits. A zero limit disables
// the corresponding check.
func (c *CorporateAccount) CheckLimits(dailyTotal, monthlyTotal, amount decimal.Decimal) error {
	if !c.Active {
		return ErrCorporateInactive
	}
	if c.DailyLimit.IsPositive() && dailyTotal.Add(amount).GreaterThan(c.DailyLimit) {
		return ErrLimitExceeded
	}
	if c.MonthlyLimit.IsPositive() && monthlyTotal.Add(amount).GreaterThan(c.MonthlyLimit) {
		return ErrLimitExceeded
	}
	return nil
}
