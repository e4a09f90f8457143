package domain

import "github.com/shopspring/decimal"

// RateTier is the interest configuration for one account type: the annual
// rate in percent and the minimum balance an account must hold to earn it.
type RateTier struct {
	AnnualRate     decimal.Decimal
	MinimumBalance decimal.Decimal
}

// RateTable maps account types to their interest tier. It is loaded once from
// configuration and injected into the accrual engine; rates are never
// hardcoded at call sites.
type RateTable struct {
	Tiers   map[AccountType]RateTier
	Default RateTier
}

// TierFor returns the tier for an account type, falling back to the default
// tier for unrecognized types.
func (t RateTable) TierFor(accountType AccountType) RateTier {
	if tier, ok := t.Tiers[accountType]; ok {
		return tier
	}
	return t.Default
}

// DefaultRateTable returns the standard product rates.
func DefaultRateTable() RateTable {
	return RateTable{
		Tiers: map[AccountType]RateTier{
			AccountTypeSavings: {
				AnnualRate:     decimal.NewFromFloat(2.5),
				MinimumBalance: decimal.Zero,
			},
			AccountTypeChecking: {
				AnnualRate:     decimal.NewFromFloat(0.5),
				MinimumBalance: decimal.NewFromInt(100),
			},
			AccountTypeBusiness: {
				AnnualRate:     decimal.NewFromFloat(1.75),
				MinimumBalance: decimal.NewFromInt(500),
			},
		},
		Default: RateTier{
			AnnualRate:     decimal.NewFromFloat(0.25),
			MinimumBalance: decimal.NewFromInt(100),
		},
	}
}

// MonthlyInterest computes one billing period's interest on a balance:
// balance * (annualRate/12) / 100, rounded half-up to cents. Returns zero for
// balances below the tier minimum.
func (tier RateTier) MonthlyInterest(balance decimal.Decimal) decimal.Decimal {
	if balance.LessThan(tier.MinimumBalance) {
		return decimal.Zero
	}
	return balance.
		Mul(tier.AnnualRate.Div(decimal.NewFromInt(12))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}
