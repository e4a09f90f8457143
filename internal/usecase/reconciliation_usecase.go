package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationUseCase is the balance invariant checker: a read-only audit
// pass that recomputes each account's balance from its COMPLETED entries and
// compares it to the stored value. Mismatches are reported, never
// auto-corrected.
type ReconciliationUseCase struct {
	accountRepo   AccountRepository
	entryRepo     EntryRepository
	corporateRepo CorporateRepository
	cache         Cache
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	corporateRepo CorporateRepository,
	cache Cache,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo:   accountRepo,
		entryRepo:     entryRepo,
		corporateRepo: corporateRepo,
		cache:         cache,
	}
}

// BalanceMismatch reports one account whose stored balance disagrees with the
// signed sum of its completed entries.
type BalanceMismatch struct {
	AccountID string          `json:"account_id"`
	Stored    decimal.Decimal `json:"stored"`
	Computed  decimal.Decimal `json:"computed"`
}

// AuditReport summarizes a full reconciliation pass.
type AuditReport struct {
	TotalAccounts       int               `json:"total_accounts"`
	Reconciled          int               `json:"reconciled"`
	Mismatches          []BalanceMismatch `json:"mismatches,omitempty"`
	CorporateReconciled bool              `json:"corporate_reconciled"`
	CheckedAt           time.Time         `json:"checked_at"`
}

// CheckAccount verifies one account's balance invariant. A nil mismatch means
// the account reconciles.
func (uc *ReconciliationUseCase) CheckAccount(ctx context.Context, accountID string) (*BalanceMismatch, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	computed, err := uc.entryRepo.SumCompletedByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.Balance.Equal(computed) {
		return nil, nil
	}

	return &BalanceMismatch{
		AccountID: accountID,
		Stored:    account.Balance,
		Computed:  computed,
	}, nil
}

// CheckCorporate verifies that the house account's balance tracks the net
// external flow recorded by its mirror entries.
func (uc *ReconciliationUseCase) CheckCorporate(ctx context.Context, corporateID string) (*BalanceMismatch, error) {
	corporate, err := uc.corporateRepo.GetByID(ctx, corporateID)
	if err != nil {
		return nil, err
	}

	netFlow, err := uc.corporateRepo.SumMirrorEntries(ctx, corporateID)
	if err != nil {
		return nil, err
	}

	if corporate.Balance.Equal(netFlow) {
		return nil, nil
	}

	return &BalanceMismatch{
		AccountID: corporateID,
		Stored:    corporate.Balance,
		Computed:  netFlow,
	}, nil
}

const reconciliationPageSize = 1000

// CheckAll runs the invariant checker over every account plus the corporate
// account, caching the resulting report for the admin surface.
func (uc *ReconciliationUseCase) CheckAll(ctx context.Context, corporateID string) (*AuditReport, error) {
	report := &AuditReport{
		CheckedAt: time.Now().UTC(),
	}

	for offset := 0; ; offset += reconciliationPageSize {
		accounts, err := uc.accountRepo.List(ctx, reconciliationPageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			break
		}

		for _, account := range accounts {
			report.TotalAccounts++

			computed, err := uc.entryRepo.SumCompletedByAccount(ctx, account.ID)
			if err != nil {
				return nil, err
			}

			if account.Balance.Equal(computed) {
				report.Reconciled++
				continue
			}

			report.Mismatches = append(report.Mismatches, BalanceMismatch{
				AccountID: account.ID,
				Stored:    account.Balance,
				Computed:  computed,
			})
		}

		if len(accounts) < reconciliationPageSize {
			break
		}
	}

	corporateMismatch, err := uc.CheckCorporate(ctx, corporateID)
	if err != nil {
		return nil, err
	}
	report.CorporateReconciled = corporateMismatch == nil
	if corporateMismatch != nil {
		report.Mismatches = append(report.Mismatches, *corporateMismatch)
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(report); err == nil {
			_ = uc.cache.Set(ctx, latestAuditCacheKey, payload, ReconciliationCacheTTL)
		}
	}

	return report, nil
}

const latestAuditCacheKey = "audit:latest"

// LatestReport returns the most recent cached audit report, if any.
func (uc *ReconciliationUseCase) LatestReport(ctx context.Context) (*AuditReport, error) {
	if uc.cache == nil {
		return nil, nil
	}

	payload, err := uc.cache.Get(ctx, latestAuditCacheKey)
	if err != nil || payload == nil {
		return nil, err
	}

	var report AuditReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, err
	}

	return &report, nil
}
