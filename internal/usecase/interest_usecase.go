package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nuvobank/ledger/internal/domain"
)

// InterestUseCase accrues interest once per billing period over all active
// accounts with a positive balance. The rate table is injected; per-account
// references keyed by period make re-running a period a no-op.
type InterestUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	retrier     Retrier
	idGen       IDGenerator
	rates       domain.RateTable
	logger      *slog.Logger
}

// NewInterestUseCase creates a new InterestUseCase.
func NewInterestUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	retrier Retrier,
	idGen IDGenerator,
	rates domain.RateTable,
) *InterestUseCase {
	return &InterestUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		retrier:     retrier,
		idGen:       idGen,
		rates:       rates,
		logger:      slog.Default(),
	}
}

// AccrualFailure records one account the batch could not process.
type AccrualFailure struct {
	AccountID string
	Err       error
}

// AccrualResult summarizes one billing period run.
type AccrualResult struct {
	Period            string
	AccountsProcessed int
	AccountsSkipped   int
	TotalCredited     decimal.Decimal
	Failures          []AccrualFailure
}

const accrualPageSize = 500

// Run accrues interest for the given billing period (e.g. "2026-09"). One bad
// account never aborts the batch; failures are collected and reported.
func (uc *InterestUseCase) Run(ctx context.Context, period string) (*AccrualResult, error) {
	if period == "" {
		return nil, fmt.Errorf("billing period is required")
	}

	result := &AccrualResult{
		Period:        period,
		TotalCredited: decimal.Zero,
	}

	for offset := 0; ; offset += accrualPageSize {
		accounts, err := uc.accountRepo.ListActive(ctx, accrualPageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			break
		}

		for _, account := range accounts {
			if !account.Balance.IsPositive() {
				result.AccountsSkipped++
				continue
			}

			credited, err := uc.accrueAccount(ctx, account, period)
			if err != nil {
				if errors.Is(err, domain.ErrDuplicateReference) {
					// Period already accrued for this account; re-runs are safe.
					result.AccountsSkipped++
					continue
				}

				uc.logger.Warn("interest accrual failed for account",
					"account_id", account.ID,
					"period", period,
					"error", err,
				)
				result.Failures = append(result.Failures, AccrualFailure{AccountID: account.ID, Err: err})

				continue
			}

			if credited.IsZero() {
				result.AccountsSkipped++
				continue
			}

			result.AccountsProcessed++
			result.TotalCredited = result.TotalCredited.Add(credited)
		}

		if len(accounts) < accrualPageSize {
			break
		}
	}

	return result, nil
}

func (uc *InterestUseCase) accrueAccount(ctx context.Context, account *domain.Account, period string) (decimal.Decimal, error) {
	var credited decimal.Decimal

	err := uc.retrier.Retry(ctx, func() error {
		var execErr error
		credited, execErr = uc.executeAccrual(ctx, account.ID, period)
		return execErr
	})
	if err != nil {
		return decimal.Zero, err
	}

	return credited, nil
}

func (uc *InterestUseCase) executeAccrual(ctx context.Context, accountID, period string) (decimal.Decimal, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Re-read under lock: the listing snapshot may be stale by now.
	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	if !account.Active || !account.Balance.IsPositive() {
		return decimal.Zero, nil
	}

	tier := uc.rates.TierFor(account.Type)

	interest := tier.MonthlyInterest(account.Balance)
	if !interest.IsPositive() {
		return decimal.Zero, nil
	}

	now := time.Now().UTC()
	newBalance := account.ApplyCredit(interest)

	entry := &domain.Entry{
		ID:          uc.idGen.Generate(),
		AccountID:   account.ID,
		UserID:      account.UserID,
		Type:        domain.EntryTypeCredit,
		Amount:      interest,
		Description: fmt.Sprintf("interest for %s (%s)", period, account.Type),
		Status:      domain.EntryStatusCompleted,
		// One accrual per account per period; the unique reference guards
		// against double-running the job.
		Reference:       fmt.Sprintf("INT-%s-%s", period, account.Number),
		Category:        domain.CategoryInterest,
		NetAmount:       interest,
		PreviousBalance: account.Balance,
		CurrentBalance:  newBalance,
		AccountVersion:  account.Version + 1,
		CreatedAt:       now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return decimal.Zero, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return decimal.Zero, err
	}

	return interest, nil
}
