package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	EntriesWritten  *prometheus.CounterVec
	AccountsCreated prometheus.Counter

	// Transfer metrics
	TransfersCreated  prometheus.Counter
	TransfersReversed prometheus.Counter
	TransferAmount    prometheus.Histogram
	TransferErrors    *prometheus.CounterVec

	// Settlement metrics
	SettlementsProcessed *prometheus.CounterVec
	SettlementReplays    prometheus.Counter
	LimitRejections      *prometheus.CounterVec

	// Interest metrics
	InterestRuns     prometheus.Counter
	InterestAccrued  prometheus.Counter
	AccrualFailures  prometheus.Counter

	// Fixed deposit metrics
	DepositsOpened    prometheus.Counter
	DepositsWithdrawn prometheus.Counter
	DepositsSwept     prometheus.Counter

	// Dispute metrics
	DisputesOpened   prometheus.Counter
	DisputesResolved *prometheus.CounterVec

	// Reconciliation metrics
	AuditRuns         prometheus.Counter
	BalanceMismatches prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesWritten: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_entries_written_total",
				Help: "Total ledger entries written by type",
			},
			[]string{"type"},
		),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts opened",
		}),

		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransfersReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transfers_reversed_total",
			Help: "Total number of transfers reversed",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		SettlementsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_settlements_processed_total",
				Help: "Total settlements routed through the corporate account",
			},
			[]string{"direction"},
		),
		SettlementReplays: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_settlement_replays_total",
			Help: "Total settlement requests answered from an existing reference",
		}),
		LimitRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_limit_rejections_total",
				Help: "Total settlements rejected by corporate limits",
			},
			[]string{"window"},
		),

		InterestRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_interest_runs_total",
			Help: "Total interest accrual batch runs",
		}),
		InterestAccrued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_interest_accounts_accrued_total",
			Help: "Total accounts credited with interest",
		}),
		AccrualFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_interest_accrual_failures_total",
			Help: "Total per-account accrual failures",
		}),

		DepositsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_deposits_opened_total",
			Help: "Total fixed deposits opened",
		}),
		DepositsWithdrawn: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_deposits_withdrawn_total",
			Help: "Total fixed deposits withdrawn",
		}),
		DepositsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_deposits_swept_total",
			Help: "Total matured deposits reported by the sweep job",
		}),

		DisputesOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_disputes_opened_total",
			Help: "Total disputes opened",
		}),
		DisputesResolved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_disputes_resolved_total",
				Help: "Total disputes resolved by outcome",
			},
			[]string{"outcome"},
		),

		AuditRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_audit_runs_total",
			Help: "Total full reconciliation passes",
		}),
		BalanceMismatches: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_balance_mismatches",
			Help: "Mismatched accounts found by the last reconciliation pass",
		}),
	}
}
