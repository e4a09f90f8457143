package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nuvobank/ledger/internal/adapter/http/handler"
	"github.com/nuvobank/ledger/internal/adapter/http/middleware"
	"github.com/nuvobank/ledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler    *handler.AccountHandler
	TransferHandler   *handler.TransferHandler
	EntryHandler      *handler.EntryHandler
	SettlementHandler *handler.SettlementHandler
	DepositHandler    *handler.DepositHandler
	DisputeHandler    *handler.DisputeHandler
	LedgerHandler     *handler.LedgerHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/number/{number}", cfg.AccountHandler.GetByNumber)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByAccount)
			r.Get("/{id}/audit", cfg.LedgerHandler.AuditAccount)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Post("/{id}/reverse", cfg.TransferHandler.Reverse)
		})

		// Ledger entries
		r.Route("/entries", func(r chi.Router) {
			r.Get("/reference/{reference}", cfg.EntryHandler.GetByReference)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Post("/{id}/settle", cfg.EntryHandler.Settle)
			r.Post("/{id}/disputes", cfg.DisputeHandler.Open)
			r.Get("/{id}/disputes", cfg.DisputeHandler.ListByEntry)
		})

		// Corporate settlements
		r.Route("/settlements", func(r chi.Router) {
			r.Post("/credits", cfg.SettlementHandler.Credit)
			r.Post("/debits", cfg.SettlementHandler.Debit)
		})

		// Fixed deposits
		r.Route("/deposits", func(r chi.Router) {
			r.Post("/", cfg.DepositHandler.Create)
			r.Get("/", cfg.DepositHandler.List)
			r.Get("/{id}", cfg.DepositHandler.Get)
			r.Post("/{id}/withdraw", cfg.DepositHandler.Withdraw)
		})

		// Disputes
		r.Route("/disputes", func(r chi.Router) {
			r.Get("/", cfg.DisputeHandler.ListOpen)
			r.Get("/{id}", cfg.DisputeHandler.Get)
			r.Post("/{id}/resolve", cfg.DisputeHandler.Resolve)
		})

		// Ledger-wide operations
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/audit", cfg.LedgerHandler.RunAudit)
			r.Get("/audit", cfg.LedgerHandler.LatestAudit)
			r.Post("/accruals", cfg.LedgerHandler.RunAccrual)
		})
	})

	return r
}
