package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nuvobank/ledger/internal/adapter/http/dto"
	"github.com/nuvobank/ledger/internal/infrastructure/metrics"
	"github.com/nuvobank/ledger/internal/usecase"
)

// LedgerHandler handles ledger-wide operations: balance audits and interest
// accrual runs.
type LedgerHandler struct {
	reconUC     *usecase.ReconciliationUseCase
	interestUC  *usecase.InterestUseCase
	corporateID string
	metrics     *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(
	reconUC *usecase.ReconciliationUseCase,
	interestUC *usecase.InterestUseCase,
	corporateID string,
	m *metrics.Metrics,
) *LedgerHandler {
	return &LedgerHandler{
		reconUC:     reconUC,
		interestUC:  interestUC,
		corporateID: corporateID,
		metrics:     m,
	}
}

// RunAudit reconciles every account against its entry history.
func (h *LedgerHandler) RunAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconUC.CheckAll(r.Context(), h.corporateID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to run audit", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AuditRuns.Inc()
		h.metrics.BalanceMismatches.Set(float64(len(report.Mismatches)))
	}

	status := http.StatusOK
	if len(report.Mismatches) > 0 || !report.CorporateReconciled {
		status = http.StatusConflict
	}
	writeJSON(w, status, report)
}

// LatestAudit returns the most recent audit report, if any.
func (h *LedgerHandler) LatestAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconUC.LatestReport(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load audit report", err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "no audit report available", "")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// AuditAccount reconciles one account.
func (h *LedgerHandler) AuditAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	mismatch, err := h.reconUC.CheckAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to audit account", err.Error())
		return
	}

	if mismatch != nil {
		writeJSON(w, http.StatusConflict, mismatch)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reconciled": true})
}

// RunAccrual runs interest accrual for the requested billing period.
func (h *LedgerHandler) RunAccrual(w http.ResponseWriter, r *http.Request) {
	var req dto.RunAccrualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Period == "" {
		writeError(w, http.StatusBadRequest, "missing billing period", "")
		return
	}

	result, err := h.interestUC.Run(r.Context(), req.Period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to run accrual", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.InterestRuns.Inc()
		h.metrics.InterestAccrued.Add(float64(result.AccountsProcessed))
		h.metrics.AccrualFailures.Add(float64(len(result.Failures)))
	}

	writeJSON(w, http.StatusOK, dto.AccrualFromResult(result))
}
