package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nuvobank/ledger/internal/adapter/http/dto"
	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/infrastructure/metrics"
	"github.com/nuvobank/ledger/internal/usecase"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	ProcessCredit(ctx context.Context, input usecase.SettlementInput) (*domain.Entry, error)
	ProcessDebit(ctx context.Context, input usecase.SettlementInput) (*domain.Entry, error)
}

// SettlementHandler routes externally confirmed money events through the
// corporate settlement account.
type SettlementHandler struct {
	settlementUC SettlementService
	metrics      *metrics.Metrics
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService, m *metrics.Metrics) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC, metrics: m}
}

// Credit routes externally sourced money into a customer account.
func (h *SettlementHandler) Credit(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, "credit", h.settlementUC.ProcessCredit)
}

// Debit routes money out of a customer account, charging the flat fee.
func (h *SettlementHandler) Debit(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, "debit", h.settlementUC.ProcessDebit)
}

func (h *SettlementHandler) process(
	w http.ResponseWriter,
	r *http.Request,
	direction string,
	fn func(context.Context, usecase.SettlementInput) (*domain.Entry, error),
) {
	var req dto.SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := fn(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to process settlement", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.SettlementsProcessed.WithLabelValues(direction).Inc()
	}

	// A replayed reference returns the original entry with the same shape.
	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}
