package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nuvobank/ledger/internal/adapter/http/dto"
	"github.com/nuvobank/ledger/internal/domain"
	"github.com/nuvobank/ledger/internal/usecase"
)

// DisputeHandler handles dispute HTTP requests.
type DisputeHandler struct {
	disputeUC *usecase.DisputeUseCase
}

// NewDisputeHandler creates a new DisputeHandler.
func NewDisputeHandler(disputeUC *usecase.DisputeUseCase) *DisputeHandler {
	return &DisputeHandler{disputeUC: disputeUC}
}

// Open opens a dispute against the entry named in the path.
func (h *DisputeHandler) Open(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.OpenDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	dispute, err := h.disputeUC.Open(r.Context(), req.UserID, entryID, req.Reason)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open dispute", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DisputeFromDomain(dispute))
}

// Get retrieves a dispute by ID.
func (h *DisputeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing dispute ID", "")
		return
	}

	dispute, err := h.disputeUC.GetDispute(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get dispute", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DisputeFromDomain(dispute))
}

// ListByEntry lists the dispute history of an entry, oldest first.
func (h *DisputeHandler) ListByEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	disputes, err := h.disputeUC.ListByEntry(r.Context(), entryID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list disputes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DisputesFromDomain(disputes))
}

// ListOpen lists pending disputes for the operations queue.
func (h *DisputeHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	disputes, err := h.disputeUC.ListOpen(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list open disputes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DisputesFromDomain(disputes))
}

// Resolve records an operator's ruling on a dispute.
func (h *DisputeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing dispute ID", "")
		return
	}

	var req dto.ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	dispute, err := h.disputeUC.Resolve(r.Context(), req.ActorID, id, domain.DisputeStatus(req.Outcome), req.Resolution)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve dispute", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DisputeFromDomain(dispute))
}
