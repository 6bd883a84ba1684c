package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karat/bullionledger/internal/adapter/http/dto"
	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// FixingService defines the behavior needed by FixingHandler.
type FixingService interface {
	CreateFixing(ctx context.Context, input usecase.CreateFixingInput) (*domain.Fixing, error)
	DeleteFixing(ctx context.Context, id, actorID string) (*domain.Fixing, error)
	RestoreFixing(ctx context.Context, id, actorID string) (*domain.Fixing, error)
	GetFixing(ctx context.Context, id string) (*domain.Fixing, error)
	ListFixings(ctx context.Context, limit, offset int) ([]*domain.Fixing, error)
}

// FixingHandler handles fixing HTTP requests.
type FixingHandler struct {
	fixingUC FixingService
}

// NewFixingHandler creates a new FixingHandler.
func NewFixingHandler(fixingUC FixingService) *FixingHandler {
	return &FixingHandler{fixingUC: fixingUC}
}

// Create creates a fixing and posts it.
func (h *FixingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFixingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	fixing, err := h.fixingUC.CreateFixing(r.Context(), req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeDomainError(w, err, "failed to create fixing")
		return
	}

	writeJSON(w, http.StatusCreated, dto.FixingFromDomain(fixing))
}

// Get retrieves a fixing by ID.
func (h *FixingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing fixing ID", "")
		return
	}

	fixing, err := h.fixingUC.GetFixing(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get fixing")
		return
	}

	writeJSON(w, http.StatusOK, dto.FixingFromDomain(fixing))
}

// List lists fixings.
func (h *FixingHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	fixings, err := h.fixingUC.ListFixings(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list fixings")
		return
	}

	writeJSON(w, http.StatusOK, dto.FixingsFromDomain(fixings))
}

// Delete reverses and soft-cancels a fixing.
func (h *FixingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fixing, err := h.fixingUC.DeleteFixing(r.Context(), id, actorID(r))
	if err != nil {
		writeDomainError(w, err, "failed to delete fixing")
		return
	}

	writeJSON(w, http.StatusOK, dto.FixingFromDomain(fixing))
}

// Restore flips a cancelled fixing back to draft without re-posting.
func (h *FixingHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fixing, err := h.fixingUC.RestoreFixing(r.Context(), id, actorID(r))
	if err != nil {
		writeDomainError(w, err, "failed to restore fixing")
		return
	}

	writeJSON(w, http.StatusOK, dto.FixingFromDomain(fixing))
}
