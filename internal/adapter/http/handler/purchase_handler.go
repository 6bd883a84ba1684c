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

// PurchaseService defines the behavior needed by PurchaseHandler.
type PurchaseService interface {
	CreateMetalPurchase(ctx context.Context, input usecase.CreateMetalPurchaseInput) (*domain.MetalPurchase, error)
	UpdateMetalPurchase(ctx context.Context, id string, input usecase.UpdateMetalPurchaseInput) (*domain.MetalPurchase, error)
	DeleteMetalPurchase(ctx context.Context, id, actorID string) (*domain.MetalPurchase, error)
	GetMetalPurchase(ctx context.Context, id string) (*domain.MetalPurchase, error)
	ListMetalPurchases(ctx context.Context, limit, offset int) ([]*domain.MetalPurchase, error)
}

// PurchaseHandler handles metal purchase HTTP requests.
type PurchaseHandler struct {
	purchaseUC PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseUC PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseUC: purchaseUC}
}

// Create creates a metal purchase and posts it.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	purchase, err := h.purchaseUC.CreateMetalPurchase(r.Context(), req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeDomainError(w, err, "failed to create purchase")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PurchaseFromDomain(purchase))
}

// Get retrieves a purchase by ID.
func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase ID", "")
		return
	}

	purchase, err := h.purchaseUC.GetMetalPurchase(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get purchase")
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseFromDomain(purchase))
}

// List lists purchases.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	purchases, err := h.purchaseUC.ListMetalPurchases(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list purchases")
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchasesFromDomain(purchases))
}

// Update applies header or financial changes to a purchase.
func (h *PurchaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	purchase, err := h.purchaseUC.UpdateMetalPurchase(r.Context(), id, req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeDomainError(w, err, "failed to update purchase")
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseFromDomain(purchase))
}

// Delete reverses and soft-cancels a purchase.
func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	purchase, err := h.purchaseUC.DeleteMetalPurchase(r.Context(), id, actorID(r))
	if err != nil {
		writeDomainError(w, err, "failed to delete purchase")
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseFromDomain(purchase))
}
