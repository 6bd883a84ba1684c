package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karat/bullionledger/internal/adapter/http/dto"
	"github.com/karat/bullionledger/internal/domain"
)

// RegistryService defines the behavior needed by RegistryHandler.
type RegistryService interface {
	GetBatch(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error)
	GetBatchSums(ctx context.Context, transactionID string) ([]domain.TypeSum, error)
	ListByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.LedgerEntry, error)
	StockLedger(ctx context.Context, stockCode string, limit, offset int) ([]*domain.LedgerEntry, error)
}

// RegistryHandler exposes read-side queries over the ledger.
type RegistryHandler struct {
	registryUC RegistryService
}

// NewRegistryHandler creates a new RegistryHandler.
func NewRegistryHandler(registryUC RegistryService) *RegistryHandler {
	return &RegistryHandler{registryUC: registryUC}
}

// GetBatch returns all entries of one posting batch.
func (h *RegistryHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	entries, err := h.registryUC.GetBatch(r.Context(), transactionID)
	if err != nil {
		writeDomainError(w, err, "failed to get batch")
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// GetBatchSums returns per-book debit/credit sums for one posting batch.
func (h *RegistryHandler) GetBatchSums(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	sums, err := h.registryUC.GetBatchSums(r.Context(), transactionID)
	if err != nil {
		writeDomainError(w, err, "failed to get batch sums")
		return
	}

	writeJSON(w, http.StatusOK, dto.TypeSumsFromDomain(sums))
}

// ListByParty returns entries concerning a party.
func (h *RegistryHandler) ListByParty(w http.ResponseWriter, r *http.Request) {
	partyID := chi.URLParam(r, "id")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.registryUC.ListByParty(r.Context(), partyID, limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// StockLedger returns entries referencing a stock code.
func (h *RegistryHandler) StockLedger(w http.ResponseWriter, r *http.Request) {
	stockCode := chi.URLParam(r, "code")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.registryUC.StockLedger(r.Context(), stockCode, limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list stock ledger")
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
