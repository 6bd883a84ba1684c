package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karat/bullionledger/internal/usecase"
)

// ReconciliationService defines the behavior needed by
// ReconciliationHandler.
type ReconciliationService interface {
	CheckBatch(ctx context.Context, transactionID string) (*usecase.BatchReport, error)
	LedgerTotals(ctx context.Context) (*usecase.LedgerReport, error)
}

// ReconciliationHandler exposes consistency checks over the registry.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// CheckBatch validates one posting batch.
func (h *ReconciliationHandler) CheckBatch(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	report, err := h.reconciliationUC.CheckBatch(r.Context(), transactionID)
	if err != nil {
		writeDomainError(w, err, "failed to check batch")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// LedgerTotals returns debit/credit totals per book across the registry.
func (h *ReconciliationHandler) LedgerTotals(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.LedgerTotals(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to compute ledger totals")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
