package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/karat/bullionledger/internal/adapter/http/dto"
	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateMetalTransaction(ctx context.Context, input usecase.CreateMetalTransactionInput) (*domain.MetalTransaction, error)
	UpdateMetalTransaction(ctx context.Context, id string, input usecase.UpdateMetalTransactionInput) (*domain.MetalTransaction, error)
	DeleteMetalTransaction(ctx context.Context, id, actorID string) (*domain.MetalTransaction, error)
	AddStockLine(ctx context.Context, id string, line domain.StockLine, actorID string) (*domain.MetalTransaction, error)
	UpdateStockLine(ctx context.Context, id string, index int, line domain.StockLine, actorID string) (*domain.MetalTransaction, error)
	RemoveStockLine(ctx context.Context, id string, index int, actorID string) (*domain.MetalTransaction, error)
	GetMetalTransaction(ctx context.Context, id string) (*domain.MetalTransaction, error)
	ListMetalTransactions(ctx context.Context, limit, offset int) ([]*domain.MetalTransaction, error)
}

// TransactionHandler handles metal transaction HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create creates a metal transaction and posts it.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.CreateMetalTransaction(r.Context(), req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeDomainError(w, err, "failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.transactionUC.GetMetalTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// List lists transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.transactionUC.ListMetalTransactions(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// Update applies header or financial changes to a transaction.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.UpdateMetalTransaction(r.Context(), id, req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeDomainError(w, err, "failed to update transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Delete reverses and soft-cancels a transaction.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	txn, err := h.transactionUC.DeleteMetalTransaction(r.Context(), id, actorID(r))
	if err != nil {
		writeDomainError(w, err, "failed to delete transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// AddLine appends a stock line to a transaction.
func (h *TransactionHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.StockLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.AddStockLine(r.Context(), id, req.Line, actorID(r))
	if err != nil {
		writeDomainError(w, err, "failed to add stock line")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// UpdateLine replaces a stock line at the given index.
func (h *TransactionHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index", err.Error())
		return
	}

	var req dto.StockLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.UpdateStockLine(r.Context(), id, index, req.Line, actorID(r))
	if err != nil {
		writeDomainError(w, err, "failed to update stock line")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// RemoveLine removes a stock line at the given index.
func (h *TransactionHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index", err.Error())
		return
	}

	txn, err := h.transactionUC.RemoveStockLine(r.Context(), id, index, actorID(r))
	if err != nil {
		writeDomainError(w, err, "failed to remove stock line")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}
