package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/adapter/http/dto"
	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	CreateFundTransfer(ctx context.Context, input usecase.CreateFundTransferInput) (*domain.FundTransfer, error)
	CreateOpeningBalance(ctx context.Context, receiverID string, value decimal.Decimal, actorID string) error
	GetFundTransfer(ctx context.Context, id string) (*domain.FundTransfer, error)
	ListFundTransfersByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.FundTransfer, error)
}

// TransferHandler handles fund transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves cash or gold between two parties.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.CreateFundTransfer(r.Context(), req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeDomainError(w, err, "failed to create transfer")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// CreateOpeningBalance seeds a party's opening cash position.
func (h *TransferHandler) CreateOpeningBalance(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOpeningBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.transferUC.CreateOpeningBalance(r.Context(), req.ReceiverID, req.Value, actorID(r)); err != nil {
		writeDomainError(w, err, "failed to create opening balance")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// Get retrieves a transfer by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	transfer, err := h.transferUC.GetFundTransfer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get transfer")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// ListByParty lists transfers where the party is sender or receiver.
func (h *TransferHandler) ListByParty(w http.ResponseWriter, r *http.Request) {
	partyID := chi.URLParam(r, "id")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	transfers, err := h.transferUC.ListFundTransfersByParty(r.Context(), partyID, limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list transfers")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}
