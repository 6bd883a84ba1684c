package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

// FundTransferUseCase drives fund transfers and opening balance seeds.
type FundTransferUseCase struct {
	engine    *PostingEngine
	transfers FundTransferRepository
	idGen     IDGenerator
}

// NewFundTransferUseCase creates a new FundTransferUseCase.
func NewFundTransferUseCase(engine *PostingEngine, transfers FundTransferRepository, idGen IDGenerator) *FundTransferUseCase {
	return &FundTransferUseCase{
		engine:    engine,
		transfers: transfers,
		idGen:     idGen,
	}
}

// CreateFundTransferInput represents input for a fund transfer.
type CreateFundTransferInput struct {
	SenderID   string
	ReceiverID string
	AssetType  domain.AssetType
	Currency   string
	Value      decimal.Decimal
	ActorID    string
}

// CreateFundTransfer moves cash or gold between two party accounts inside
// one unit of work.
func (uc *FundTransferUseCase) CreateFundTransfer(ctx context.Context, input CreateFundTransferInput) (*domain.FundTransfer, error) {
	transfer := &domain.FundTransfer{
		ID:         uc.idGen.Generate(),
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		AssetType:  input.AssetType,
		Currency:   input.Currency,
		Value:      input.Value,
		CreatedBy:  input.ActorID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	err := uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.transfers.Create(ctx, tx, transfer); err != nil {
			return err
		}
		_, err := uc.engine.PostFundTransfer(ctx, tx, transfer, input.ActorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// CreateOpeningBalance seeds the receiver's cash position; there is no
// sender side.
func (uc *FundTransferUseCase) CreateOpeningBalance(ctx context.Context, receiverID string, value decimal.Decimal, actorID string) error {
	return uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		_, err := uc.engine.PostOpeningBalanceTransfer(ctx, tx, receiverID, value, actorID)
		return err
	})
}

// GetFundTransfer retrieves a transfer by ID.
func (uc *FundTransferUseCase) GetFundTransfer(ctx context.Context, id string) (*domain.FundTransfer, error) {
	return uc.transfers.GetByID(ctx, id)
}

// ListFundTransfersByParty lists transfers where the party is sender or
// receiver.
func (uc *FundTransferUseCase) ListFundTransfersByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.FundTransfer, error) {
	return uc.transfers.ListByParty(ctx, partyID, clampLimit(limit), offset)
}
