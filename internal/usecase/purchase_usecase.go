package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

// MetalPurchaseUseCase drives the metal purchase aggregate lifecycle.
type MetalPurchaseUseCase struct {
	engine    *PostingEngine
	purchases PurchaseRepository
	idGen     IDGenerator
}

// NewMetalPurchaseUseCase creates a new MetalPurchaseUseCase.
func NewMetalPurchaseUseCase(engine *PostingEngine, purchases PurchaseRepository, idGen IDGenerator) *MetalPurchaseUseCase {
	return &MetalPurchaseUseCase{
		engine:    engine,
		purchases: purchases,
		idGen:     idGen,
	}
}

// CreateMetalPurchaseInput represents input for creating a purchase.
type CreateMetalPurchaseInput struct {
	PartyID       string
	Currency      string
	VoucherNo     string
	CostCenter    string
	StockLines    []domain.StockLine
	VatPercentage decimal.Decimal
	ActorID       string
}

// CreateMetalPurchase saves a new purchase and posts it.
func (uc *MetalPurchaseUseCase) CreateMetalPurchase(ctx context.Context, input CreateMetalPurchaseInput) (*domain.MetalPurchase, error) {
	if len(input.StockLines) == 0 {
		return nil, domain.ErrMinimumStockItems
	}

	now := time.Now().UTC()
	purchase := &domain.MetalPurchase{
		ID:         uc.idGen.Generate(),
		PartyID:    input.PartyID,
		Currency:   input.Currency,
		VoucherNo:  input.VoucherNo,
		CostCenter: input.CostCenter,
		Status:     domain.StatusDraft,
		IsActive:   true,
		StockLines: input.StockLines,
		Totals:     domain.SessionTotals{VatPercentage: input.VatPercentage},
		CreatedBy:  input.ActorID,
		UpdatedBy:  input.ActorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	purchase.RecalculateTotals()

	err := uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.purchases.Create(ctx, tx, purchase); err != nil {
			return err
		}
		_, err := uc.engine.PostMetalPurchase(ctx, tx, purchase, input.ActorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// UpdateMetalPurchaseInput represents input for updating a purchase.
type UpdateMetalPurchaseInput struct {
	VoucherNo     *string
	CostCenter    *string
	StockLines    []domain.StockLine
	VatPercentage *decimal.Decimal
	ActorID       string
}

// UpdateMetalPurchase applies changes; when the lines or VAT change the old
// postings are reversed and the new state posted in one unit of work.
func (uc *MetalPurchaseUseCase) UpdateMetalPurchase(ctx context.Context, id string, input UpdateMetalPurchaseInput) (*domain.MetalPurchase, error) {
	purchase, err := uc.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status == domain.StatusCancelled {
		return nil, domain.ErrTransactionCancelled
	}

	old := snapshotPurchase(purchase)
	financial := input.StockLines != nil || input.VatPercentage != nil

	if input.VoucherNo != nil {
		purchase.VoucherNo = *input.VoucherNo
	}
	if input.CostCenter != nil {
		purchase.CostCenter = *input.CostCenter
	}
	if input.StockLines != nil {
		if len(input.StockLines) == 0 {
			return nil, domain.ErrMinimumStockItems
		}
		purchase.StockLines = input.StockLines
	}
	if input.VatPercentage != nil {
		purchase.Totals.VatPercentage = *input.VatPercentage
	}
	purchase.UpdatedBy = input.ActorID
	purchase.UpdatedAt = time.Now().UTC()
	purchase.RecalculateTotals()

	err = uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if financial {
			if _, err := uc.engine.ReverseMetalPurchase(ctx, tx, old, input.ActorID, ReversalSuffixAdjustment); err != nil {
				return err
			}
			if _, err := uc.engine.PostMetalPurchase(ctx, tx, purchase, input.ActorID); err != nil {
				return err
			}
		}
		return uc.purchases.Update(ctx, tx, purchase)
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// DeleteMetalPurchase reverses the postings and soft-cancels the purchase.
func (uc *MetalPurchaseUseCase) DeleteMetalPurchase(ctx context.Context, id, actorID string) (*domain.MetalPurchase, error) {
	purchase, err := uc.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	old := snapshotPurchase(purchase)
	if err := purchase.Cancel(time.Now().UTC()); err != nil {
		return nil, err
	}
	purchase.UpdatedBy = actorID

	err = uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if _, err := uc.engine.ReverseMetalPurchase(ctx, tx, old, actorID, ReversalSuffixCancellation); err != nil {
			return err
		}
		return uc.purchases.Update(ctx, tx, purchase)
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// GetMetalPurchase retrieves a purchase by ID.
func (uc *MetalPurchaseUseCase) GetMetalPurchase(ctx context.Context, id string) (*domain.MetalPurchase, error) {
	return uc.purchases.GetByID(ctx, id)
}

// ListMetalPurchases lists purchases with pagination.
func (uc *MetalPurchaseUseCase) ListMetalPurchases(ctx context.Context, limit, offset int) ([]*domain.MetalPurchase, error) {
	return uc.purchases.List(ctx, clampLimit(limit), offset)
}

func snapshotPurchase(p *domain.MetalPurchase) *domain.MetalPurchase {
	old := *p
	old.StockLines = make([]domain.StockLine, len(p.StockLines))
	copy(old.StockLines, p.StockLines)
	return &old
}
