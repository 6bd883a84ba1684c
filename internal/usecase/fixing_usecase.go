package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

// FixingUseCase drives fixing aggregates. Delete reverses and cancels;
// Restore flips a cancelled fixing back without re-posting, so the ledger
// keeps both the original and the reversal batch while only the document
// status moves.
type FixingUseCase struct {
	engine  *PostingEngine
	fixings FixingRepository
	idGen   IDGenerator
}

// NewFixingUseCase creates a new FixingUseCase.
func NewFixingUseCase(engine *PostingEngine, fixings FixingRepository, idGen IDGenerator) *FixingUseCase {
	return &FixingUseCase{
		engine:  engine,
		fixings: fixings,
		idGen:   idGen,
	}
}

// CreateFixingInput represents input for creating a fixing.
type CreateFixingInput struct {
	Type      domain.FixingType
	PartyID   string
	Quantity  decimal.Decimal
	Rate      decimal.Decimal
	Currency  string
	VoucherNo string
	ActorID   string
}

// CreateFixing saves a new fixing and posts it.
func (uc *FixingUseCase) CreateFixing(ctx context.Context, input CreateFixingInput) (*domain.Fixing, error) {
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	fixing := &domain.Fixing{
		ID:        uc.idGen.Generate(),
		Type:      input.Type,
		PartyID:   input.PartyID,
		Quantity:  input.Quantity,
		Rate:      input.Rate,
		Currency:  input.Currency,
		VoucherNo: input.VoucherNo,
		Status:    domain.StatusDraft,
		IsActive:  true,
		CreatedBy: input.ActorID,
		UpdatedBy: input.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.fixings.Create(ctx, tx, fixing); err != nil {
			return err
		}
		_, err := uc.engine.PostFixing(ctx, tx, fixing, input.ActorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return fixing, nil
}

// DeleteFixing reverses the postings and soft-cancels the fixing.
func (uc *FixingUseCase) DeleteFixing(ctx context.Context, id, actorID string) (*domain.Fixing, error) {
	fixing, err := uc.fixings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	original := *fixing
	if err := fixing.Cancel(time.Now().UTC()); err != nil {
		return nil, err
	}
	fixing.UpdatedBy = actorID

	err = uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if _, err := uc.engine.ReverseFixing(ctx, tx, &original, actorID, ReversalSuffixCancellation); err != nil {
			return err
		}
		return uc.fixings.Update(ctx, tx, fixing)
	})
	if err != nil {
		return nil, err
	}

	return fixing, nil
}

// RestoreFixing flips a cancelled fixing back to draft. Status-only: no
// re-posting happens here.
func (uc *FixingUseCase) RestoreFixing(ctx context.Context, id, actorID string) (*domain.Fixing, error) {
	fixing, err := uc.fixings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fixing.Restore(time.Now().UTC()); err != nil {
		return nil, err
	}
	fixing.UpdatedBy = actorID

	err = uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.fixings.Update(ctx, tx, fixing)
	})
	if err != nil {
		return nil, err
	}

	return fixing, nil
}

// GetFixing retrieves a fixing by ID.
func (uc *FixingUseCase) GetFixing(ctx context.Context, id string) (*domain.Fixing, error) {
	return uc.fixings.GetByID(ctx, id)
}

// ListFixings lists fixings with pagination.
func (uc *FixingUseCase) ListFixings(ctx context.Context, limit, offset int) ([]*domain.Fixing, error) {
	return uc.fixings.List(ctx, clampLimit(limit), offset)
}
