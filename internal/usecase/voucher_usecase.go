package usecase

import (
	"context"
	"time"

	"github.com/karat/bullionledger/internal/domain"
)

// VoucherUseCase drives entry vouchers: cash/metal receipts and payments.
type VoucherUseCase struct {
	engine   *PostingEngine
	vouchers VoucherRepository
	idGen    IDGenerator
}

// NewVoucherUseCase creates a new VoucherUseCase.
func NewVoucherUseCase(engine *PostingEngine, vouchers VoucherRepository, idGen IDGenerator) *VoucherUseCase {
	return &VoucherUseCase{
		engine:   engine,
		vouchers: vouchers,
		idGen:    idGen,
	}
}

// CreateVoucherInput represents input for creating an entry voucher.
type CreateVoucherInput struct {
	Type       domain.VoucherType
	PartyID    string
	VoucherNo  string
	CashLines  []domain.CashLine
	MetalLines []domain.MetalLine
	ActorID    string
}

// CreateVoucher saves a new voucher and posts it according to its kind.
func (uc *VoucherUseCase) CreateVoucher(ctx context.Context, input CreateVoucherInput) (*domain.Voucher, error) {
	now := time.Now().UTC()
	voucher := &domain.Voucher{
		ID:         uc.idGen.Generate(),
		Type:       input.Type,
		PartyID:    input.PartyID,
		VoucherNo:  input.VoucherNo,
		Status:     domain.StatusCompleted,
		IsActive:   true,
		CashLines:  input.CashLines,
		MetalLines: input.MetalLines,
		CreatedBy:  input.ActorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.vouchers.Create(ctx, tx, voucher); err != nil {
			return err
		}

		var err error
		switch voucher.Type {
		case domain.VoucherCashReceipt:
			_, err = uc.engine.PostCashReceipt(ctx, tx, voucher, input.ActorID)
		case domain.VoucherCashPayment:
			_, err = uc.engine.PostCashPayment(ctx, tx, voucher, input.ActorID)
		case domain.VoucherMetalReceipt:
			_, err = uc.engine.PostMetalReceipt(ctx, tx, voucher, input.ActorID)
		case domain.VoucherMetalPayment:
			_, err = uc.engine.PostMetalPayment(ctx, tx, voucher, input.ActorID)
		default:
			err = domain.ErrInvalidAssetType
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return voucher, nil
}

// DeleteVoucher reverses the postings, undoes the cash-account or stock
// counter deltas and soft-cancels. The record stays in place while registry
// entries reference it.
func (uc *VoucherUseCase) DeleteVoucher(ctx context.Context, id, actorID string) (*domain.Voucher, error) {
	voucher, err := uc.vouchers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	old := snapshotVoucher(voucher)
	now := time.Now().UTC()
	if err := voucher.Cancel(now); err != nil {
		return nil, err
	}

	err = uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if _, err := uc.engine.ReverseVoucher(ctx, tx, old, actorID, ReversalSuffixCancellation); err != nil {
			return err
		}
		return uc.vouchers.Update(ctx, tx, voucher)
	})
	if err != nil {
		return nil, err
	}

	return voucher, nil
}

// GetVoucher retrieves a voucher by ID.
func (uc *VoucherUseCase) GetVoucher(ctx context.Context, id string) (*domain.Voucher, error) {
	return uc.vouchers.GetByID(ctx, id)
}

// ListVouchers lists vouchers with pagination.
func (uc *VoucherUseCase) ListVouchers(ctx context.Context, limit, offset int) ([]*domain.Voucher, error) {
	return uc.vouchers.List(ctx, clampLimit(limit), offset)
}

func snapshotVoucher(voucher *domain.Voucher) *domain.Voucher {
	old := *voucher
	old.CashLines = make([]domain.CashLine, len(voucher.CashLines))
	copy(old.CashLines, voucher.CashLines)
	old.MetalLines = make([]domain.MetalLine, len(voucher.MetalLines))
	copy(old.MetalLines, voucher.MetalLines)
	return &old
}
