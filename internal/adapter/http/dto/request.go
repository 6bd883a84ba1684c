package dto

import (
	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// CreatePartyRequest represents a request to create a trading party.
type CreatePartyRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePartyRequest) ToUseCaseInput() usecase.CreatePartyInput {
	return usecase.CreatePartyInput{
		Code:     r.Code,
		Name:     r.Name,
		Currency: r.Currency,
	}
}

// CreateTransactionRequest represents a request to create a metal
// transaction.
type CreateTransactionRequest struct {
	TransactionType string             `json:"transaction_type"`
	PartyID         string             `json:"party_id"`
	Currency        string             `json:"currency"`
	VoucherNo       string             `json:"voucher_no"`
	CostCenter      string             `json:"cost_center"`
	Status          string             `json:"status,omitempty"`
	StockLines      []domain.StockLine `json:"stock_lines"`
	VatPercentage   decimal.Decimal    `json:"vat_percentage"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(actorID string) usecase.CreateMetalTransactionInput {
	return usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionType(r.TransactionType),
		PartyID:         r.PartyID,
		Currency:        r.Currency,
		VoucherNo:       r.VoucherNo,
		CostCenter:      r.CostCenter,
		Status:          domain.TransactionStatus(r.Status),
		StockLines:      r.StockLines,
		VatPercentage:   r.VatPercentage,
		ActorID:         actorID,
	}
}

// UpdateTransactionRequest represents a partial update to a metal
// transaction. Absent fields are left untouched.
type UpdateTransactionRequest struct {
	TransactionType *string            `json:"transaction_type,omitempty"`
	VoucherNo       *string            `json:"voucher_no,omitempty"`
	CostCenter      *string            `json:"cost_center,omitempty"`
	Status          *string            `json:"status,omitempty"`
	StockLines      []domain.StockLine `json:"stock_lines,omitempty"`
	VatPercentage   *decimal.Decimal   `json:"vat_percentage,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput(actorID string) usecase.UpdateMetalTransactionInput {
	input := usecase.UpdateMetalTransactionInput{
		VoucherNo:     r.VoucherNo,
		CostCenter:    r.CostCenter,
		StockLines:    r.StockLines,
		VatPercentage: r.VatPercentage,
		ActorID:       actorID,
	}
	if r.TransactionType != nil {
		tt := domain.TransactionType(*r.TransactionType)
		input.TransactionType = &tt
	}
	if r.Status != nil {
		st := domain.TransactionStatus(*r.Status)
		input.Status = &st
	}
	return input
}

// StockLineRequest wraps a single stock line for line-level mutations.
type StockLineRequest struct {
	Line domain.StockLine `json:"line"`
}

// CreatePurchaseRequest represents a request to create a metal purchase.
type CreatePurchaseRequest struct {
	PartyID       string             `json:"party_id"`
	Currency      string             `json:"currency"`
	VoucherNo     string             `json:"voucher_no"`
	CostCenter    string             `json:"cost_center"`
	StockLines    []domain.StockLine `json:"stock_lines"`
	VatPercentage decimal.Decimal    `json:"vat_percentage"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePurchaseRequest) ToUseCaseInput(actorID string) usecase.CreateMetalPurchaseInput {
	return usecase.CreateMetalPurchaseInput{
		PartyID:       r.PartyID,
		Currency:      r.Currency,
		VoucherNo:     r.VoucherNo,
		CostCenter:    r.CostCenter,
		StockLines:    r.StockLines,
		VatPercentage: r.VatPercentage,
		ActorID:       actorID,
	}
}

// UpdatePurchaseRequest represents a partial update to a metal purchase.
type UpdatePurchaseRequest struct {
	VoucherNo     *string            `json:"voucher_no,omitempty"`
	CostCenter    *string            `json:"cost_center,omitempty"`
	StockLines    []domain.StockLine `json:"stock_lines,omitempty"`
	VatPercentage *decimal.Decimal   `json:"vat_percentage,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePurchaseRequest) ToUseCaseInput(actorID string) usecase.UpdateMetalPurchaseInput {
	return usecase.UpdateMetalPurchaseInput{
		VoucherNo:     r.VoucherNo,
		CostCenter:    r.CostCenter,
		StockLines:    r.StockLines,
		VatPercentage: r.VatPercentage,
		ActorID:       actorID,
	}
}

// CreateVoucherRequest represents a request to create an entry voucher.
type CreateVoucherRequest struct {
	Type       string             `json:"type"`
	PartyID    string             `json:"party_id"`
	VoucherNo  string             `json:"voucher_no"`
	CashLines  []domain.CashLine  `json:"cash_lines,omitempty"`
	MetalLines []domain.MetalLine `json:"metal_lines,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateVoucherRequest) ToUseCaseInput(actorID string) usecase.CreateVoucherInput {
	return usecase.CreateVoucherInput{
		Type:       domain.VoucherType(r.Type),
		PartyID:    r.PartyID,
		VoucherNo:  r.VoucherNo,
		CashLines:  r.CashLines,
		MetalLines: r.MetalLines,
		ActorID:    actorID,
	}
}

// CreateFixingRequest represents a request to create a fixing.
type CreateFixingRequest struct {
	Type      string          `json:"type"`
	PartyID   string          `json:"party_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
	Currency  string          `json:"currency"`
	VoucherNo string          `json:"voucher_no"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateFixingRequest) ToUseCaseInput(actorID string) usecase.CreateFixingInput {
	return usecase.CreateFixingInput{
		Type:      domain.FixingType(r.Type),
		PartyID:   r.PartyID,
		Quantity:  r.Quantity,
		Rate:      r.Rate,
		Currency:  r.Currency,
		VoucherNo: r.VoucherNo,
		ActorID:   actorID,
	}
}

// CreateTransferRequest represents a request to create a fund transfer.
type CreateTransferRequest struct {
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	AssetType  string          `json:"asset_type"`
	Currency   string          `json:"currency"`
	Value      decimal.Decimal `json:"value"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput(actorID string) usecase.CreateFundTransferInput {
	return usecase.CreateFundTransferInput{
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		AssetType:  domain.AssetType(r.AssetType),
		Currency:   r.Currency,
		Value:      r.Value,
		ActorID:    actorID,
	}
}

// CreateOpeningBalanceRequest seeds a party's opening cash position.
type CreateOpeningBalanceRequest struct {
	ReceiverID string          `json:"receiver_id"`
	Value      decimal.Decimal `json:"value"`
}
