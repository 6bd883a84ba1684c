package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType distinguishes the four entry-voucher kinds.
type VoucherType string

const (
	VoucherCashReceipt  VoucherType = "cash_receipt"
	VoucherCashPayment  VoucherType = "cash_payment"
	VoucherMetalReceipt VoucherType = "metal_receipt"
	VoucherMetalPayment VoucherType = "metal_payment"
)

// CashLine is one cash line item on an entry voucher.
type CashLine struct {
	CashAccountID string          `json:"cashAccountId"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
}

// MetalLine is one metal line item on an entry voucher, keyed off purity
// weight.
type MetalLine struct {
	StockCode    string          `json:"stockCode"`
	GrossWeight  decimal.Decimal `json:"grossWeight"`
	Purity       decimal.Decimal `json:"purity"`
	PurityWeight decimal.Decimal `json:"purityWeight"`
}

// Voucher is the cash/metal receipt and payment document. Cash vouchers carry
// cash lines, metal vouchers carry metal lines.
type Voucher struct {
	ID         string
	Type       VoucherType
	PartyID    string
	VoucherNo  string
	Status     TransactionStatus
	IsActive   bool
	CashLines  []CashLine
	MetalLines []MetalLine
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsCash reports whether the voucher moves cash rather than metal.
func (v *Voucher) IsCash() bool {
	return v.Type == VoucherCashReceipt || v.Type == VoucherCashPayment
}

// Cancel soft-deletes the voucher. Cancelled is terminal.
func (v *Voucher) Cancel(now time.Time) error {
	if v.Status == StatusCancelled {
		return ErrTransactionCancelled
	}
	v.Status = StatusCancelled
	v.IsActive = false
	v.UpdatedAt = now
	return nil
}
