package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

// CashBalanceResponse is one currency position in a party response.
type CashBalanceResponse struct {
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	LastUpdated time.Time       `json:"last_updated"`
}

// PartyResponse represents a party in API responses.
type PartyResponse struct {
	ID                  string                `json:"id"`
	Code                string                `json:"code"`
	Name                string                `json:"name"`
	Currency            string                `json:"currency"`
	IsActive            bool                  `json:"is_active"`
	GoldGrams           decimal.Decimal       `json:"gold_grams"`
	GoldValue           decimal.Decimal       `json:"gold_value"`
	CashBalances        []CashBalanceResponse `json:"cash_balances"`
	TotalOutstanding    decimal.Decimal       `json:"total_outstanding"`
	LastBalanceUpdate   time.Time             `json:"last_balance_update"`
	LastTransactionDate time.Time             `json:"last_transaction_date"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// PartyFromDomain converts a domain party to a response.
func PartyFromDomain(p *domain.Party) *PartyResponse {
	cash := make([]CashBalanceResponse, len(p.CashBalances))
	for i, cb := range p.CashBalances {
		cash[i] = CashBalanceResponse{
			Currency:    cb.Currency,
			Amount:      cb.Amount,
			LastUpdated: cb.LastUpdated,
		}
	}
	return &PartyResponse{
		ID:                  p.ID,
		Code:                p.Code,
		Name:                p.Name,
		Currency:            p.Currency,
		IsActive:            p.IsActive,
		GoldGrams:           p.GoldBalance.TotalGrams,
		GoldValue:           p.GoldBalance.TotalValue,
		CashBalances:        cash,
		TotalOutstanding:    p.TotalOutstanding,
		LastBalanceUpdate:   p.LastBalanceUpdate,
		LastTransactionDate: p.LastTransactionDate,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// PartiesFromDomain converts domain parties to responses.
func PartiesFromDomain(parties []*domain.Party) []*PartyResponse {
	result := make([]*PartyResponse, len(parties))
	for i, p := range parties {
		result[i] = PartyFromDomain(p)
	}
	return result
}

// TransactionResponse represents a metal transaction in API responses.
type TransactionResponse struct {
	ID              string               `json:"id"`
	TransactionType string               `json:"transaction_type"`
	PartyID         string               `json:"party_id"`
	Currency        string               `json:"currency"`
	VoucherNo       string               `json:"voucher_no"`
	CostCenter      string               `json:"cost_center"`
	Status          string               `json:"status"`
	IsActive        bool                 `json:"is_active"`
	StockLines      []domain.StockLine   `json:"stock_lines"`
	Totals          domain.SessionTotals `json:"totals"`
	CreatedBy       string               `json:"created_by"`
	UpdatedBy       string               `json:"updated_by"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.MetalTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		TransactionType: string(t.TransactionType),
		PartyID:         t.PartyID,
		Currency:        t.Currency,
		VoucherNo:       t.VoucherNo,
		CostCenter:      t.CostCenter,
		Status:          string(t.Status),
		IsActive:        t.IsActive,
		StockLines:      t.StockLines,
		Totals:          t.Totals,
		CreatedBy:       t.CreatedBy,
		UpdatedBy:       t.UpdatedBy,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.MetalTransaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// PurchaseResponse represents a metal purchase in API responses.
type PurchaseResponse struct {
	ID         string               `json:"id"`
	PartyID    string               `json:"party_id"`
	Currency   string               `json:"currency"`
	VoucherNo  string               `json:"voucher_no"`
	CostCenter string               `json:"cost_center"`
	Status     string               `json:"status"`
	IsActive   bool                 `json:"is_active"`
	StockLines []domain.StockLine   `json:"stock_lines"`
	Totals     domain.SessionTotals `json:"totals"`
	CreatedBy  string               `json:"created_by"`
	UpdatedBy  string               `json:"updated_by"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// PurchaseFromDomain converts a domain purchase to a response.
func PurchaseFromDomain(p *domain.MetalPurchase) *PurchaseResponse {
	return &PurchaseResponse{
		ID:         p.ID,
		PartyID:    p.PartyID,
		Currency:   p.Currency,
		VoucherNo:  p.VoucherNo,
		CostCenter: p.CostCenter,
		Status:     string(p.Status),
		IsActive:   p.IsActive,
		StockLines: p.StockLines,
		Totals:     p.Totals,
		CreatedBy:  p.CreatedBy,
		UpdatedBy:  p.UpdatedBy,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// PurchasesFromDomain converts domain purchases to responses.
func PurchasesFromDomain(purchases []*domain.MetalPurchase) []*PurchaseResponse {
	result := make([]*PurchaseResponse, len(purchases))
	for i, p := range purchases {
		result[i] = PurchaseFromDomain(p)
	}
	return result
}

// VoucherResponse represents an entry voucher in API responses.
type VoucherResponse struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	PartyID    string             `json:"party_id"`
	VoucherNo  string             `json:"voucher_no"`
	Status     string             `json:"status"`
	IsActive   bool               `json:"is_active"`
	CashLines  []domain.CashLine  `json:"cash_lines,omitempty"`
	MetalLines []domain.MetalLine `json:"metal_lines,omitempty"`
	CreatedBy  string             `json:"created_by"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// VoucherFromDomain converts a domain voucher to a response.
func VoucherFromDomain(v *domain.Voucher) *VoucherResponse {
	return &VoucherResponse{
		ID:         v.ID,
		Type:       string(v.Type),
		PartyID:    v.PartyID,
		VoucherNo:  v.VoucherNo,
		Status:     string(v.Status),
		IsActive:   v.IsActive,
		CashLines:  v.CashLines,
		MetalLines: v.MetalLines,
		CreatedBy:  v.CreatedBy,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// VouchersFromDomain converts domain vouchers to responses.
func VouchersFromDomain(vouchers []*domain.Voucher) []*VoucherResponse {
	result := make([]*VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		result[i] = VoucherFromDomain(v)
	}
	return result
}

// FixingResponse represents a fixing in API responses.
type FixingResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	PartyID   string          `json:"party_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
	Currency  string          `json:"currency"`
	VoucherNo string          `json:"voucher_no"`
	Status    string          `json:"status"`
	IsActive  bool            `json:"is_active"`
	CreatedBy string          `json:"created_by"`
	UpdatedBy string          `json:"updated_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FixingFromDomain converts a domain fixing to a response.
func FixingFromDomain(f *domain.Fixing) *FixingResponse {
	return &FixingResponse{
		ID:        f.ID,
		Type:      string(f.Type),
		PartyID:   f.PartyID,
		Quantity:  f.Quantity,
		Rate:      f.Rate,
		Currency:  f.Currency,
		VoucherNo: f.VoucherNo,
		Status:    string(f.Status),
		IsActive:  f.IsActive,
		CreatedBy: f.CreatedBy,
		UpdatedBy: f.UpdatedBy,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FixingsFromDomain converts domain fixings to responses.
func FixingsFromDomain(fixings []*domain.Fixing) []*FixingResponse {
	result := make([]*FixingResponse, len(fixings))
	for i, f := range fixings {
		result[i] = FixingFromDomain(f)
	}
	return result
}

// TransferResponse represents a fund transfer in API responses.
type TransferResponse struct {
	ID         string          `json:"id"`
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	AssetType  string          `json:"asset_type"`
	Currency   string          `json:"currency"`
	Value      decimal.Decimal `json:"value"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.FundTransfer) *TransferResponse {
	return &TransferResponse{
		ID:         t.ID,
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		AssetType:  string(t.AssetType),
		Currency:   t.Currency,
		Value:      t.Value,
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.FundTransfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// EntryResponse represents a registry entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	Type            string          `json:"type"`
	Value           decimal.Decimal `json:"value"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Reference       string          `json:"reference"`
	PartyID         string          `json:"party_id,omitempty"`
	CostCenter      string          `json:"cost_center,omitempty"`
	Description     string          `json:"description"`
	CreatedBy       string          `json:"created_by"`
	TransactionDate time.Time       `json:"transaction_date"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain registry entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		TransactionID:   e.TransactionID,
		Type:            string(e.Type),
		Value:           e.Value,
		Debit:           e.Debit,
		Credit:          e.Credit,
		Reference:       e.Reference,
		PartyID:         e.PartyID,
		CostCenter:      e.CostCenter,
		Description:     e.Description,
		CreatedBy:       e.CreatedBy,
		TransactionDate: e.TransactionDate,
		Status:          string(e.Status),
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain registry entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TypeSumResponse is the aggregated position of one book.
type TypeSumResponse struct {
	Type   string          `json:"type"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
	Net    decimal.Decimal `json:"net"`
}

// TypeSumsFromDomain converts domain type sums to responses.
func TypeSumsFromDomain(sums []domain.TypeSum) []TypeSumResponse {
	result := make([]TypeSumResponse, len(sums))
	for i, s := range sums {
		result[i] = TypeSumResponse{
			Type:   string(s.Type),
			Debit:  s.Debit,
			Credit: s.Credit,
			Net:    s.Net(),
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
