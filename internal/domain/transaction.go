package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes the direction of a metal transaction.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeSale     TransactionType = "sale"
)

// TransactionStatus is the aggregate lifecycle state.
type TransactionStatus string

const (
	StatusDraft     TransactionStatus = "draft"
	StatusConfirmed TransactionStatus = "confirmed"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

// CanTransitionTo reports whether an update may move the lifecycle from s to
// next. The lifecycle only moves forward: draft to confirmed to completed.
// Cancellation is never a plain status change; it only happens through
// Cancel, which also reverses the postings.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if next == s {
		return true
	}
	switch s {
	case StatusDraft:
		return next == StatusConfirmed || next == StatusCompleted
	case StatusConfirmed:
		return next == StatusCompleted
	}
	return false
}

// MetalRate is the rate applied to one stock line.
type MetalRate struct {
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Charge is a making-charges or premium component of a stock line. A negative
// premium amount is a discount.
type Charge struct {
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// ItemTotal is the computed money total of one stock line.
type ItemTotal struct {
	SubTotal decimal.Decimal `json:"subTotal"`
	Total    decimal.Decimal `json:"total"`
}

// StockLine is one metal line item on a transaction aggregate. PureWeight is
// the gold-content-equivalent weight after applying purity to gross weight.
type StockLine struct {
	StockCode     string          `json:"stockCode"`
	Pieces        int64           `json:"pieces"`
	GrossWeight   decimal.Decimal `json:"grossWeight"`
	Purity        decimal.Decimal `json:"purity"`
	PureWeight    decimal.Decimal `json:"pureWeight"`
	WeightInOz    decimal.Decimal `json:"weightInOz"`
	MetalRate     MetalRate       `json:"metalRate"`
	MakingCharges Charge          `json:"makingCharges"`
	Premium       Charge          `json:"premium"`
	ItemTotal     ItemTotal       `json:"itemTotal"`
}

// ComputeTotal recomputes the line total from its components.
func (l *StockLine) ComputeTotal() {
	sub := l.MetalRate.Amount.Add(l.MakingCharges.Amount).Add(l.Premium.Amount)
	l.ItemTotal = ItemTotal{SubTotal: sub, Total: sub}
}

// SessionTotals are the money totals of one transaction aggregate. They are a
// pure function of the current line items plus the VAT percentage and must be
// recomputed, never patched, whenever a line changes.
type SessionTotals struct {
	NetAmount     decimal.Decimal `json:"netAmountAED"`
	VatPercentage decimal.Decimal `json:"vatPercentage"`
	VatAmount     decimal.Decimal `json:"vatAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmountAED"`
}

// CalculateSessionTotals derives session totals from line items and a VAT
// percentage. Each line's total is recomputed first so stale item totals
// cannot drift into the session sums.
func CalculateSessionTotals(lines []StockLine, vatPercentage decimal.Decimal) SessionTotals {
	net := decimal.Zero
	for i := range lines {
		lines[i].ComputeTotal()
		net = net.Add(lines[i].ItemTotal.SubTotal)
	}
	vat := net.Mul(vatPercentage).Div(decimal.NewFromInt(100))
	return SessionTotals{
		NetAmount:     net,
		VatPercentage: vatPercentage,
		VatAmount:     vat,
		TotalAmount:   net.Add(vat),
	}
}

// MetalTransaction is the purchase/sale trading document. It owns its stock
// lines and triggers the posting engine on create, financial update and
// delete.
type MetalTransaction struct {
	ID              string
	TransactionType TransactionType
	PartyID         string
	Currency        string
	VoucherNo       string
	CostCenter      string
	Status          TransactionStatus
	IsActive        bool
	StockLines      []StockLine
	Totals          SessionTotals
	CreatedBy       string
	UpdatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecalculateTotals recomputes session totals from the current stock lines.
func (t *MetalTransaction) RecalculateTotals() {
	t.Totals = CalculateSessionTotals(t.StockLines, t.Totals.VatPercentage)
}

// TotalPureWeight sums pure weight over all stock lines.
func (t *MetalTransaction) TotalPureWeight() decimal.Decimal {
	total := decimal.Zero
	for i := range t.StockLines {
		total = total.Add(t.StockLines[i].PureWeight)
	}
	return total
}

// TotalMakingCharges sums making charges over all stock lines.
func (t *MetalTransaction) TotalMakingCharges() decimal.Decimal {
	total := decimal.Zero
	for i := range t.StockLines {
		total = total.Add(t.StockLines[i].MakingCharges.Amount)
	}
	return total
}

// TotalPremium sums premium over all stock lines.
func (t *MetalTransaction) TotalPremium() decimal.Decimal {
	total := decimal.Zero
	for i := range t.StockLines {
		total = total.Add(t.StockLines[i].Premium.Amount)
	}
	return total
}

// Cancel soft-deletes the transaction. Cancelled is terminal.
func (t *MetalTransaction) Cancel(now time.Time) error {
	if t.Status == StatusCancelled {
		return ErrTransactionCancelled
	}
	t.Status = StatusCancelled
	t.IsActive = false
	t.UpdatedAt = now
	return nil
}
