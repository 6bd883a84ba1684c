package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetalPurchase is the direct bullion purchase document: metal received from
// a party against making charges and premium/discount.
type MetalPurchase struct {
	ID         string
	PartyID    string
	Currency   string
	VoucherNo  string
	CostCenter string
	Status     TransactionStatus
	IsActive   bool
	StockLines []StockLine
	Totals     SessionTotals
	CreatedBy  string
	UpdatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecalculateTotals recomputes session totals from the current stock lines.
func (p *MetalPurchase) RecalculateTotals() {
	p.Totals = CalculateSessionTotals(p.StockLines, p.Totals.VatPercentage)
}

// TotalPureWeight sums pure weight over all stock lines.
func (p *MetalPurchase) TotalPureWeight() decimal.Decimal {
	total := decimal.Zero
	for i := range p.StockLines {
		total = total.Add(p.StockLines[i].PureWeight)
	}
	return total
}

// TotalRateAmount sums the metal rate amounts over all stock lines.
func (p *MetalPurchase) TotalRateAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range p.StockLines {
		total = total.Add(p.StockLines[i].MetalRate.Amount)
	}
	return total
}

// TotalMakingCharges sums making charges over all stock lines.
func (p *MetalPurchase) TotalMakingCharges() decimal.Decimal {
	total := decimal.Zero
	for i := range p.StockLines {
		total = total.Add(p.StockLines[i].MakingCharges.Amount)
	}
	return total
}

// TotalPremium sums premium over all stock lines (negative means discount).
func (p *MetalPurchase) TotalPremium() decimal.Decimal {
	total := decimal.Zero
	for i := range p.StockLines {
		total = total.Add(p.StockLines[i].Premium.Amount)
	}
	return total
}

// Cancel soft-deletes the purchase. Cancelled is terminal.
func (p *MetalPurchase) Cancel(now time.Time) error {
	if p.Status == StatusCancelled {
		return ErrTransactionCancelled
	}
	p.Status = StatusCancelled
	p.IsActive = false
	p.UpdatedAt = now
	return nil
}
