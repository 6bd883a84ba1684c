package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is a catalog entry for one SKU with its on-hand counters. The
// counters are mutated by stock-received and stock-issued postings only.
type StockItem struct {
	ID           string
	Code         string
	Metal        string
	Description  string
	Purity       decimal.Decimal
	PiecesInHand int64
	WeightInHand decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CashAccount is a cash-type account (till, bank, card terminal) whose
// opening-balance counter mirrors cash receipt and payment postings.
type CashAccount struct {
	ID             string
	Code           string
	Name           string
	Currency       string
	OpeningBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
