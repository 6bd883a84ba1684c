package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType identifies the book a registry entry belongs to. The legacy
// registry carried two casing conventions for overlapping books (the metal
// trading postings use the lowercase tags, the voucher and transfer postings
// the uppercase ones); both sets are kept as distinct books.
type EntryType string

const (
	// Metal trading books.
	EntryTypeGold             EntryType = "gold"
	EntryTypeStockBalance     EntryType = "stock_balance"
	EntryTypeMakingCharges    EntryType = "making_charges"
	EntryTypePremium          EntryType = "premium"
	EntryTypePremiumDiscount  EntryType = "premium_discount"
	EntryTypePartyGoldBalance EntryType = "party_gold_balance"
	EntryTypePartyCashBalance EntryType = "party_cash_balance"

	// Voucher, fixing and transfer books.
	EntryTypeCashBook      EntryType = "CASH"
	EntryTypePartyCashBook EntryType = "PARTY_CASH_BALANCE"
	EntryTypeStockBook     EntryType = "STOCK_BALANCE"
	EntryTypeGoldBook      EntryType = "GOLD"
	EntryTypePartyGoldBook EntryType = "PARTY_GOLD_BALANCE"
	EntryTypePartyCash     EntryType = "PARTY_CASH"
	EntryTypeOpening       EntryType = "OPENING_BALANCE"
)

// MetalStockType returns the per-metal stock book tag, e.g. "silver_stock".
func MetalStockType(metal string) EntryType {
	return EntryType(metal + "_stock")
}

// EntryStatus is the lifecycle status of a registry entry.
type EntryStatus string

const (
	EntryStatusCompleted EntryStatus = "completed"
)

// LedgerEntry is a single debit or credit row in the registry. Entries are
// append-only: they are written once by the posting engine and never updated
// or deleted. Corrections happen through reversal batches.
type LedgerEntry struct {
	ID            string
	TransactionID string
	Type          EntryType
	Value         decimal.Decimal
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	// RunningBalance and PreviousBalance are reserved for a future
	// running-balance feature and are always persisted as zero.
	RunningBalance  decimal.Decimal
	PreviousBalance decimal.Decimal
	Reference       string
	PartyID         string
	CostCenter      string
	Description     string
	CreatedBy       string
	TransactionDate time.Time
	Status          EntryStatus
	CreatedAt       time.Time
}

// Signed returns debit minus credit for this entry.
func (e *LedgerEntry) Signed() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// TypeSum is the aggregated debit/credit position of one book within a batch.
type TypeSum struct {
	Type   EntryType
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Net returns debit minus credit for the book.
func (s TypeSum) Net() decimal.Decimal {
	return s.Debit.Sub(s.Credit)
}
