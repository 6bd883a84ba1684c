package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixingType distinguishes the direction of a fixing.
type FixingType string

const (
	FixingTypePurchase FixingType = "purchase"
	FixingTypeSell     FixingType = "sell"
)

// Fixing settles a previously unfixed metal position against a party at a
// locked-in rate. Its posting convention is deliberately the inverse of the
// metal transaction's: a purchase fixing hands gold to the party and lowers
// the gold position, a sell fixing raises it.
type Fixing struct {
	ID         string
	Type       FixingType
	PartyID    string
	Quantity   decimal.Decimal
	Rate       decimal.Decimal
	Currency   string
	VoucherNo  string
	Status     TransactionStatus
	IsActive   bool
	CreatedBy  string
	UpdatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Cancel soft-deletes the fixing.
func (f *Fixing) Cancel(now time.Time) error {
	if f.Status == StatusCancelled {
		return ErrTransactionCancelled
	}
	f.Status = StatusCancelled
	f.IsActive = false
	f.UpdatedAt = now
	return nil
}

// Restore flips a cancelled fixing back to draft without re-posting. This is
// a status-only operation; the ledger keeps both the original and the
// reversal batch.
func (f *Fixing) Restore(now time.Time) error {
	if f.Status != StatusCancelled {
		return ErrTransactionNotCancelled
	}
	f.Status = StatusDraft
	f.IsActive = true
	f.UpdatedAt = now
	return nil
}
