package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType is the asset moved by a fund transfer.
type AssetType string

const (
	AssetCash AssetType = "CASH"
	AssetGold AssetType = "GOLD"
)

// FundTransfer moves cash or gold between two party accounts.
type FundTransfer struct {
	ID         string
	SenderID   string
	ReceiverID string
	AssetType  AssetType
	Currency   string
	Value      decimal.Decimal
	CreatedBy  string
	CreatedAt  time.Time
}

// Validate checks the transfer request shape before any read or write.
func (t *FundTransfer) Validate() error {
	if t.SenderID == t.ReceiverID {
		return ErrSameAccount
	}
	if t.Value.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if t.AssetType != AssetCash && t.AssetType != AssetGold {
		return ErrInvalidAssetType
	}
	return nil
}
