package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoldBalance is the running metal position of a trading party.
type GoldBalance struct {
	TotalGrams  decimal.Decimal
	TotalValue  decimal.Decimal
	Currency    string
	LastUpdated time.Time
}

// CashBalance is one currency position of a trading party. Amount may be
// negative (debit position). A party holds at most one balance per currency;
// a missing row is equivalent to a zero balance.
type CashBalance struct {
	Currency    string
	Amount      decimal.Decimal
	LastUpdated time.Time
}

// Party is a trading counterparty holding gold and multi-currency cash
// balances with the business. Balance fields are mutated only by the posting
// engine, inside the same unit of work as the registry entries they mirror.
type Party struct {
	ID                  string
	Code                string
	Name                string
	Currency            string
	IsActive            bool
	GoldBalance         GoldBalance
	CashBalances        []CashBalance
	TotalOutstanding    decimal.Decimal
	LastBalanceUpdate   time.Time
	LastTransactionDate time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CashBalanceFor returns the party's balance row for currency, or nil if the
// party has never held that currency.
func (p *Party) CashBalanceFor(currency string) *CashBalance {
	for i := range p.CashBalances {
		if p.CashBalances[i].Currency == currency {
			return &p.CashBalances[i]
		}
	}
	return nil
}

// EnsureCashBalance returns the balance row for currency, creating a zero row
// if the party has none.
func (p *Party) EnsureCashBalance(currency string, now time.Time) *CashBalance {
	if cb := p.CashBalanceFor(currency); cb != nil {
		return cb
	}
	p.CashBalances = append(p.CashBalances, CashBalance{
		Currency:    currency,
		Amount:      decimal.Zero,
		LastUpdated: now,
	})
	return &p.CashBalances[len(p.CashBalances)-1]
}

// AddCash adjusts the balance row for currency by delta, creating the row if
// needed.
func (p *Party) AddCash(currency string, delta decimal.Decimal, now time.Time) {
	cb := p.EnsureCashBalance(currency, now)
	cb.Amount = cb.Amount.Add(delta)
	cb.LastUpdated = now
	p.touchBalances(now)
}

// AddGold adjusts the gold position by grams and value.
func (p *Party) AddGold(grams, value decimal.Decimal, now time.Time) {
	p.GoldBalance.TotalGrams = p.GoldBalance.TotalGrams.Add(grams)
	p.GoldBalance.TotalValue = p.GoldBalance.TotalValue.Add(value)
	p.GoldBalance.LastUpdated = now
	p.touchBalances(now)
}

// SubtractGoldClamped decreases the gold grams position, never driving it
// below zero. Over-drawn requests are silently absorbed; this is a business
// rule, not an error.
func (p *Party) SubtractGoldClamped(grams decimal.Decimal, now time.Time) {
	p.GoldBalance.TotalGrams = ClampNonNegative(p.GoldBalance.TotalGrams.Sub(grams))
	p.GoldBalance.LastUpdated = now
	p.touchBalances(now)
}

func (p *Party) touchBalances(now time.Time) {
	p.LastBalanceUpdate = now
	p.RecalcOutstanding()
}

// RecalcOutstanding recomputes the derived total: cash across all currencies
// plus gold value.
func (p *Party) RecalcOutstanding() {
	total := p.GoldBalance.TotalValue
	for i := range p.CashBalances {
		total = total.Add(p.CashBalances[i].Amount)
	}
	p.TotalOutstanding = total
}

// ClampNonNegative floors d at zero. Balance decreases documented as
// "floored at 0" go through here so the rule stays visible and testable.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
