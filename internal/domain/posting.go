package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the booking side of a planned line.
type Side int

const (
	Debit Side = iota + 1
	Credit
)

// Opposite returns the flipped side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// PlannedLine is one registry entry to be written, described by book, side
// and magnitude. Plans are built once per business event; the reversal is
// derived from the same plan so post and reverse cannot drift apart.
type PlannedLine struct {
	Type        EntryType
	Side        Side
	Value       decimal.Decimal
	Reference   string
	PartyID     string
	CostCenter  string
	Description string
}

// PostingPlan is the complete set of registry entries for one business event.
type PostingPlan struct {
	TransactionID   string
	SourceID        string
	TransactionDate time.Time
	CreatedBy       string
	Lines           []PlannedLine
}

// Add appends a line to the plan.
func (p *PostingPlan) Add(line PlannedLine) {
	p.Lines = append(p.Lines, line)
}

// Reversed returns the algebraic inverse of the plan under a fresh batch id:
// every side flipped, descriptions prefixed, and references rewritten to the
// source document id plus the given suffix (e.g. "cancellation",
// "adjustment").
func (p PostingPlan) Reversed(transactionID, referenceSuffix string) PostingPlan {
	rev := PostingPlan{
		TransactionID:   transactionID,
		SourceID:        p.SourceID,
		TransactionDate: p.TransactionDate,
		CreatedBy:       p.CreatedBy,
		Lines:           make([]PlannedLine, len(p.Lines)),
	}
	for i, line := range p.Lines {
		line.Side = line.Side.Opposite()
		line.Description = "REVERSAL - " + line.Description
		line.Reference = p.SourceID + "-" + referenceSuffix
		rev.Lines[i] = line
	}
	return rev
}

// Entries materialises the plan into ledger entries. Each line books a pure
// debit or a pure credit, never both. Running balances are reserved and
// always written as zero.
func (p PostingPlan) Entries(nextID func() string, now time.Time) []*LedgerEntry {
	entries := make([]*LedgerEntry, 0, len(p.Lines))
	for _, line := range p.Lines {
		e := &LedgerEntry{
			ID:              nextID(),
			TransactionID:   p.TransactionID,
			Type:            line.Type,
			Value:           line.Value,
			Debit:           decimal.Zero,
			Credit:          decimal.Zero,
			RunningBalance:  decimal.Zero,
			PreviousBalance: decimal.Zero,
			Reference:       line.Reference,
			PartyID:         line.PartyID,
			CostCenter:      line.CostCenter,
			Description:     line.Description,
			CreatedBy:       p.CreatedBy,
			TransactionDate: p.TransactionDate,
			Status:          EntryStatusCompleted,
			CreatedAt:       now,
		}
		if line.Side == Debit {
			e.Debit = line.Value
		} else {
			e.Credit = line.Value
		}
		entries = append(entries, e)
	}
	return entries
}

// SumByType aggregates a batch of entries per book.
func SumByType(entries []*LedgerEntry) map[EntryType]TypeSum {
	sums := make(map[EntryType]TypeSum)
	for _, e := range entries {
		s, ok := sums[e.Type]
		if !ok {
			s = TypeSum{Type: e.Type, Debit: decimal.Zero, Credit: decimal.Zero}
		}
		s.Debit = s.Debit.Add(e.Debit)
		s.Credit = s.Credit.Add(e.Credit)
		sums[e.Type] = s
	}
	return sums
}
