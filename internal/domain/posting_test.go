package domain_test

import (
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

func sequentialIDs() func() string {
	var n int64
	return func() string {
		return "id-" + strconv.FormatInt(atomic.AddInt64(&n, 1), 10)
	}
}

func samplePlan() domain.PostingPlan {
	plan := domain.PostingPlan{
		TransactionID:   "batch-1",
		SourceID:        "doc-1",
		TransactionDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy:       "user-1",
	}
	plan.Add(domain.PlannedLine{
		Type:        domain.EntryTypeGold,
		Side:        domain.Debit,
		Value:       decimal.NewFromInt(100),
		Reference:   "G1",
		PartyID:     "p1",
		Description: "Metal purchase V-1 - G1",
	})
	plan.Add(domain.PlannedLine{
		Type:        domain.EntryTypePartyGoldBalance,
		Side:        domain.Credit,
		Value:       decimal.NewFromInt(100),
		Reference:   "doc-1",
		PartyID:     "p1",
		Description: "Party gold balance V-1",
	})
	return plan
}

func TestPostingPlan_Entries(t *testing.T) {
	plan := samplePlan()
	now := time.Now().UTC()

	entries := plan.Entries(sequentialIDs(), now)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.TransactionID != "batch-1" {
			t.Errorf("expected batch id batch-1, got %s", e.TransactionID)
		}
		if e.Debit.IsPositive() && e.Credit.IsPositive() {
			t.Errorf("entry %s books both sides", e.ID)
		}
		if !e.RunningBalance.IsZero() || !e.PreviousBalance.IsZero() {
			t.Errorf("running balances must be zero, got %s/%s", e.RunningBalance, e.PreviousBalance)
		}
		if e.Status != domain.EntryStatusCompleted {
			t.Errorf("expected completed status, got %s", e.Status)
		}
	}
	if !entries[0].Debit.Equal(decimal.NewFromInt(100)) || !entries[0].Credit.IsZero() {
		t.Errorf("expected pure debit on first entry, got %s/%s", entries[0].Debit, entries[0].Credit)
	}
	if !entries[1].Credit.Equal(decimal.NewFromInt(100)) || !entries[1].Debit.IsZero() {
		t.Errorf("expected pure credit on second entry, got %s/%s", entries[1].Debit, entries[1].Credit)
	}
}

func TestPostingPlan_Reversed(t *testing.T) {
	plan := samplePlan()

	rev := plan.Reversed("batch-2", "cancellation")

	if rev.TransactionID != "batch-2" {
		t.Errorf("expected fresh batch id, got %s", rev.TransactionID)
	}
	if len(rev.Lines) != len(plan.Lines) {
		t.Fatalf("expected %d lines, got %d", len(plan.Lines), len(rev.Lines))
	}
	for i, line := range rev.Lines {
		if line.Side != plan.Lines[i].Side.Opposite() {
			t.Errorf("line %d: side not flipped", i)
		}
		if !line.Value.Equal(plan.Lines[i].Value) {
			t.Errorf("line %d: magnitude changed on reversal", i)
		}
		if line.Reference != "doc-1-cancellation" {
			t.Errorf("line %d: expected reference doc-1-cancellation, got %s", i, line.Reference)
		}
		if !strings.HasPrefix(line.Description, "REVERSAL - ") {
			t.Errorf("line %d: description not prefixed: %s", i, line.Description)
		}
	}

	// Original plan untouched.
	if plan.Lines[0].Side != domain.Debit || plan.Lines[0].Reference != "G1" {
		t.Error("reversal mutated the source plan")
	}
}

func TestPostingPlan_ReversalNetsToZero(t *testing.T) {
	plan := samplePlan()
	now := time.Now().UTC()
	nextID := sequentialIDs()

	entries := plan.Entries(nextID, now)
	entries = append(entries, plan.Reversed("batch-2", "cancellation").Entries(nextID, now)...)

	for book, sum := range domain.SumByType(entries) {
		if !sum.Net().IsZero() {
			t.Errorf("book %s: posting plus reversal nets to %s, want 0", book, sum.Net())
		}
	}
}

func TestSide_Opposite(t *testing.T) {
	if domain.Debit.Opposite() != domain.Credit {
		t.Error("expected debit opposite to be credit")
	}
	if domain.Credit.Opposite() != domain.Debit {
		t.Error("expected credit opposite to be debit")
	}
}

func TestSumByType(t *testing.T) {
	entries := []*domain.LedgerEntry{
		{Type: domain.EntryTypeGold, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{Type: domain.EntryTypeGold, Debit: decimal.Zero, Credit: decimal.NewFromInt(40)},
		{Type: domain.EntryTypeMakingCharges, Debit: decimal.Zero, Credit: decimal.NewFromInt(25)},
	}

	sums := domain.SumByType(entries)

	gold := sums[domain.EntryTypeGold]
	if !gold.Debit.Equal(decimal.NewFromInt(100)) || !gold.Credit.Equal(decimal.NewFromInt(40)) {
		t.Errorf("gold sums wrong: %s/%s", gold.Debit, gold.Credit)
	}
	if !gold.Net().Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected gold net 60, got %s", gold.Net())
	}
	making := sums[domain.EntryTypeMakingCharges]
	if !making.Net().Equal(decimal.NewFromInt(-25)) {
		t.Errorf("expected making net -25, got %s", making.Net())
	}
}
