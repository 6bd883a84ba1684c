package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
	"github.com/karat/bullionledger/internal/usecase/mocks"
)

func TestReconciliationUseCase_CheckBatch(t *testing.T) {
	tests := []struct {
		name           string
		entries        []*domain.LedgerEntry
		wantConsistent bool
		wantErr        error
	}{
		{
			name: "consistent batch",
			entries: []*domain.LedgerEntry{
				{ID: "e1", TransactionID: "b1", Type: domain.EntryTypeGold, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
				{ID: "e2", TransactionID: "b1", Type: domain.EntryTypePartyGoldBalance, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
			},
			wantConsistent: true,
		},
		{
			name: "single entry batch",
			entries: []*domain.LedgerEntry{
				{ID: "e1", TransactionID: "b1", Type: domain.EntryTypeGold, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
			},
			wantConsistent: false,
		},
		{
			name: "entry books both sides",
			entries: []*domain.LedgerEntry{
				{ID: "e1", TransactionID: "b1", Type: domain.EntryTypeGold, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
				{ID: "e2", TransactionID: "b1", Type: domain.EntryTypeGold, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
			},
			wantConsistent: false,
		},
		{
			name: "entry with negative amount",
			entries: []*domain.LedgerEntry{
				{ID: "e1", TransactionID: "b1", Type: domain.EntryTypeGold, Debit: decimal.NewFromInt(-10), Credit: decimal.Zero},
				{ID: "e2", TransactionID: "b1", Type: domain.EntryTypeGold, Debit: decimal.Zero, Credit: decimal.NewFromInt(10)},
			},
			wantConsistent: false,
		},
		{
			name:    "missing batch",
			entries: nil,
			wantErr: domain.ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockRegistryRepository()
			for _, e := range tt.entries {
				_ = registry.CreateBatch(context.Background(), nil, []*domain.LedgerEntry{e})
			}
			uc := usecase.NewReconciliationUseCase(registry, zerolog.Nop())

			report, err := uc.CheckBatch(context.Background(), "b1")

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.Consistent() != tt.wantConsistent {
				t.Errorf("expected consistent=%v, issues=%v", tt.wantConsistent, report.Issues)
			}
			if report.EntryCount != len(tt.entries) {
				t.Errorf("expected %d entries, got %d", len(tt.entries), report.EntryCount)
			}
		})
	}
}

func TestReconciliationUseCase_LedgerTotals(t *testing.T) {
	registry := mocks.NewMockRegistryRepository()
	_ = registry.CreateBatch(context.Background(), nil, []*domain.LedgerEntry{
		{ID: "e1", TransactionID: "b1", Type: domain.EntryTypeGold, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{ID: "e2", TransactionID: "b2", Type: domain.EntryTypeGold, Debit: decimal.Zero, Credit: decimal.NewFromInt(40)},
		{ID: "e3", TransactionID: "b2", Type: domain.EntryTypeCashBook, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
	})
	uc := usecase.NewReconciliationUseCase(registry, zerolog.Nop())

	report, err := uc.LedgerTotals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Sums) != 2 {
		t.Fatalf("expected 2 books, got %d", len(report.Sums))
	}

	net, err := uc.BookNet(context.Background(), domain.EntryTypeGold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !net.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected gold net 60, got %s", net)
	}

	net, err = uc.BookNet(context.Background(), domain.EntryTypeOpening)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !net.IsZero() {
		t.Errorf("expected zero net for untouched book, got %s", net)
	}
}
