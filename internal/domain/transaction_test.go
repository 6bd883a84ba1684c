package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

func testStockLine(code string, rate, making, premium int64) domain.StockLine {
	return domain.StockLine{
		StockCode:     code,
		Pieces:        1,
		GrossWeight:   decimal.NewFromInt(100),
		Purity:        decimal.NewFromFloat(0.999),
		PureWeight:    decimal.NewFromFloat(99.9),
		MetalRate:     domain.MetalRate{Rate: decimal.NewFromInt(rate), Amount: decimal.NewFromInt(rate), Currency: "AED"},
		MakingCharges: domain.Charge{Amount: decimal.NewFromInt(making)},
		Premium:       domain.Charge{Amount: decimal.NewFromInt(premium)},
	}
}

func TestCalculateSessionTotals(t *testing.T) {
	tests := []struct {
		name      string
		lines     []domain.StockLine
		vatPct    decimal.Decimal
		wantNet   decimal.Decimal
		wantVat   decimal.Decimal
		wantTotal decimal.Decimal
	}{
		{
			name:      "single line with vat",
			lines:     []domain.StockLine{testStockLine("G1", 1000, 50, 20)},
			vatPct:    decimal.NewFromInt(5),
			wantNet:   decimal.NewFromInt(1070),
			wantVat:   decimal.NewFromFloat(53.5),
			wantTotal: decimal.NewFromFloat(1123.5),
		},
		{
			name: "multiple lines no vat",
			lines: []domain.StockLine{
				testStockLine("G1", 1000, 0, 0),
				testStockLine("G2", 2000, 100, -50),
			},
			vatPct:    decimal.Zero,
			wantNet:   decimal.NewFromInt(3050),
			wantVat:   decimal.Zero,
			wantTotal: decimal.NewFromInt(3050),
		},
		{
			name:      "no lines",
			lines:     nil,
			vatPct:    decimal.NewFromInt(5),
			wantNet:   decimal.Zero,
			wantVat:   decimal.Zero,
			wantTotal: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.CalculateSessionTotals(tt.lines, tt.vatPct)
			if !got.NetAmount.Equal(tt.wantNet) {
				t.Errorf("net: expected %s, got %s", tt.wantNet, got.NetAmount)
			}
			if !got.VatAmount.Equal(tt.wantVat) {
				t.Errorf("vat: expected %s, got %s", tt.wantVat, got.VatAmount)
			}
			if !got.TotalAmount.Equal(tt.wantTotal) {
				t.Errorf("total: expected %s, got %s", tt.wantTotal, got.TotalAmount)
			}
		})
	}
}

func TestCalculateSessionTotals_RecomputesStaleItemTotals(t *testing.T) {
	line := testStockLine("G1", 1000, 50, 0)
	// Stale item total left over from a previous edit.
	line.ItemTotal = domain.ItemTotal{SubTotal: decimal.NewFromInt(999999), Total: decimal.NewFromInt(999999)}

	got := domain.CalculateSessionTotals([]domain.StockLine{line}, decimal.Zero)

	if !got.NetAmount.Equal(decimal.NewFromInt(1050)) {
		t.Errorf("expected stale total to be recomputed to 1050, got %s", got.NetAmount)
	}
}

func TestMetalTransaction_RecalculateTotals(t *testing.T) {
	txn := &domain.MetalTransaction{
		TransactionType: domain.TransactionTypePurchase,
		StockLines: []domain.StockLine{
			testStockLine("G1", 1000, 50, 20),
		},
		Totals: domain.SessionTotals{VatPercentage: decimal.NewFromInt(5)},
	}

	txn.RecalculateTotals()

	if !txn.Totals.NetAmount.Equal(decimal.NewFromInt(1070)) {
		t.Errorf("expected net 1070, got %s", txn.Totals.NetAmount)
	}
	if !txn.Totals.VatPercentage.Equal(decimal.NewFromInt(5)) {
		t.Errorf("vat percentage must survive recalculation, got %s", txn.Totals.VatPercentage)
	}
}

func TestMetalTransaction_LineSums(t *testing.T) {
	txn := &domain.MetalTransaction{
		StockLines: []domain.StockLine{
			testStockLine("G1", 1000, 50, 20),
			testStockLine("G2", 2000, 0, -10),
		},
	}

	if !txn.TotalPureWeight().Equal(decimal.NewFromFloat(199.8)) {
		t.Errorf("expected pure weight 199.8, got %s", txn.TotalPureWeight())
	}
	if !txn.TotalMakingCharges().Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected making charges 50, got %s", txn.TotalMakingCharges())
	}
	if !txn.TotalPremium().Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected premium 10, got %s", txn.TotalPremium())
	}
}

func TestMetalTransaction_Cancel(t *testing.T) {
	now := time.Now().UTC()
	txn := &domain.MetalTransaction{Status: domain.StatusDraft, IsActive: true}

	if err := txn.Cancel(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.Status != domain.StatusCancelled || txn.IsActive {
		t.Errorf("expected cancelled inactive transaction, got %s active=%v", txn.Status, txn.IsActive)
	}

	if err := txn.Cancel(now); err != domain.ErrTransactionCancelled {
		t.Errorf("expected ErrTransactionCancelled on double cancel, got %v", err)
	}
}

func TestFixing_Restore(t *testing.T) {
	now := time.Now().UTC()
	fixing := &domain.Fixing{Status: domain.StatusDraft, IsActive: true}

	if err := fixing.Restore(now); err != domain.ErrTransactionNotCancelled {
		t.Errorf("expected ErrTransactionNotCancelled for live fixing, got %v", err)
	}

	if err := fixing.Cancel(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fixing.Restore(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fixing.Status != domain.StatusDraft || !fixing.IsActive {
		t.Errorf("expected restored draft fixing, got %s active=%v", fixing.Status, fixing.IsActive)
	}
}

func TestFundTransfer_Validate(t *testing.T) {
	tests := []struct {
		name     string
		transfer domain.FundTransfer
		wantErr  error
	}{
		{
			name:     "valid cash transfer",
			transfer: domain.FundTransfer{SenderID: "a", ReceiverID: "b", AssetType: domain.AssetCash, Value: decimal.NewFromInt(10)},
			wantErr:  nil,
		},
		{
			name:     "same account",
			transfer: domain.FundTransfer{SenderID: "a", ReceiverID: "a", AssetType: domain.AssetCash, Value: decimal.NewFromInt(10)},
			wantErr:  domain.ErrSameAccount,
		},
		{
			name:     "zero value",
			transfer: domain.FundTransfer{SenderID: "a", ReceiverID: "b", AssetType: domain.AssetGold, Value: decimal.Zero},
			wantErr:  domain.ErrInvalidAmount,
		},
		{
			name:     "unknown asset type",
			transfer: domain.FundTransfer{SenderID: "a", ReceiverID: "b", AssetType: "SHARES", Value: decimal.NewFromInt(10)},
			wantErr:  domain.ErrInvalidAssetType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.transfer.Validate(); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
