package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
	"github.com/karat/bullionledger/internal/usecase/mocks"
)

type transactionFixture struct {
	*engineFixture
	transactions *mocks.MockTransactionRepository
	uc           *usecase.MetalTransactionUseCase
}

func newTransactionFixture() *transactionFixture {
	f := newEngineFixture()
	repo := mocks.NewMockTransactionRepository()
	return &transactionFixture{
		engineFixture: f,
		transactions:  repo,
		uc:            usecase.NewMetalTransactionUseCase(f.engine, repo, f.idGen),
	}
}

func batchIDs(entries []*domain.LedgerEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if !seen[e.TransactionID] {
			seen[e.TransactionID] = true
			out = append(out, e.TransactionID)
		}
	}
	return out
}

func TestMetalTransactionUseCase_Create(t *testing.T) {
	f := newTransactionFixture()
	party := f.addParty("p1")

	txn, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		Currency:        "AED",
		VoucherNo:       "MT-1",
		StockLines:      []domain.StockLine{engineLine("G1", 100, 24000, 500, 0)},
		VatPercentage:   decimal.NewFromInt(5),
		ActorID:         "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txn.Status != domain.StatusDraft {
		t.Errorf("expected default draft status, got %s", txn.Status)
	}
	if !txn.Totals.NetAmount.Equal(decimal.NewFromInt(24500)) {
		t.Errorf("expected net 24500, got %s", txn.Totals.NetAmount)
	}
	if len(batchIDs(f.registry.Entries())) != 1 {
		t.Errorf("create posts exactly one batch, got %d", len(batchIDs(f.registry.Entries())))
	}
	if !party.GoldBalance.TotalGrams.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected party gold 100, got %s", party.GoldBalance.TotalGrams)
	}

	stored, err := f.transactions.GetByID(context.Background(), txn.ID)
	if err != nil || stored.VoucherNo != "MT-1" {
		t.Errorf("transaction not persisted: %v", err)
	}
}

func TestMetalTransactionUseCase_Create_RequiresStockLines(t *testing.T) {
	f := newTransactionFixture()
	f.addParty("p1")

	_, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		ActorID:         "user-1",
	})
	if err != domain.ErrMinimumStockItems {
		t.Errorf("expected ErrMinimumStockItems, got %v", err)
	}
	if len(f.registry.Entries()) != 0 {
		t.Errorf("rejected create must not post")
	}
}

func TestMetalTransactionUseCase_FinancialUpdateRepostsBatch(t *testing.T) {
	f := newTransactionFixture()
	party := f.addParty("p1")

	txn, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		VoucherNo:       "MT-1",
		StockLines:      []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:         "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := f.uc.UpdateMetalTransaction(context.Background(), txn.ID, usecase.UpdateMetalTransactionInput{
		StockLines: []domain.StockLine{engineLine("G1", 40, 9600, 0, 0)},
		ActorID:    "user-2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Original batch, adjustment reversal, fresh batch.
	if got := len(batchIDs(f.registry.Entries())); got != 3 {
		t.Fatalf("expected 3 batches after financial update, got %d", got)
	}
	var sawAdjustment bool
	for _, e := range f.registry.Entries() {
		if e.Reference == txn.ID+"-adjustment" {
			sawAdjustment = true
			if !strings.HasPrefix(e.Description, "REVERSAL - ") {
				t.Errorf("adjustment entry not marked as reversal: %s", e.Description)
			}
		}
	}
	if !sawAdjustment {
		t.Error("expected adjustment reversal entries")
	}

	if !party.GoldBalance.TotalGrams.Equal(decimal.NewFromInt(40)) {
		t.Errorf("balance must reflect only the new state, got %s", party.GoldBalance.TotalGrams)
	}
	if !updated.Totals.NetAmount.Equal(decimal.NewFromInt(9600)) {
		t.Errorf("expected recomputed net 9600, got %s", updated.Totals.NetAmount)
	}
}

func TestMetalTransactionUseCase_HeaderUpdateDoesNotRepost(t *testing.T) {
	f := newTransactionFixture()
	f.addParty("p1")

	txn, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		VoucherNo:       "MT-1",
		StockLines:      []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:         "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	voucherNo := "MT-1-FIXED"
	updated, err := f.uc.UpdateMetalTransaction(context.Background(), txn.ID, usecase.UpdateMetalTransactionInput{
		VoucherNo: &voucherNo,
		ActorID:   "user-2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(batchIDs(f.registry.Entries())); got != 1 {
		t.Errorf("header-only update must not repost, got %d batches", got)
	}
	if updated.VoucherNo != "MT-1-FIXED" {
		t.Errorf("voucher number not applied, got %s", updated.VoucherNo)
	}
}

func TestMetalTransactionUseCase_UpdateCannotCancel(t *testing.T) {
	f := newTransactionFixture()
	party := f.addParty("p1")

	txn, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		VoucherNo:       "MT-1",
		StockLines:      []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:         "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A status update must not sidestep the delete path: that would leave
	// the batch in place with nothing reversing it.
	cancelled := domain.StatusCancelled
	if _, err := f.uc.UpdateMetalTransaction(context.Background(), txn.ID, usecase.UpdateMetalTransactionInput{
		Status:  &cancelled,
		ActorID: "user-2",
	}); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	stored, err := f.transactions.GetByID(context.Background(), txn.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.StatusDraft || !stored.IsActive {
		t.Errorf("rejected update must leave the aggregate untouched, got status=%s active=%v", stored.Status, stored.IsActive)
	}
	if got := len(batchIDs(f.registry.Entries())); got != 1 {
		t.Errorf("rejected update must not post, got %d batches", got)
	}

	// The delete path still works and reverses the batch.
	if _, err := f.uc.DeleteMetalTransaction(context.Background(), txn.ID, "user-2"); err != nil {
		t.Fatalf("delete after rejected update failed: %v", err)
	}
	if !party.GoldBalance.TotalGrams.IsZero() {
		t.Errorf("expected gold back to zero after delete, got %s", party.GoldBalance.TotalGrams)
	}
}

func TestMetalTransactionUseCase_StatusTransitions(t *testing.T) {
	f := newTransactionFixture()
	f.addParty("p1")

	txn, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		VoucherNo:       "MT-1",
		StockLines:      []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:         "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	confirmed := domain.StatusConfirmed
	txn, err = f.uc.UpdateMetalTransaction(context.Background(), txn.ID, usecase.UpdateMetalTransactionInput{
		Status:  &confirmed,
		ActorID: "user-1",
	})
	if err != nil || txn.Status != domain.StatusConfirmed {
		t.Fatalf("draft to confirmed should pass, got status=%s err=%v", txn.Status, err)
	}

	completed := domain.StatusCompleted
	txn, err = f.uc.UpdateMetalTransaction(context.Background(), txn.ID, usecase.UpdateMetalTransactionInput{
		Status:  &completed,
		ActorID: "user-1",
	})
	if err != nil || txn.Status != domain.StatusCompleted {
		t.Fatalf("confirmed to completed should pass, got status=%s err=%v", txn.Status, err)
	}

	// Completed never moves backwards.
	draft := domain.StatusDraft
	if _, err := f.uc.UpdateMetalTransaction(context.Background(), txn.ID, usecase.UpdateMetalTransactionInput{
		Status:  &draft,
		ActorID: "user-1",
	}); err != domain.ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus for completed to draft, got %v", err)
	}
}

func TestMetalTransactionUseCase_CreateRejectsCancelledStatus(t *testing.T) {
	f := newTransactionFixture()
	f.addParty("p1")

	_, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		Status:          domain.StatusCancelled,
		StockLines:      []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:         "user-1",
	})
	if err != domain.ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if len(f.registry.Entries()) != 0 {
		t.Errorf("rejected create must not post")
	}
}

func TestMetalTransactionUseCase_StockLineMutations(t *testing.T) {
	f := newTransactionFixture()
	f.addParty("p1")

	txn, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		VoucherNo:       "MT-1",
		StockLines:      []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:         "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Removing the only line is rejected before anything is posted.
	if _, err := f.uc.RemoveStockLine(context.Background(), txn.ID, 0, "user-1"); err != domain.ErrMinimumStockItems {
		t.Fatalf("expected ErrMinimumStockItems, got %v", err)
	}
	if got := len(batchIDs(f.registry.Entries())); got != 1 {
		t.Fatalf("rejected removal must not post, got %d batches", got)
	}

	txn, err = f.uc.AddStockLine(context.Background(), txn.ID, engineLine("G2", 50, 12000, 0, 0), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txn.StockLines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(txn.StockLines))
	}

	txn, err = f.uc.RemoveStockLine(context.Background(), txn.ID, 0, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txn.StockLines) != 1 || txn.StockLines[0].StockCode != "G2" {
		t.Errorf("wrong line removed: %+v", txn.StockLines)
	}

	if _, err := f.uc.UpdateStockLine(context.Background(), txn.ID, 5, engineLine("G3", 10, 2400, 0, 0), "user-1"); err != domain.ErrStockNotFound {
		t.Errorf("expected ErrStockNotFound for out-of-range index, got %v", err)
	}
}

func TestMetalTransactionUseCase_Delete(t *testing.T) {
	f := newTransactionFixture()
	party := f.addParty("p1")

	txn, err := f.uc.CreateMetalTransaction(context.Background(), usecase.CreateMetalTransactionInput{
		TransactionType: domain.TransactionTypePurchase,
		PartyID:         "p1",
		VoucherNo:       "MT-1",
		StockLines:      []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:         "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deleted, err := f.uc.DeleteMetalTransaction(context.Background(), txn.ID, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deleted.Status != domain.StatusCancelled || deleted.IsActive {
		t.Errorf("expected cancelled inactive transaction, got %s", deleted.Status)
	}
	if !party.GoldBalance.TotalGrams.IsZero() {
		t.Errorf("delete must undo the balance delta, got %s", party.GoldBalance.TotalGrams)
	}
	var sawCancellation bool
	for _, e := range f.registry.Entries() {
		if e.Reference == txn.ID+"-cancellation" {
			sawCancellation = true
		}
	}
	if !sawCancellation {
		t.Error("expected cancellation reversal entries")
	}

	// Cancelled is terminal: no further posting operations.
	if _, err := f.uc.DeleteMetalTransaction(context.Background(), txn.ID, "user-2"); err != domain.ErrTransactionCancelled {
		t.Errorf("expected ErrTransactionCancelled on double delete, got %v", err)
	}
	if _, err := f.uc.UpdateMetalTransaction(context.Background(), txn.ID, usecase.UpdateMetalTransactionInput{
		StockLines: []domain.StockLine{engineLine("G1", 10, 2400, 0, 0)},
		ActorID:    "user-2",
	}); err != domain.ErrTransactionCancelled {
		t.Errorf("expected ErrTransactionCancelled on update after delete, got %v", err)
	}
}
