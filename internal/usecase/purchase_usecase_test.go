package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
	"github.com/karat/bullionledger/internal/usecase/mocks"
)

type purchaseFixture struct {
	*engineFixture
	purchases *mocks.MockPurchaseRepository
	uc        *usecase.MetalPurchaseUseCase
}

func newPurchaseFixture() *purchaseFixture {
	f := newEngineFixture()
	repo := mocks.NewMockPurchaseRepository()
	return &purchaseFixture{
		engineFixture: f,
		purchases:     repo,
		uc:            usecase.NewMetalPurchaseUseCase(f.engine, repo, f.idGen),
	}
}

func TestMetalPurchaseUseCase_Create(t *testing.T) {
	f := newPurchaseFixture()
	party := f.addParty("p1")
	f.addStock("G1")

	purchase, err := f.uc.CreateMetalPurchase(context.Background(), usecase.CreateMetalPurchaseInput{
		PartyID:    "p1",
		Currency:   "AED",
		VoucherNo:  "MP-1",
		StockLines: []domain.StockLine{engineLine("G1", 100, 24000, 500, 0)},
		ActorID:    "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if purchase.Status != domain.StatusDraft {
		t.Errorf("expected default draft status, got %s", purchase.Status)
	}
	if got := len(batchIDs(f.registry.Entries())); got != 1 {
		t.Errorf("create posts exactly one batch, got %d", got)
	}
	if !party.GoldBalance.TotalGrams.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected party gold 100, got %s", party.GoldBalance.TotalGrams)
	}

	stored, err := f.purchases.GetByID(context.Background(), purchase.ID)
	if err != nil || stored.VoucherNo != "MP-1" {
		t.Errorf("purchase not persisted: %v", err)
	}
}

func TestMetalPurchaseUseCase_Create_RequiresStockLines(t *testing.T) {
	f := newPurchaseFixture()
	f.addParty("p1")

	_, err := f.uc.CreateMetalPurchase(context.Background(), usecase.CreateMetalPurchaseInput{
		PartyID: "p1",
		ActorID: "user-1",
	})
	if err != domain.ErrMinimumStockItems {
		t.Errorf("expected ErrMinimumStockItems, got %v", err)
	}
	if len(f.registry.Entries()) != 0 {
		t.Errorf("rejected create must not post")
	}
}

func TestMetalPurchaseUseCase_FinancialUpdateRepostsBatch(t *testing.T) {
	f := newPurchaseFixture()
	party := f.addParty("p1")
	f.addStock("G1")

	purchase, err := f.uc.CreateMetalPurchase(context.Background(), usecase.CreateMetalPurchaseInput{
		PartyID:    "p1",
		VoucherNo:  "MP-1",
		StockLines: []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:    "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.uc.UpdateMetalPurchase(context.Background(), purchase.ID, usecase.UpdateMetalPurchaseInput{
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
		if e.Reference == purchase.ID+"-adjustment" {
			sawAdjustment = true
		}
	}
	if !sawAdjustment {
		t.Error("expected adjustment reversal entries")
	}
	if !party.GoldBalance.TotalGrams.Equal(decimal.NewFromInt(40)) {
		t.Errorf("balance must reflect only the new state, got %s", party.GoldBalance.TotalGrams)
	}
}

func TestMetalPurchaseUseCase_HeaderUpdateDoesNotRepost(t *testing.T) {
	f := newPurchaseFixture()
	f.addParty("p1")
	f.addStock("G1")

	purchase, err := f.uc.CreateMetalPurchase(context.Background(), usecase.CreateMetalPurchaseInput{
		PartyID:    "p1",
		VoucherNo:  "MP-1",
		StockLines: []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:    "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	costCenter := "CC-2"
	updated, err := f.uc.UpdateMetalPurchase(context.Background(), purchase.ID, usecase.UpdateMetalPurchaseInput{
		CostCenter: &costCenter,
		ActorID:    "user-2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(batchIDs(f.registry.Entries())); got != 1 {
		t.Errorf("header-only update must not repost, got %d batches", got)
	}
	if updated.CostCenter != "CC-2" {
		t.Errorf("cost center not applied, got %s", updated.CostCenter)
	}
}

func TestMetalPurchaseUseCase_Delete(t *testing.T) {
	f := newPurchaseFixture()
	party := f.addParty("p1")
	f.addStock("G1")

	purchase, err := f.uc.CreateMetalPurchase(context.Background(), usecase.CreateMetalPurchaseInput{
		PartyID:    "p1",
		VoucherNo:  "MP-1",
		StockLines: []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:    "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deleted, err := f.uc.DeleteMetalPurchase(context.Background(), purchase.ID, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deleted.Status != domain.StatusCancelled || deleted.IsActive {
		t.Errorf("expected cancelled inactive purchase, got %s", deleted.Status)
	}
	if !party.GoldBalance.TotalGrams.IsZero() {
		t.Errorf("delete must undo the balance delta, got %s", party.GoldBalance.TotalGrams)
	}
	var sawCancellation bool
	for _, e := range f.registry.Entries() {
		if e.Reference == purchase.ID+"-cancellation" {
			sawCancellation = true
		}
	}
	if !sawCancellation {
		t.Error("expected cancellation reversal entries")
	}

	if _, err := f.uc.DeleteMetalPurchase(context.Background(), purchase.ID, "user-2"); err != domain.ErrTransactionCancelled {
		t.Errorf("expected ErrTransactionCancelled on double delete, got %v", err)
	}
}

func TestMetalPurchaseUseCase_DeleteClampsGoldPosition(t *testing.T) {
	f := newPurchaseFixture()
	party := f.addParty("p1")
	f.addStock("G1")

	purchase, err := f.uc.CreateMetalPurchase(context.Background(), usecase.CreateMetalPurchaseInput{
		PartyID:    "p1",
		VoucherNo:  "MP-1",
		StockLines: []domain.StockLine{engineLine("G1", 100, 24000, 0, 0)},
		ActorID:    "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Drain part of the position so the reversal would overshoot below zero.
	party.GoldBalance.TotalGrams = decimal.NewFromInt(60)
	party.GoldBalance.TotalValue = decimal.NewFromInt(14400)

	if _, err := f.uc.DeleteMetalPurchase(context.Background(), purchase.ID, "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !party.GoldBalance.TotalGrams.IsZero() {
		t.Errorf("grams must clamp at zero, got %s", party.GoldBalance.TotalGrams)
	}
	if !party.GoldBalance.TotalValue.IsZero() {
		t.Errorf("value must clamp at zero alongside grams, got %s", party.GoldBalance.TotalValue)
	}
}
