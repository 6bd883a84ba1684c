package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

func TestFundTransferBetweenParties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	e := newEnv(t)
	sender := e.db.CreateTestParty(ctx, "P-S", "AED")
	receiver := e.db.CreateTestParty(ctx, "P-R", "AED")

	if err := e.transfers.CreateOpeningBalance(ctx, sender.ID, decimal.NewFromInt(1000), "integration"); err != nil {
		t.Fatalf("failed to seed opening balance: %v", err)
	}

	if _, err := e.transfers.CreateFundTransfer(ctx, usecase.CreateFundTransferInput{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		AssetType:  domain.AssetCash,
		Currency:   "AED",
		Value:      decimal.NewFromInt(400),
		ActorID:    "integration",
	}); err != nil {
		t.Fatalf("failed to transfer: %v", err)
	}

	reloadedSender, err := e.parties.GetByID(ctx, sender.ID)
	if err != nil {
		t.Fatalf("failed to reload sender: %v", err)
	}
	if cb := reloadedSender.CashBalanceFor("AED"); cb == nil || !cb.Amount.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected sender AED 600, got %+v", cb)
	}

	reloadedReceiver, err := e.parties.GetByID(ctx, receiver.ID)
	if err != nil {
		t.Fatalf("failed to reload receiver: %v", err)
	}
	if cb := reloadedReceiver.CashBalanceFor("AED"); cb == nil || !cb.Amount.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected receiver AED 400, got %+v", cb)
	}

	// No overdraft on transfers.
	_, err = e.transfers.CreateFundTransfer(ctx, usecase.CreateFundTransferInput{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		AssetType:  domain.AssetCash,
		Currency:   "AED",
		Value:      decimal.NewFromInt(10000),
		ActorID:    "integration",
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestConcurrentFundTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	e := newEnv(t)
	sender := e.db.CreateTestParty(ctx, "P-A", "AED")
	receiver := e.db.CreateTestParty(ctx, "P-B", "AED")

	if err := e.transfers.CreateOpeningBalance(ctx, sender.ID, decimal.NewFromInt(100), "integration"); err != nil {
		t.Fatalf("failed to seed opening balance: %v", err)
	}

	const workers = 5
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.transfers.CreateFundTransfer(ctx, usecase.CreateFundTransferInput{
				SenderID:   sender.ID,
				ReceiverID: receiver.ID,
				AssetType:  domain.AssetCash,
				Currency:   "AED",
				Value:      decimal.NewFromInt(10),
				ActorID:    "integration",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent transfer failed: %v", err)
		}
	}

	reloadedSender, err := e.parties.GetByID(ctx, sender.ID)
	if err != nil {
		t.Fatalf("failed to reload sender: %v", err)
	}
	if cb := reloadedSender.CashBalanceFor("AED"); cb == nil || !cb.Amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected sender AED 50 after concurrent transfers, got %+v", cb)
	}

	reloadedReceiver, err := e.parties.GetByID(ctx, receiver.ID)
	if err != nil {
		t.Fatalf("failed to reload receiver: %v", err)
	}
	if cb := reloadedReceiver.CashBalanceFor("AED"); cb == nil || !cb.Amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected receiver AED 50 after concurrent transfers, got %+v", cb)
	}
}
