package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
	"github.com/karat/bullionledger/internal/usecase/mocks"
)

func TestFundTransferUseCase_CreateFundTransfer(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateFundTransferInput
		setup       func(f *engineFixture)
		expectError bool
		errorType   error
	}{
		{
			name: "successful cash transfer",
			input: usecase.CreateFundTransferInput{
				SenderID:   "s1",
				ReceiverID: "r1",
				AssetType:  domain.AssetCash,
				Currency:   "AED",
				Value:      decimal.NewFromInt(100),
				ActorID:    "user-1",
			},
			setup: func(f *engineFixture) {
				sender := f.addParty("s1")
				sender.CashBalances = []domain.CashBalance{{Currency: "AED", Amount: decimal.NewFromInt(500)}}
				f.addParty("r1")
			},
		},
		{
			name: "reject same account",
			input: usecase.CreateFundTransferInput{
				SenderID:   "s1",
				ReceiverID: "s1",
				AssetType:  domain.AssetCash,
				Value:      decimal.NewFromInt(100),
			},
			setup:       func(f *engineFixture) { f.addParty("s1") },
			expectError: true,
			errorType:   domain.ErrSameAccount,
		},
		{
			name: "reject non-positive value",
			input: usecase.CreateFundTransferInput{
				SenderID:   "s1",
				ReceiverID: "r1",
				AssetType:  domain.AssetGold,
				Value:      decimal.NewFromInt(-5),
			},
			setup:       func(f *engineFixture) {},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "reject unknown asset type",
			input: usecase.CreateFundTransferInput{
				SenderID:   "s1",
				ReceiverID: "r1",
				AssetType:  "SHARES",
				Value:      decimal.NewFromInt(10),
			},
			setup:       func(f *engineFixture) {},
			expectError: true,
			errorType:   domain.ErrInvalidAssetType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture()
			transfers := mocks.NewMockFundTransferRepository()
			uc := usecase.NewFundTransferUseCase(f.engine, transfers, f.idGen)
			tt.setup(f)

			transfer, err := uc.CreateFundTransfer(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && err != tt.errorType {
					t.Errorf("expected %v, got %v", tt.errorType, err)
				}
				if len(f.registry.Entries()) != 0 {
					t.Errorf("rejected transfer must not post")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(f.registry.Entries()) != 2 {
				t.Errorf("expected 2 entries, got %d", len(f.registry.Entries()))
			}
			stored, err := transfers.GetByID(context.Background(), transfer.ID)
			if err != nil || stored.SenderID != tt.input.SenderID {
				t.Errorf("transfer not persisted: %v", err)
			}
		})
	}
}

func TestFundTransferUseCase_CreateOpeningBalance(t *testing.T) {
	f := newEngineFixture()
	party := f.addParty("p1")
	transfers := mocks.NewMockFundTransferRepository()
	uc := usecase.NewFundTransferUseCase(f.engine, transfers, f.idGen)

	if err := uc.CreateOpeningBalance(context.Background(), "p1", decimal.NewFromInt(7500), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !party.CashBalanceFor("AED").Amount.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("expected seeded balance 7500, got %s", party.CashBalanceFor("AED").Amount)
	}
	sums := domain.SumByType(f.registry.Entries())
	if !sums[domain.EntryTypeOpening].Credit.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("expected OPENING_BALANCE credit 7500, got %s", sums[domain.EntryTypeOpening].Credit)
	}
}
