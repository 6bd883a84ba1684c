package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
	"github.com/karat/bullionledger/internal/usecase/mocks"
)

func TestPartyUseCase_CreateParty(t *testing.T) {
	parties := mocks.NewMockPartyRepository()
	uc := usecase.NewPartyUseCase(parties, mocks.NewMockCache(), mocks.NewMockIDGenerator())

	party, err := uc.CreateParty(context.Background(), usecase.CreatePartyInput{
		Code:     "ACME",
		Name:     "Acme Bullion",
		Currency: "AED",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !party.IsActive {
		t.Error("new party must be active")
	}
	if !party.GoldBalance.TotalGrams.IsZero() || len(party.CashBalances) != 0 {
		t.Error("new party must start with zero balances")
	}
	if !party.TotalOutstanding.IsZero() {
		t.Errorf("expected zero outstanding, got %s", party.TotalOutstanding)
	}
}

func TestPartyUseCase_GetParty_CacheMissThenHit(t *testing.T) {
	parties := mocks.NewMockPartyRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewPartyUseCase(parties, cache, mocks.NewMockIDGenerator())

	repoCalls := 0
	parties.GetByIDFunc = func(ctx context.Context, id string) (*domain.Party, error) {
		repoCalls++
		return &domain.Party{ID: id, Code: "ACME", Currency: "AED", IsActive: true}, nil
	}

	if _, err := uc.GetParty(context.Background(), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := uc.GetParty(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repoCalls != 1 {
		t.Errorf("second read must come from cache, repo called %d times", repoCalls)
	}
	if got.Code != "ACME" {
		t.Errorf("cached party corrupted: %+v", got)
	}
}

func TestPartyUseCase_GetParty_StaleCacheEntryIgnoredOnUnmarshalError(t *testing.T) {
	parties := mocks.NewMockPartyRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewPartyUseCase(parties, cache, mocks.NewMockIDGenerator())

	_ = cache.Set(context.Background(), "party:p1", []byte("{not json"), time.Minute)
	parties.GetByIDFunc = func(ctx context.Context, id string) (*domain.Party, error) {
		return &domain.Party{ID: id, Code: "ACME", IsActive: true}, nil
	}

	got, err := uc.GetParty(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != "ACME" {
		t.Errorf("expected repository fallback, got %+v", got)
	}
}

func TestPartyUseCase_GetParty_NotFound(t *testing.T) {
	parties := mocks.NewMockPartyRepository()
	uc := usecase.NewPartyUseCase(parties, mocks.NewMockCache(), mocks.NewMockIDGenerator())

	if _, err := uc.GetParty(context.Background(), "nope"); err != domain.ErrAccountNotFound {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestPartyUseCase_BalanceSnapshotRoundTrip(t *testing.T) {
	// The cached snapshot must survive a JSON round trip with decimals intact.
	now := time.Now().UTC().Truncate(time.Second)
	party := &domain.Party{
		ID: "p1", Code: "ACME", Currency: "AED", IsActive: true,
		GoldBalance: domain.GoldBalance{
			TotalGrams: decimal.NewFromFloat(123.456),
			TotalValue: decimal.NewFromInt(29000),
			Currency:   "AED", LastUpdated: now,
		},
		CashBalances: []domain.CashBalance{{Currency: "AED", Amount: decimal.NewFromFloat(-450.75), LastUpdated: now}},
	}
	party.RecalcOutstanding()

	raw, err := json.Marshal(party)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back domain.Party
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !back.GoldBalance.TotalGrams.Equal(party.GoldBalance.TotalGrams) {
		t.Errorf("gold grams drifted: %s vs %s", back.GoldBalance.TotalGrams, party.GoldBalance.TotalGrams)
	}
	if !back.CashBalances[0].Amount.Equal(decimal.NewFromFloat(-450.75)) {
		t.Errorf("cash amount drifted: %s", back.CashBalances[0].Amount)
	}
	if !back.TotalOutstanding.Equal(party.TotalOutstanding) {
		t.Errorf("outstanding drifted: %s vs %s", back.TotalOutstanding, party.TotalOutstanding)
	}
}
