package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/karat/bullionledger/internal/domain"
)

const partyCacheTTL = 30 * time.Second

// PartyUseCase handles party master data and balance reads. Reads go through
// a short-TTL cache; the snapshot itself is only ever written by the posting
// engine.
type PartyUseCase struct {
	parties PartyRepository
	cache   Cache
	idGen   IDGenerator
}

// NewPartyUseCase creates a new PartyUseCase.
func NewPartyUseCase(parties PartyRepository, cache Cache, idGen IDGenerator) *PartyUseCase {
	return &PartyUseCase{
		parties: parties,
		cache:   cache,
		idGen:   idGen,
	}
}

// CreatePartyInput represents input for creating a party.
type CreatePartyInput struct {
	Code     string
	Name     string
	Currency string
}

// CreateParty creates a trading party with zero balances.
func (uc *PartyUseCase) CreateParty(ctx context.Context, input CreatePartyInput) (*domain.Party, error) {
	now := time.Now().UTC()
	party := &domain.Party{
		ID:       uc.idGen.Generate(),
		Code:     input.Code,
		Name:     input.Name,
		Currency: input.Currency,
		IsActive: true,
		GoldBalance: domain.GoldBalance{
			Currency:    input.Currency,
			LastUpdated: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	party.RecalcOutstanding()

	if err := uc.parties.Create(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

// GetParty retrieves a party, preferring the cache. Snapshot staleness is
// bounded by the cache TTL.
func (uc *PartyUseCase) GetParty(ctx context.Context, id string) (*domain.Party, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, "party:"+id); err == nil && raw != nil {
			var party domain.Party
			if err := json.Unmarshal(raw, &party); err == nil {
				return &party, nil
			}
		}
	}

	party, err := uc.parties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(party); err == nil {
			_ = uc.cache.Set(ctx, "party:"+id, raw, partyCacheTTL)
		}
	}
	return party, nil
}

// ListParties lists parties with pagination.
func (uc *PartyUseCase) ListParties(ctx context.Context, limit, offset int) ([]*domain.Party, error) {
	return uc.parties.List(ctx, clampLimit(limit), offset)
}
