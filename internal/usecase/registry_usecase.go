package usecase

import (
	"context"

	"github.com/karat/bullionledger/internal/domain"
)

// RegistryUseCase exposes read-side queries over the ledger entry store.
type RegistryUseCase struct {
	registry RegistryRepository
}

// NewRegistryUseCase creates a new RegistryUseCase.
func NewRegistryUseCase(registry RegistryRepository) *RegistryUseCase {
	return &RegistryUseCase{registry: registry}
}

// GetBatch returns all entries of one posting batch.
func (uc *RegistryUseCase) GetBatch(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	return uc.registry.ListByTransactionID(ctx, transactionID)
}

// GetBatchSums returns per-book debit/credit sums for one posting batch.
func (uc *RegistryUseCase) GetBatchSums(ctx context.Context, transactionID string) ([]domain.TypeSum, error) {
	return uc.registry.SumsByTransactionID(ctx, transactionID)
}

// ListByParty returns entries concerning a party.
func (uc *RegistryUseCase) ListByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	return uc.registry.ListByParty(ctx, partyID, clampLimit(limit), offset)
}

// StockLedger returns entries referencing a stock code.
func (uc *RegistryUseCase) StockLedger(ctx context.Context, stockCode string, limit, offset int) ([]*domain.LedgerEntry, error) {
	return uc.registry.ListByReference(ctx, stockCode, clampLimit(limit), offset)
}
