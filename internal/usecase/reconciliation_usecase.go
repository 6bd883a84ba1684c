package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

// BatchReport is the result of checking a single posting batch.
type BatchReport struct {
	TransactionID string           `json:"transactionId"`
	EntryCount    int              `json:"entryCount"`
	Sums          []domain.TypeSum `json:"sums"`
	Issues        []string         `json:"issues,omitempty"`
}

// Consistent reports whether the batch passed every check.
func (r *BatchReport) Consistent() bool {
	return len(r.Issues) == 0
}

// LedgerReport aggregates per-book debit/credit totals across the whole
// registry.
type LedgerReport struct {
	Sums []domain.TypeSum `json:"sums"`
}

// ReconciliationUseCase runs consistency checks over the registry. It is a
// read-only diagnostic: it never mutates entries or balances.
type ReconciliationUseCase struct {
	registry RegistryRepository
	logger   zerolog.Logger
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(registry RegistryRepository, logger zerolog.Logger) *ReconciliationUseCase {
	return &ReconciliationUseCase{registry: registry, logger: logger}
}

// CheckBatch validates one posting batch: it must exist, carry at least two
// entries, and every entry must be pure debit or pure credit.
func (uc *ReconciliationUseCase) CheckBatch(ctx context.Context, transactionID string) (*BatchReport, error) {
	entries, err := uc.registry.ListByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	report := &BatchReport{
		TransactionID: transactionID,
		EntryCount:    len(entries),
	}
	if len(entries) < 2 {
		report.Issues = append(report.Issues, "batch has fewer than two entries")
	}
	for _, e := range entries {
		if e.Debit.IsPositive() && e.Credit.IsPositive() {
			report.Issues = append(report.Issues, "entry "+e.ID+" carries both debit and credit")
		}
		if e.Debit.IsZero() && e.Credit.IsZero() {
			report.Issues = append(report.Issues, "entry "+e.ID+" carries neither debit nor credit")
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			report.Issues = append(report.Issues, "entry "+e.ID+" carries a negative amount")
		}
	}

	sums, err := uc.registry.SumsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	report.Sums = sums

	if !report.Consistent() {
		uc.logger.Warn().
			Str("transaction_id", transactionID).
			Strs("issues", report.Issues).
			Msg("inconsistent posting batch")
	}
	return report, nil
}

// LedgerTotals returns debit/credit totals per book across the full registry,
// together with the net position of each book.
func (uc *ReconciliationUseCase) LedgerTotals(ctx context.Context) (*LedgerReport, error) {
	sums, err := uc.registry.SumsByType(ctx)
	if err != nil {
		return nil, err
	}
	return &LedgerReport{Sums: sums}, nil
}

// BookNet returns the net position (debits minus credits) of one book.
func (uc *ReconciliationUseCase) BookNet(ctx context.Context, book domain.EntryType) (decimal.Decimal, error) {
	sums, err := uc.registry.SumsByType(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	for _, s := range sums {
		if s.Type == book {
			return s.Net(), nil
		}
	}
	return decimal.Zero, nil
}
