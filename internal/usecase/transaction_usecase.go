package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

// MetalTransactionUseCase drives the metal transaction aggregate lifecycle.
// Create posts once; a financial update reverses the old postings and posts
// the new ones in the same unit of work; delete reverses and soft-cancels.
type MetalTransactionUseCase struct {
	engine       *PostingEngine
	transactions TransactionRepository
	idGen        IDGenerator
}

// NewMetalTransactionUseCase creates a new MetalTransactionUseCase.
func NewMetalTransactionUseCase(engine *PostingEngine, transactions TransactionRepository, idGen IDGenerator) *MetalTransactionUseCase {
	return &MetalTransactionUseCase{
		engine:       engine,
		transactions: transactions,
		idGen:        idGen,
	}
}

// CreateMetalTransactionInput represents input for creating a transaction.
type CreateMetalTransactionInput struct {
	TransactionType domain.TransactionType
	PartyID         string
	Currency        string
	VoucherNo       string
	CostCenter      string
	Status          domain.TransactionStatus
	StockLines      []domain.StockLine
	VatPercentage   decimal.Decimal
	ActorID         string
}

// CreateMetalTransaction saves a new transaction and posts it.
func (uc *MetalTransactionUseCase) CreateMetalTransaction(ctx context.Context, input CreateMetalTransactionInput) (*domain.MetalTransaction, error) {
	if len(input.StockLines) == 0 {
		return nil, domain.ErrMinimumStockItems
	}

	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}
	switch status {
	case domain.StatusDraft, domain.StatusConfirmed, domain.StatusCompleted:
	default:
		return nil, domain.ErrInvalidStatus
	}

	txn := &domain.MetalTransaction{
		ID:              uc.idGen.Generate(),
		TransactionType: input.TransactionType,
		PartyID:         input.PartyID,
		Currency:        input.Currency,
		VoucherNo:       input.VoucherNo,
		CostCenter:      input.CostCenter,
		Status:          status,
		IsActive:        true,
		StockLines:      input.StockLines,
		Totals:          domain.SessionTotals{VatPercentage: input.VatPercentage},
		CreatedBy:       input.ActorID,
		UpdatedBy:       input.ActorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	txn.RecalculateTotals()

	err := uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.transactions.Create(ctx, tx, txn); err != nil {
			return err
		}
		_, err := uc.engine.PostMetalTransaction(ctx, tx, txn, input.ActorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// UpdateMetalTransactionInput represents input for updating a transaction.
// Nil fields are left untouched; any non-nil financial field triggers a
// reverse-then-repost.
type UpdateMetalTransactionInput struct {
	TransactionType *domain.TransactionType
	VoucherNo       *string
	CostCenter      *string
	Status          *domain.TransactionStatus
	StockLines      []domain.StockLine
	VatPercentage   *decimal.Decimal
	ActorID         string
}

func (in UpdateMetalTransactionInput) financial() bool {
	return in.TransactionType != nil || in.StockLines != nil || in.VatPercentage != nil
}

// UpdateMetalTransaction applies header or line changes. If any financially
// relevant field changed, the old postings are reversed and the new state is
// posted, both phases inside one unit of work.
func (uc *MetalTransactionUseCase) UpdateMetalTransaction(ctx context.Context, id string, input UpdateMetalTransactionInput) (*domain.MetalTransaction, error) {
	txn, err := uc.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn.Status == domain.StatusCancelled {
		return nil, domain.ErrTransactionCancelled
	}

	old := snapshotTransaction(txn)
	now := time.Now().UTC()

	if input.TransactionType != nil {
		txn.TransactionType = *input.TransactionType
	}
	if input.VoucherNo != nil {
		txn.VoucherNo = *input.VoucherNo
	}
	if input.CostCenter != nil {
		txn.CostCenter = *input.CostCenter
	}
	if input.Status != nil {
		if !txn.Status.CanTransitionTo(*input.Status) {
			return nil, domain.ErrInvalidStatus
		}
		txn.Status = *input.Status
	}
	if input.StockLines != nil {
		if len(input.StockLines) == 0 {
			return nil, domain.ErrMinimumStockItems
		}
		txn.StockLines = input.StockLines
	}
	if input.VatPercentage != nil {
		txn.Totals.VatPercentage = *input.VatPercentage
	}
	txn.UpdatedBy = input.ActorID
	txn.UpdatedAt = now
	txn.RecalculateTotals()

	err = uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if input.financial() {
			if _, err := uc.engine.ReverseMetalTransaction(ctx, tx, old, input.ActorID, ReversalSuffixAdjustment); err != nil {
				return err
			}
			if _, err := uc.engine.PostMetalTransaction(ctx, tx, txn, input.ActorID); err != nil {
				return err
			}
		}
		return uc.transactions.Update(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// AddStockLine appends a line and re-posts the transaction.
func (uc *MetalTransactionUseCase) AddStockLine(ctx context.Context, id string, line domain.StockLine, actorID string) (*domain.MetalTransaction, error) {
	return uc.mutateLines(ctx, id, actorID, func(txn *domain.MetalTransaction) error {
		txn.StockLines = append(txn.StockLines, line)
		return nil
	})
}

// UpdateStockLine replaces the line at index and re-posts the transaction.
func (uc *MetalTransactionUseCase) UpdateStockLine(ctx context.Context, id string, index int, line domain.StockLine, actorID string) (*domain.MetalTransaction, error) {
	return uc.mutateLines(ctx, id, actorID, func(txn *domain.MetalTransaction) error {
		if index < 0 || index >= len(txn.StockLines) {
			return domain.ErrStockNotFound
		}
		txn.StockLines[index] = line
		return nil
	})
}

// RemoveStockLine removes the line at index. Removing the last remaining
// line is rejected: a transaction must carry at least one.
func (uc *MetalTransactionUseCase) RemoveStockLine(ctx context.Context, id string, index int, actorID string) (*domain.MetalTransaction, error) {
	return uc.mutateLines(ctx, id, actorID, func(txn *domain.MetalTransaction) error {
		if len(txn.StockLines) <= 1 {
			return domain.ErrMinimumStockItems
		}
		if index < 0 || index >= len(txn.StockLines) {
			return domain.ErrStockNotFound
		}
		txn.StockLines = append(txn.StockLines[:index], txn.StockLines[index+1:]...)
		return nil
	})
}

func (uc *MetalTransactionUseCase) mutateLines(ctx context.Context, id, actorID string, mutate func(*domain.MetalTransaction) error) (*domain.MetalTransaction, error) {
	txn, err := uc.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn.Status == domain.StatusCancelled {
		return nil, domain.ErrTransactionCancelled
	}

	old := snapshotTransaction(txn)
	if err := mutate(txn); err != nil {
		return nil, err
	}
	txn.UpdatedBy = actorID
	txn.UpdatedAt = time.Now().UTC()
	txn.RecalculateTotals()

	err = uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if _, err := uc.engine.ReverseMetalTransaction(ctx, tx, old, actorID, ReversalSuffixAdjustment); err != nil {
			return err
		}
		if _, err := uc.engine.PostMetalTransaction(ctx, tx, txn, actorID); err != nil {
			return err
		}
		return uc.transactions.Update(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// DeleteMetalTransaction reverses the postings and soft-cancels. The record
// stays in place while registry entries reference it.
func (uc *MetalTransactionUseCase) DeleteMetalTransaction(ctx context.Context, id, actorID string) (*domain.MetalTransaction, error) {
	txn, err := uc.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	old := snapshotTransaction(txn)
	now := time.Now().UTC()
	if err := txn.Cancel(now); err != nil {
		return nil, err
	}
	txn.UpdatedBy = actorID

	err = uc.engine.Execute(ctx, func(ctx context.Context, tx Transaction) error {
		if _, err := uc.engine.ReverseMetalTransaction(ctx, tx, old, actorID, ReversalSuffixCancellation); err != nil {
			return err
		}
		return uc.transactions.Update(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// GetMetalTransaction retrieves a transaction by ID.
func (uc *MetalTransactionUseCase) GetMetalTransaction(ctx context.Context, id string) (*domain.MetalTransaction, error) {
	return uc.transactions.GetByID(ctx, id)
}

// ListMetalTransactions lists transactions with pagination.
func (uc *MetalTransactionUseCase) ListMetalTransactions(ctx context.Context, limit, offset int) ([]*domain.MetalTransaction, error) {
	limit = clampLimit(limit)
	return uc.transactions.List(ctx, limit, offset)
}

func snapshotTransaction(txn *domain.MetalTransaction) *domain.MetalTransaction {
	old := *txn
	old.StockLines = make([]domain.StockLine, len(txn.StockLines))
	copy(old.StockLines, txn.StockLines)
	return &old
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
