package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// StockRepository implements usecase.StockRepository.
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new StockRepository.
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

const selectStockColumns = `
	id, code, metal, description, purity,
	pieces_in_hand, weight_in_hand, created_at, updated_at
`

// Create creates a new stock item.
func (r *StockRepository) Create(ctx context.Context, item *domain.StockItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO stock_items (
			id, code, metal, description, purity,
			pieces_in_hand, weight_in_hand, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID,
		item.Code,
		item.Metal,
		item.Description,
		decimalToNumeric(item.Purity),
		item.PiecesInHand,
		decimalToNumeric(item.WeightInHand),
		timeToPgTimestamptz(item.CreatedAt),
		timeToPgTimestamptz(item.UpdatedAt),
	)
	return err
}

// GetByCode retrieves a stock item by code.
func (r *StockRepository) GetByCode(ctx context.Context, code string) (*domain.StockItem, error) {
	item, err := scanStockItem(r.pool.QueryRow(ctx,
		`SELECT `+selectStockColumns+` FROM stock_items WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStockNotFound
		}
		return nil, err
	}
	return item, nil
}

// AdjustCounters shifts the on-hand counters by the given deltas within a
// transaction. Deltas may be negative on reversals and payments.
func (r *StockRepository) AdjustCounters(ctx context.Context, tx usecase.Transaction, code string, pieces int64, weight decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE stock_items SET
			pieces_in_hand = pieces_in_hand + $2,
			weight_in_hand = weight_in_hand + $3,
			updated_at = $4
		WHERE code = $1`,
		code, pieces, decimalToNumeric(weight), timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}

// List lists stock items with pagination.
func (r *StockRepository) List(ctx context.Context, limit, offset int) ([]*domain.StockItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectStockColumns+` FROM stock_items ORDER BY code LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanStockItem(row pgx.Row) (*domain.StockItem, error) {
	var (
		item                 domain.StockItem
		purity, weight       pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&item.ID, &item.Code, &item.Metal, &item.Description, &purity,
		&item.PiecesInHand, &weight, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	item.Purity = numericToDecimal(purity)
	item.WeightInHand = numericToDecimal(weight)
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	return &item, nil
}
