package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// PurchaseRepository implements usecase.PurchaseRepository.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new PurchaseRepository.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

const selectPurchaseColumns = `
	id, party_id, currency, voucher_no, cost_center, status, is_active,
	stock_lines, totals, created_by, updated_by, created_at, updated_at
`

// Create creates a new metal purchase within a transaction.
func (r *PurchaseRepository) Create(ctx context.Context, tx usecase.Transaction, purchase *domain.MetalPurchase) error {
	pgxTx := tx.(*Tx).PgxTx()

	lines, totals, err := marshalLinesAndTotals(purchase.StockLines, purchase.Totals)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx,
		`INSERT INTO metal_purchases (
			id, party_id, currency, voucher_no, cost_center, status, is_active,
			stock_lines, totals, created_by, updated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		purchase.ID,
		purchase.PartyID,
		purchase.Currency,
		purchase.VoucherNo,
		purchase.CostCenter,
		string(purchase.Status),
		purchase.IsActive,
		lines,
		totals,
		purchase.CreatedBy,
		purchase.UpdatedBy,
		timeToPgTimestamptz(purchase.CreatedAt),
		timeToPgTimestamptz(purchase.UpdatedAt),
	)
	return err
}

// GetByID retrieves a metal purchase by ID.
func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*domain.MetalPurchase, error) {
	purchase, err := scanPurchase(r.pool.QueryRow(ctx,
		`SELECT `+selectPurchaseColumns+` FROM metal_purchases WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}
	return purchase, nil
}

// Update updates a metal purchase within a transaction.
func (r *PurchaseRepository) Update(ctx context.Context, tx usecase.Transaction, purchase *domain.MetalPurchase) error {
	pgxTx := tx.(*Tx).PgxTx()

	lines, totals, err := marshalLinesAndTotals(purchase.StockLines, purchase.Totals)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx,
		`UPDATE metal_purchases SET
			voucher_no = $2, cost_center = $3, status = $4, is_active = $5,
			stock_lines = $6, totals = $7, updated_by = $8, updated_at = $9
		WHERE id = $1`,
		purchase.ID,
		purchase.VoucherNo,
		purchase.CostCenter,
		string(purchase.Status),
		purchase.IsActive,
		lines,
		totals,
		purchase.UpdatedBy,
		timeToPgTimestamptz(purchase.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPurchaseNotFound
	}
	return nil
}

// List lists metal purchases with pagination, newest first.
func (r *PurchaseRepository) List(ctx context.Context, limit, offset int) ([]*domain.MetalPurchase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectPurchaseColumns+` FROM metal_purchases
		 ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*domain.MetalPurchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, purchase)
	}
	return purchases, rows.Err()
}

func scanPurchase(row pgx.Row) (*domain.MetalPurchase, error) {
	var (
		purchase             domain.MetalPurchase
		status               string
		lines, totals        []byte
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&purchase.ID, &purchase.PartyID, &purchase.Currency, &purchase.VoucherNo,
		&purchase.CostCenter, &status, &purchase.IsActive, &lines, &totals,
		&purchase.CreatedBy, &purchase.UpdatedBy, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	purchase.Status = domain.TransactionStatus(status)
	if err := json.Unmarshal(lines, &purchase.StockLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(totals, &purchase.Totals); err != nil {
		return nil, err
	}
	purchase.CreatedAt = createdAt.Time
	purchase.UpdatedAt = updatedAt.Time
	return &purchase, nil
}
