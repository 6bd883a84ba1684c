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

// TransactionRepository implements usecase.TransactionRepository. Stock lines
// and session totals are stored as jsonb documents on the aggregate row; the
// registry carries the flattened financial view.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const selectTransactionColumns = `
	id, transaction_type, party_id, currency, voucher_no, cost_center,
	status, is_active, stock_lines, totals, created_by, updated_by,
	created_at, updated_at
`

// Create creates a new metal transaction within a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.MetalTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	lines, totals, err := marshalLinesAndTotals(txn.StockLines, txn.Totals)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx,
		`INSERT INTO metal_transactions (
			id, transaction_type, party_id, currency, voucher_no, cost_center,
			status, is_active, stock_lines, totals, created_by, updated_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		txn.ID,
		string(txn.TransactionType),
		txn.PartyID,
		txn.Currency,
		txn.VoucherNo,
		txn.CostCenter,
		string(txn.Status),
		txn.IsActive,
		lines,
		totals,
		txn.CreatedBy,
		txn.UpdatedBy,
		timeToPgTimestamptz(txn.CreatedAt),
		timeToPgTimestamptz(txn.UpdatedAt),
	)
	return err
}

// GetByID retrieves a metal transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.MetalTransaction, error) {
	txn, err := scanTransaction(r.pool.QueryRow(ctx,
		`SELECT `+selectTransactionColumns+` FROM metal_transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

// Update updates a metal transaction within a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.MetalTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	lines, totals, err := marshalLinesAndTotals(txn.StockLines, txn.Totals)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx,
		`UPDATE metal_transactions SET
			transaction_type = $2, voucher_no = $3, cost_center = $4,
			status = $5, is_active = $6, stock_lines = $7, totals = $8,
			updated_by = $9, updated_at = $10
		WHERE id = $1`,
		txn.ID,
		string(txn.TransactionType),
		txn.VoucherNo,
		txn.CostCenter,
		string(txn.Status),
		txn.IsActive,
		lines,
		totals,
		txn.UpdatedBy,
		timeToPgTimestamptz(txn.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// List lists metal transactions with pagination, newest first.
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.MetalTransaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectTransactionColumns+` FROM metal_transactions
		 ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.MetalTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.MetalTransaction, error) {
	var (
		txn                     domain.MetalTransaction
		transactionType, status string
		lines, totals           []byte
		createdAt, updatedAt    pgtype.Timestamptz
	)
	if err := row.Scan(
		&txn.ID, &transactionType, &txn.PartyID, &txn.Currency, &txn.VoucherNo,
		&txn.CostCenter, &status, &txn.IsActive, &lines, &totals,
		&txn.CreatedBy, &txn.UpdatedBy, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	txn.TransactionType = domain.TransactionType(transactionType)
	txn.Status = domain.TransactionStatus(status)
	if err := json.Unmarshal(lines, &txn.StockLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(totals, &txn.Totals); err != nil {
		return nil, err
	}
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time
	return &txn, nil
}

func marshalLinesAndTotals(lines []domain.StockLine, totals domain.SessionTotals) ([]byte, []byte, error) {
	rawLines, err := json.Marshal(lines)
	if err != nil {
		return nil, nil, err
	}
	rawTotals, err := json.Marshal(totals)
	if err != nil {
		return nil, nil, err
	}
	return rawLines, rawTotals, nil
}
