package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// FixingRepository implements usecase.FixingRepository.
type FixingRepository struct {
	pool *pgxpool.Pool
}

// NewFixingRepository creates a new FixingRepository.
func NewFixingRepository(pool *pgxpool.Pool) *FixingRepository {
	return &FixingRepository{pool: pool}
}

const selectFixingColumns = `
	id, fixing_type, party_id, quantity, rate, currency, voucher_no,
	status, is_active, created_by, updated_by, created_at, updated_at
`

// Create creates a new fixing within a transaction.
func (r *FixingRepository) Create(ctx context.Context, tx usecase.Transaction, fixing *domain.Fixing) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO fixings (
			id, fixing_type, party_id, quantity, rate, currency, voucher_no,
			status, is_active, created_by, updated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		fixing.ID,
		string(fixing.Type),
		fixing.PartyID,
		decimalToNumeric(fixing.Quantity),
		decimalToNumeric(fixing.Rate),
		fixing.Currency,
		fixing.VoucherNo,
		string(fixing.Status),
		fixing.IsActive,
		fixing.CreatedBy,
		fixing.UpdatedBy,
		timeToPgTimestamptz(fixing.CreatedAt),
		timeToPgTimestamptz(fixing.UpdatedAt),
	)
	return err
}

// GetByID retrieves a fixing by ID.
func (r *FixingRepository) GetByID(ctx context.Context, id string) (*domain.Fixing, error) {
	fixing, err := scanFixing(r.pool.QueryRow(ctx,
		`SELECT `+selectFixingColumns+` FROM fixings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFixingNotFound
		}
		return nil, err
	}
	return fixing, nil
}

// Update updates a fixing within a transaction.
func (r *FixingRepository) Update(ctx context.Context, tx usecase.Transaction, fixing *domain.Fixing) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE fixings SET
			quantity = $2, rate = $3, currency = $4, voucher_no = $5,
			status = $6, is_active = $7, updated_by = $8, updated_at = $9
		WHERE id = $1`,
		fixing.ID,
		decimalToNumeric(fixing.Quantity),
		decimalToNumeric(fixing.Rate),
		fixing.Currency,
		fixing.VoucherNo,
		string(fixing.Status),
		fixing.IsActive,
		fixing.UpdatedBy,
		timeToPgTimestamptz(fixing.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFixingNotFound
	}
	return nil
}

// List lists fixings with pagination, newest first.
func (r *FixingRepository) List(ctx context.Context, limit, offset int) ([]*domain.Fixing, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectFixingColumns+` FROM fixings
		 ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fixings []*domain.Fixing
	for rows.Next() {
		fixing, err := scanFixing(rows)
		if err != nil {
			return nil, err
		}
		fixings = append(fixings, fixing)
	}
	return fixings, rows.Err()
}

func scanFixing(row pgx.Row) (*domain.Fixing, error) {
	var (
		fixing               domain.Fixing
		fixingType, status   string
		quantity, rate       pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&fixing.ID, &fixingType, &fixing.PartyID, &quantity, &rate,
		&fixing.Currency, &fixing.VoucherNo, &status, &fixing.IsActive,
		&fixing.CreatedBy, &fixing.UpdatedBy, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	fixing.Type = domain.FixingType(fixingType)
	fixing.Status = domain.TransactionStatus(status)
	fixing.Quantity = numericToDecimal(quantity)
	fixing.Rate = numericToDecimal(rate)
	fixing.CreatedAt = createdAt.Time
	fixing.UpdatedAt = updatedAt.Time
	return &fixing, nil
}
