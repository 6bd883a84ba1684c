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

// VoucherRepository implements usecase.VoucherRepository.
type VoucherRepository struct {
	pool *pgxpool.Pool
}

// NewVoucherRepository creates a new VoucherRepository.
func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

const selectVoucherColumns = `
	id, voucher_type, party_id, voucher_no, status, is_active,
	cash_lines, metal_lines, created_by, created_at, updated_at
`

// Create creates a new voucher within a transaction.
func (r *VoucherRepository) Create(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	pgxTx := tx.(*Tx).PgxTx()

	cashLines, err := json.Marshal(voucher.CashLines)
	if err != nil {
		return err
	}
	metalLines, err := json.Marshal(voucher.MetalLines)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx,
		`INSERT INTO vouchers (
			id, voucher_type, party_id, voucher_no, status, is_active,
			cash_lines, metal_lines, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		voucher.ID,
		string(voucher.Type),
		voucher.PartyID,
		voucher.VoucherNo,
		string(voucher.Status),
		voucher.IsActive,
		cashLines,
		metalLines,
		voucher.CreatedBy,
		timeToPgTimestamptz(voucher.CreatedAt),
		timeToPgTimestamptz(voucher.UpdatedAt),
	)
	return err
}

// GetByID retrieves a voucher by ID.
func (r *VoucherRepository) GetByID(ctx context.Context, id string) (*domain.Voucher, error) {
	voucher, err := scanVoucher(r.pool.QueryRow(ctx,
		`SELECT `+selectVoucherColumns+` FROM vouchers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, err
	}
	return voucher, nil
}

// Update updates a voucher within a transaction.
func (r *VoucherRepository) Update(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	pgxTx := tx.(*Tx).PgxTx()

	cashLines, err := json.Marshal(voucher.CashLines)
	if err != nil {
		return err
	}
	metalLines, err := json.Marshal(voucher.MetalLines)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx,
		`UPDATE vouchers SET
			voucher_no = $2, status = $3, is_active = $4,
			cash_lines = $5, metal_lines = $6, updated_at = $7
		WHERE id = $1`,
		voucher.ID,
		voucher.VoucherNo,
		string(voucher.Status),
		voucher.IsActive,
		cashLines,
		metalLines,
		timeToPgTimestamptz(voucher.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVoucherNotFound
	}
	return nil
}

// List lists vouchers with pagination, newest first.
func (r *VoucherRepository) List(ctx context.Context, limit, offset int) ([]*domain.Voucher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectVoucherColumns+` FROM vouchers
		 ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*domain.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, voucher)
	}
	return vouchers, rows.Err()
}

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var (
		voucher               domain.Voucher
		voucherType, status   string
		cashLines, metalLines []byte
		createdAt, updatedAt  pgtype.Timestamptz
	)
	if err := row.Scan(
		&voucher.ID, &voucherType, &voucher.PartyID, &voucher.VoucherNo,
		&status, &voucher.IsActive, &cashLines, &metalLines,
		&voucher.CreatedBy, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	voucher.Type = domain.VoucherType(voucherType)
	voucher.Status = domain.TransactionStatus(status)
	if err := json.Unmarshal(cashLines, &voucher.CashLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metalLines, &voucher.MetalLines); err != nil {
		return nil, err
	}
	voucher.CreatedAt = createdAt.Time
	voucher.UpdatedAt = updatedAt.Time
	return &voucher, nil
}
