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

// FundTransferRepository implements usecase.FundTransferRepository. Transfer
// records are immutable once written.
type FundTransferRepository struct {
	pool *pgxpool.Pool
}

// NewFundTransferRepository creates a new FundTransferRepository.
func NewFundTransferRepository(pool *pgxpool.Pool) *FundTransferRepository {
	return &FundTransferRepository{pool: pool}
}

const selectTransferColumns = `
	id, sender_id, receiver_id, asset_type, currency, value, created_by, created_at
`

// Create creates a new fund transfer within a transaction.
func (r *FundTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.FundTransfer) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO fund_transfers (
			id, sender_id, receiver_id, asset_type, currency, value, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transfer.ID,
		transfer.SenderID,
		transfer.ReceiverID,
		string(transfer.AssetType),
		transfer.Currency,
		decimalToNumeric(transfer.Value),
		transfer.CreatedBy,
		timeToPgTimestamptz(transfer.CreatedAt),
	)
	return err
}

// GetByID retrieves a fund transfer by ID.
func (r *FundTransferRepository) GetByID(ctx context.Context, id string) (*domain.FundTransfer, error) {
	transfer, err := scanTransfer(r.pool.QueryRow(ctx,
		`SELECT `+selectTransferColumns+` FROM fund_transfers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, err
	}
	return transfer, nil
}

// ListByParty lists transfers where the party is either sender or receiver,
// newest first.
func (r *FundTransferRepository) ListByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.FundTransfer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectTransferColumns+` FROM fund_transfers
		 WHERE sender_id = $1 OR receiver_id = $1
		 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		partyID, int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.FundTransfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}
	return transfers, rows.Err()
}

func scanTransfer(row pgx.Row) (*domain.FundTransfer, error) {
	var (
		transfer  domain.FundTransfer
		assetType string
		value     pgtype.Numeric
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&transfer.ID, &transfer.SenderID, &transfer.ReceiverID, &assetType,
		&transfer.Currency, &value, &transfer.CreatedBy, &createdAt,
	); err != nil {
		return nil, err
	}
	transfer.AssetType = domain.AssetType(assetType)
	transfer.Value = numericToDecimal(value)
	transfer.CreatedAt = createdAt.Time
	return &transfer, nil
}
