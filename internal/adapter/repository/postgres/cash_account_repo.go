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

// CashAccountRepository implements usecase.CashAccountRepository.
type CashAccountRepository struct {
	pool *pgxpool.Pool
}

// NewCashAccountRepository creates a new CashAccountRepository.
func NewCashAccountRepository(pool *pgxpool.Pool) *CashAccountRepository {
	return &CashAccountRepository{pool: pool}
}

// Create creates a new cash account.
func (r *CashAccountRepository) Create(ctx context.Context, account *domain.CashAccount) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cash_accounts (
			id, code, name, currency, opening_balance, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.ID,
		account.Code,
		account.Name,
		account.Currency,
		decimalToNumeric(account.OpeningBalance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	return err
}

// GetByID retrieves a cash account by ID.
func (r *CashAccountRepository) GetByID(ctx context.Context, id string) (*domain.CashAccount, error) {
	var (
		account              domain.CashAccount
		balance              pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, name, currency, opening_balance, created_at, updated_at
		 FROM cash_accounts WHERE id = $1`, id,
	).Scan(&account.ID, &account.Code, &account.Name, &account.Currency, &balance, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	account.OpeningBalance = numericToDecimal(balance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time
	return &account, nil
}

// AdjustOpeningBalance shifts the account counter by delta within a
// transaction. Positive on receipts, negative on payments.
func (r *CashAccountRepository) AdjustOpeningBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE cash_accounts SET
			opening_balance = opening_balance + $2,
			updated_at = $3
		WHERE id = $1`,
		id, decimalToNumeric(delta), timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
