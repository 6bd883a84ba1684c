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

// PartyRepository implements usecase.PartyRepository. A party spans two
// tables: the parties row carries the gold position and derived totals, the
// party_cash_balances rows carry one balance per held currency.
type PartyRepository struct {
	pool *pgxpool.Pool
}

// NewPartyRepository creates a new PartyRepository.
func NewPartyRepository(pool *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{pool: pool}
}

const selectPartyColumns = `
	id, code, name, currency, is_active,
	gold_total_grams, gold_total_value, gold_last_updated,
	total_outstanding, last_balance_update, last_transaction_date,
	created_at, updated_at
`

// Create creates a new party.
func (r *PartyRepository) Create(ctx context.Context, party *domain.Party) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO parties (
			id, code, name, currency, is_active,
			gold_total_grams, gold_total_value, gold_last_updated,
			total_outstanding, last_balance_update, last_transaction_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		party.ID,
		party.Code,
		party.Name,
		party.Currency,
		party.IsActive,
		decimalToNumeric(party.GoldBalance.TotalGrams),
		decimalToNumeric(party.GoldBalance.TotalValue),
		timeToPgTimestamptz(party.GoldBalance.LastUpdated),
		decimalToNumeric(party.TotalOutstanding),
		timeToPgTimestamptz(party.LastBalanceUpdate),
		timeToPgTimestamptz(party.LastTransactionDate),
		timeToPgTimestamptz(party.CreatedAt),
		timeToPgTimestamptz(party.UpdatedAt),
	)
	return err
}

// GetByID retrieves a party with its cash balances.
func (r *PartyRepository) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	return r.getByID(ctx, r.pool, id, false)
}

// GetByIDForUpdate retrieves a party with a FOR UPDATE lock on the parties
// row. Cash balance rows are covered by the parties row lock: every writer
// goes through the same lock first.
func (r *PartyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Party, error) {
	return r.getByID(ctx, tx.(*Tx).PgxTx(), id, true)
}

// GetByIDsForUpdate retrieves multiple parties with FOR UPDATE locks. IDs
// must be pre-sorted by the caller so concurrent transfers lock in the same
// order.
func (r *PartyRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Party, error) {
	parties := make([]*domain.Party, 0, len(ids))
	for _, id := range ids {
		party, err := r.getByID(ctx, tx.(*Tx).PgxTx(), id, true)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				continue
			}
			return nil, err
		}
		parties = append(parties, party)
	}
	return parties, nil
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PartyRepository) getByID(ctx context.Context, q queryer, id string, forUpdate bool) (*domain.Party, error) {
	query := `SELECT ` + selectPartyColumns + ` FROM parties WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	party, err := scanParty(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	rows, err := q.Query(ctx,
		`SELECT currency, amount, last_updated FROM party_cash_balances WHERE party_id = $1 ORDER BY currency`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cb          domain.CashBalance
			amount      pgtype.Numeric
			lastUpdated pgtype.Timestamptz
		)
		if err := rows.Scan(&cb.Currency, &amount, &lastUpdated); err != nil {
			return nil, err
		}
		cb.Amount = numericToDecimal(amount)
		cb.LastUpdated = lastUpdated.Time
		party.CashBalances = append(party.CashBalances, cb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return party, nil
}

// SaveBalances persists the party's balance snapshot within a transaction:
// the gold position and derived totals on the parties row, plus an upsert
// per cash balance row.
func (r *PartyRepository) SaveBalances(ctx context.Context, tx usecase.Transaction, party *domain.Party) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE parties SET
			gold_total_grams = $2,
			gold_total_value = $3,
			gold_last_updated = $4,
			total_outstanding = $5,
			last_balance_update = $6,
			last_transaction_date = $7,
			updated_at = $6
		WHERE id = $1`,
		party.ID,
		decimalToNumeric(party.GoldBalance.TotalGrams),
		decimalToNumeric(party.GoldBalance.TotalValue),
		timeToPgTimestamptz(party.GoldBalance.LastUpdated),
		decimalToNumeric(party.TotalOutstanding),
		timeToPgTimestamptz(party.LastBalanceUpdate),
		timeToPgTimestamptz(party.LastTransactionDate),
	)
	if err != nil {
		return err
	}

	for i := range party.CashBalances {
		cb := &party.CashBalances[i]
		_, err := pgxTx.Exec(ctx,
			`INSERT INTO party_cash_balances (party_id, currency, amount, last_updated)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (party_id, currency)
			 DO UPDATE SET amount = EXCLUDED.amount, last_updated = EXCLUDED.last_updated`,
			party.ID,
			cb.Currency,
			decimalToNumeric(cb.Amount),
			timeToPgTimestamptz(cb.LastUpdated),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// List lists parties with pagination. Cash balances are not loaded here;
// list views only show the derived totals.
func (r *PartyRepository) List(ctx context.Context, limit, offset int) ([]*domain.Party, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectPartyColumns+` FROM parties ORDER BY code LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parties []*domain.Party
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}
	return parties, rows.Err()
}

func scanParty(row pgx.Row) (*domain.Party, error) {
	var (
		party                                     domain.Party
		goldGrams, goldValue, outstanding         pgtype.Numeric
		goldUpdated, balanceUpdate, lastTxnDate   pgtype.Timestamptz
		createdAt, updatedAt                      pgtype.Timestamptz
	)
	if err := row.Scan(
		&party.ID, &party.Code, &party.Name, &party.Currency, &party.IsActive,
		&goldGrams, &goldValue, &goldUpdated,
		&outstanding, &balanceUpdate, &lastTxnDate,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	party.GoldBalance = domain.GoldBalance{
		TotalGrams:  numericToDecimal(goldGrams),
		TotalValue:  numericToDecimal(goldValue),
		Currency:    party.Currency,
		LastUpdated: goldUpdated.Time,
	}
	party.TotalOutstanding = numericToDecimal(outstanding)
	party.LastBalanceUpdate = balanceUpdate.Time
	party.LastTransactionDate = lastTxnDate.Time
	party.CreatedAt = createdAt.Time
	party.UpdatedAt = updatedAt.Time
	return &party, nil
}
