package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// RegistryRepository implements usecase.RegistryRepository. The registry table
// is append-only: batches are inserted inside the posting transaction and
// never updated or deleted.
type RegistryRepository struct {
	pool *pgxpool.Pool
}

// NewRegistryRepository creates a new RegistryRepository.
func NewRegistryRepository(pool *pgxpool.Pool) *RegistryRepository {
	return &RegistryRepository{pool: pool}
}

const insertEntrySQL = `
	INSERT INTO registry_entries (
		id, transaction_id, entry_type, value, debit, credit,
		running_balance, previous_balance, reference, party_id,
		cost_center, description, created_by, transaction_date,
		status, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

const selectEntryColumns = `
	id, transaction_id, entry_type, value, debit, credit,
	running_balance, previous_balance, reference, party_id,
	cost_center, description, created_by, transaction_date,
	status, created_at
`

// CreateBatch inserts all entries of one posting batch within a transaction.
func (r *RegistryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertEntrySQL,
			e.ID,
			e.TransactionID,
			string(e.Type),
			decimalToNumeric(e.Value),
			decimalToNumeric(e.Debit),
			decimalToNumeric(e.Credit),
			decimalToNumeric(e.RunningBalance),
			decimalToNumeric(e.PreviousBalance),
			e.Reference,
			e.PartyID,
			e.CostCenter,
			e.Description,
			e.CreatedBy,
			timeToPgTimestamptz(e.TransactionDate),
			string(e.Status),
			timeToPgTimestamptz(e.CreatedAt),
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// ListByTransactionID retrieves all entries of one posting batch.
func (r *RegistryRepository) ListByTransactionID(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectEntryColumns+` FROM registry_entries WHERE transaction_id = $1 ORDER BY created_at, id`,
		transactionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByParty retrieves entries concerning a party, newest first.
func (r *RegistryRepository) ListByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectEntryColumns+` FROM registry_entries WHERE party_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		partyID, int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByReference retrieves entries by reference (stock codes, reversal
// markers), newest first.
func (r *RegistryRepository) ListByReference(ctx context.Context, reference string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectEntryColumns+` FROM registry_entries WHERE reference = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		reference, int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SumsByTransactionID aggregates debit/credit per book within one batch.
func (r *RegistryRepository) SumsByTransactionID(ctx context.Context, transactionID string) ([]domain.TypeSum, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT entry_type, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		 FROM registry_entries WHERE transaction_id = $1
		 GROUP BY entry_type ORDER BY entry_type`,
		transactionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTypeSums(rows)
}

// SumsByType aggregates debit/credit per book across the whole registry.
func (r *RegistryRepository) SumsByType(ctx context.Context) ([]domain.TypeSum, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT entry_type, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		 FROM registry_entries GROUP BY entry_type ORDER BY entry_type`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTypeSums(rows)
}

func scanEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for rows.Next() {
		var (
			e                                              domain.LedgerEntry
			entryType, status                              string
			value, debit, credit, runningBal, previousBal  pgtype.Numeric
			transactionDate, createdAt                     pgtype.Timestamptz
		)
		if err := rows.Scan(
			&e.ID, &e.TransactionID, &entryType, &value, &debit, &credit,
			&runningBal, &previousBal, &e.Reference, &e.PartyID,
			&e.CostCenter, &e.Description, &e.CreatedBy, &transactionDate,
			&status, &createdAt,
		); err != nil {
			return nil, err
		}
		e.Type = domain.EntryType(entryType)
		e.Status = domain.EntryStatus(status)
		e.Value = numericToDecimal(value)
		e.Debit = numericToDecimal(debit)
		e.Credit = numericToDecimal(credit)
		e.RunningBalance = numericToDecimal(runningBal)
		e.PreviousBalance = numericToDecimal(previousBal)
		e.TransactionDate = transactionDate.Time
		e.CreatedAt = createdAt.Time
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func scanTypeSums(rows pgx.Rows) ([]domain.TypeSum, error) {
	var sums []domain.TypeSum
	for rows.Next() {
		var (
			entryType     string
			debit, credit pgtype.Numeric
		)
		if err := rows.Scan(&entryType, &debit, &credit); err != nil {
			return nil, err
		}
		sums = append(sums, domain.TypeSum{
			Type:   domain.EntryType(entryType),
			Debit:  numericToDecimal(debit),
			Credit: numericToDecimal(credit),
		})
	}
	return sums, rows.Err()
}
