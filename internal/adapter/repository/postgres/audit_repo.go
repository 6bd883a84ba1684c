package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const insertAuditSQL = `
	INSERT INTO audit_logs (
		id, actor_id, action, resource_type, resource_id, status, error_message, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Create writes an audit log outside any transaction. Used for recording
// failed operations, which must survive the rollback of the work they
// describe.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	_, err := r.pool.Exec(ctx, insertAuditSQL,
		log.ID, log.ActorID, log.Action, log.ResourceType, log.ResourceID,
		log.Status, log.ErrorMessage, timeToPgTimestamptz(log.CreatedAt),
	)
	return err
}

// CreateTx writes an audit log within the same transaction as the operation
// it records.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertAuditSQL,
		log.ID, log.ActorID, log.Action, log.ResourceType, log.ResourceID,
		log.Status, log.ErrorMessage, timeToPgTimestamptz(log.CreatedAt),
	)
	return err
}

// ListByResource lists audit logs for a resource, newest first.
func (r *AuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, actor_id, action, resource_type, resource_id, status, error_message, created_at
		 FROM audit_logs
		 WHERE resource_type = $1 AND resource_id = $2
		 ORDER BY created_at DESC, id`,
		resourceType, resourceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		log, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func scanAuditLog(row pgx.Row) (*domain.AuditLog, error) {
	var (
		log       domain.AuditLog
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&log.ID, &log.ActorID, &log.Action, &log.ResourceType, &log.ResourceID,
		&log.Status, &log.ErrorMessage, &createdAt,
	); err != nil {
		return nil, err
	}
	log.CreatedAt = createdAt.Time
	return &log, nil
}
