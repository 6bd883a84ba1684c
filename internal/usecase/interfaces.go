package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

// RegistryRepository defines data access for ledger entries. The registry is
// append-only: there is no update or delete.
type RegistryRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, entries []*domain.LedgerEntry) error
	ListByTransactionID(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error)
	ListByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByReference(ctx context.Context, reference string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumsByTransactionID(ctx context.Context, transactionID string) ([]domain.TypeSum, error)
	SumsByType(ctx context.Context) ([]domain.TypeSum, error)
}

// PartyRepository defines data access for trading parties and their balance
// snapshots.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, id string) (*domain.Party, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Party, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Party, error)
	SaveBalances(ctx context.Context, tx Transaction, party *domain.Party) error
	List(ctx context.Context, limit, offset int) ([]*domain.Party, error)
}

// StockRepository defines data access for the stock catalog and its on-hand
// counters.
type StockRepository interface {
	Create(ctx context.Context, item *domain.StockItem) error
	GetByCode(ctx context.Context, code string) (*domain.StockItem, error)
	AdjustCounters(ctx context.Context, tx Transaction, code string, pieces int64, weight decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.StockItem, error)
}

// CashAccountRepository defines data access for cash-type accounts.
type CashAccountRepository interface {
	Create(ctx context.Context, account *domain.CashAccount) error
	GetByID(ctx context.Context, id string) (*domain.CashAccount, error)
	AdjustOpeningBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for metal transaction aggregates.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.MetalTransaction) error
	GetByID(ctx context.Context, id string) (*domain.MetalTransaction, error)
	Update(ctx context.Context, tx Transaction, txn *domain.MetalTransaction) error
	List(ctx context.Context, limit, offset int) ([]*domain.MetalTransaction, error)
}

// PurchaseRepository defines data access for metal purchase aggregates.
type PurchaseRepository interface {
	Create(ctx context.Context, tx Transaction, purchase *domain.MetalPurchase) error
	GetByID(ctx context.Context, id string) (*domain.MetalPurchase, error)
	Update(ctx context.Context, tx Transaction, purchase *domain.MetalPurchase) error
	List(ctx context.Context, limit, offset int) ([]*domain.MetalPurchase, error)
}

// VoucherRepository defines data access for entry vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, tx Transaction, voucher *domain.Voucher) error
	GetByID(ctx context.Context, id string) (*domain.Voucher, error)
	Update(ctx context.Context, tx Transaction, voucher *domain.Voucher) error
	List(ctx context.Context, limit, offset int) ([]*domain.Voucher, error)
}

// FixingRepository defines data access for fixing aggregates.
type FixingRepository interface {
	Create(ctx context.Context, tx Transaction, fixing *domain.Fixing) error
	GetByID(ctx context.Context, id string) (*domain.Fixing, error)
	Update(ctx context.Context, tx Transaction, fixing *domain.Fixing) error
	List(ctx context.Context, limit, offset int) ([]*domain.Fixing, error)
}

// FundTransferRepository defines data access for fund transfer records.
type FundTransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.FundTransfer) error
	GetByID(ctx context.Context, id string) (*domain.FundTransfer, error)
	ListByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.FundTransfer, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries a unit of work on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Instrumentation receives posting engine counters. Implemented by the
// Prometheus metrics package; a no-op implementation is used in tests.
type Instrumentation interface {
	PostingRecorded(event string, entryCount int)
	ReversalRecorded(event string)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Cache defines caching operations for read paths.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
