package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/karat/bullionledger/internal/domain"
	"github.com/karat/bullionledger/internal/usecase"
	"github.com/shopspring/decimal"
)

// MockRegistryRepository is a mock implementation of RegistryRepository.
type MockRegistryRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateBatchFunc         func(ctx context.Context, tx usecase.Transaction, entries []*domain.LedgerEntry) error
	ListByTransactionIDFunc func(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error)
	ListByPartyFunc         func(ctx context.Context, partyID string, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByReferenceFunc     func(ctx context.Context, reference string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumsByTransactionIDFunc func(ctx context.Context, transactionID string) ([]domain.TypeSum, error)
	SumsByTypeFunc          func(ctx context.Context) ([]domain.TypeSum, error)
}

func NewMockRegistryRepository() *MockRegistryRepository {
	return &MockRegistryRepository{}
}

func (m *MockRegistryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.LedgerEntry) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, entries)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *MockRegistryRepository) ListByTransactionID(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	if m.ListByTransactionIDFunc != nil {
		return m.ListByTransactionIDFunc(ctx, transactionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.TransactionID == transactionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockRegistryRepository) ListByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByPartyFunc != nil {
		return m.ListByPartyFunc(ctx, partyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.PartyID == partyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockRegistryRepository) ListByReference(ctx context.Context, reference string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByReferenceFunc != nil {
		return m.ListByReferenceFunc(ctx, reference, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.Reference == reference {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockRegistryRepository) SumsByTransactionID(ctx context.Context, transactionID string) ([]domain.TypeSum, error) {
	if m.SumsByTransactionIDFunc != nil {
		return m.SumsByTransactionIDFunc(ctx, transactionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	byType := make(map[domain.EntryType]*domain.TypeSum)
	var order []domain.EntryType
	for _, e := range m.entries {
		if e.TransactionID != transactionID {
			continue
		}
		s, ok := byType[e.Type]
		if !ok {
			s = &domain.TypeSum{Type: e.Type}
			byType[e.Type] = s
			order = append(order, e.Type)
		}
		s.Debit = s.Debit.Add(e.Debit)
		s.Credit = s.Credit.Add(e.Credit)
	}
	out := make([]domain.TypeSum, 0, len(order))
	for _, t := range order {
		out = append(out, *byType[t])
	}
	return out, nil
}

func (m *MockRegistryRepository) SumsByType(ctx context.Context) ([]domain.TypeSum, error) {
	if m.SumsByTypeFunc != nil {
		return m.SumsByTypeFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	byType := make(map[domain.EntryType]*domain.TypeSum)
	var order []domain.EntryType
	for _, e := range m.entries {
		s, ok := byType[e.Type]
		if !ok {
			s = &domain.TypeSum{Type: e.Type}
			byType[e.Type] = s
			order = append(order, e.Type)
		}
		s.Debit = s.Debit.Add(e.Debit)
		s.Credit = s.Credit.Add(e.Credit)
	}
	out := make([]domain.TypeSum, 0, len(order))
	for _, t := range order {
		out = append(out, *byType[t])
	}
	return out, nil
}

// Entries returns a snapshot of every stored entry.
func (m *MockRegistryRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockPartyRepository is a mock implementation of PartyRepository.
type MockPartyRepository struct {
	mu      sync.RWMutex
	parties map[string]*domain.Party

	CreateFunc            func(ctx context.Context, party *domain.Party) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Party, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Party, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Party, error)
	SaveBalancesFunc      func(ctx context.Context, tx usecase.Transaction, party *domain.Party) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Party, error)
}

func NewMockPartyRepository() *MockPartyRepository {
	return &MockPartyRepository{
		parties: make(map[string]*domain.Party),
	}
}

func (m *MockPartyRepository) Create(ctx context.Context, party *domain.Party) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, party)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parties[party.ID] = party
	return nil
}

func (m *MockPartyRepository) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.parties[id]; ok {
		return p, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockPartyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Party, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPartyRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Party, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var parties []*domain.Party
	for _, id := range ids {
		if p, ok := m.parties[id]; ok {
			parties = append(parties, p)
		}
	}
	return parties, nil
}

func (m *MockPartyRepository) SaveBalances(ctx context.Context, tx usecase.Transaction, party *domain.Party) error {
	if m.SaveBalancesFunc != nil {
		return m.SaveBalancesFunc(ctx, tx, party)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parties[party.ID] = party
	return nil
}

func (m *MockPartyRepository) List(ctx context.Context, limit, offset int) ([]*domain.Party, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var parties []*domain.Party
	for _, p := range m.parties {
		parties = append(parties, p)
	}
	return parties, nil
}

// MockStockRepository is a mock implementation of StockRepository.
type MockStockRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.StockItem

	CreateFunc         func(ctx context.Context, item *domain.StockItem) error
	GetByCodeFunc      func(ctx context.Context, code string) (*domain.StockItem, error)
	AdjustCountersFunc func(ctx context.Context, tx usecase.Transaction, code string, pieces int64, weight decimal.Decimal, updatedAt time.Time) error
	ListFunc           func(ctx context.Context, limit, offset int) ([]*domain.StockItem, error)
}

func NewMockStockRepository() *MockStockRepository {
	return &MockStockRepository{
		items: make(map[string]*domain.StockItem),
	}
}

func (m *MockStockRepository) Create(ctx context.Context, item *domain.StockItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.Code] = item
	return nil
}

func (m *MockStockRepository) GetByCode(ctx context.Context, code string) (*domain.StockItem, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if item, ok := m.items[code]; ok {
		return item, nil
	}
	return nil, domain.ErrStockNotFound
}

func (m *MockStockRepository) AdjustCounters(ctx context.Context, tx usecase.Transaction, code string, pieces int64, weight decimal.Decimal, updatedAt time.Time) error {
	if m.AdjustCountersFunc != nil {
		return m.AdjustCountersFunc(ctx, tx, code, pieces, weight, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[code]; ok {
		item.PiecesInHand += pieces
		item.WeightInHand = item.WeightInHand.Add(weight)
		item.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockStockRepository) List(ctx context.Context, limit, offset int) ([]*domain.StockItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var items []*domain.StockItem
	for _, item := range m.items {
		items = append(items, item)
	}
	return items, nil
}

// MockCashAccountRepository is a mock implementation of CashAccountRepository.
type MockCashAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.CashAccount

	CreateFunc               func(ctx context.Context, account *domain.CashAccount) error
	GetByIDFunc              func(ctx context.Context, id string) (*domain.CashAccount, error)
	AdjustOpeningBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockCashAccountRepository() *MockCashAccountRepository {
	return &MockCashAccountRepository{
		accounts: make(map[string]*domain.CashAccount),
	}
}

func (m *MockCashAccountRepository) Create(ctx context.Context, account *domain.CashAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockCashAccountRepository) GetByID(ctx context.Context, id string) (*domain.CashAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockCashAccountRepository) AdjustOpeningBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.AdjustOpeningBalanceFunc != nil {
		return m.AdjustOpeningBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.OpeningBalance = acc.OpeningBalance.Add(delta)
		acc.UpdatedAt = updatedAt
	}
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.MetalTransaction

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, txn *domain.MetalTransaction) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.MetalTransaction, error)
	UpdateFunc  func(ctx context.Context, tx usecase.Transaction, txn *domain.MetalTransaction) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.MetalTransaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.MetalTransaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.MetalTransaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.MetalTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.MetalTransaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.MetalTransaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.MetalTransaction
	for _, txn := range m.transactions {
		out = append(out, txn)
	}
	return out, nil
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository.
type MockPurchaseRepository struct {
	mu        sync.RWMutex
	purchases map[string]*domain.MetalPurchase

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, purchase *domain.MetalPurchase) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.MetalPurchase, error)
	UpdateFunc  func(ctx context.Context, tx usecase.Transaction, purchase *domain.MetalPurchase) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.MetalPurchase, error)
}

func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{
		purchases: make(map[string]*domain.MetalPurchase),
	}
}

func (m *MockPurchaseRepository) Create(ctx context.Context, tx usecase.Transaction, purchase *domain.MetalPurchase) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, purchase)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases[purchase.ID] = purchase
	return nil
}

func (m *MockPurchaseRepository) GetByID(ctx context.Context, id string) (*domain.MetalPurchase, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.purchases[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPurchaseNotFound
}

func (m *MockPurchaseRepository) Update(ctx context.Context, tx usecase.Transaction, purchase *domain.MetalPurchase) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, purchase)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases[purchase.ID] = purchase
	return nil
}

func (m *MockPurchaseRepository) List(ctx context.Context, limit, offset int) ([]*domain.MetalPurchase, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.MetalPurchase
	for _, p := range m.purchases {
		out = append(out, p)
	}
	return out, nil
}

// MockVoucherRepository is a mock implementation of VoucherRepository.
type MockVoucherRepository struct {
	mu       sync.RWMutex
	vouchers map[string]*domain.Voucher

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Voucher, error)
	UpdateFunc  func(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Voucher, error)
}

func NewMockVoucherRepository() *MockVoucherRepository {
	return &MockVoucherRepository{
		vouchers: make(map[string]*domain.Voucher),
	}
}

func (m *MockVoucherRepository) Create(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, voucher)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[voucher.ID] = voucher
	return nil
}

func (m *MockVoucherRepository) GetByID(ctx context.Context, id string) (*domain.Voucher, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vouchers[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVoucherNotFound
}

func (m *MockVoucherRepository) Update(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, voucher)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[voucher.ID] = voucher
	return nil
}

func (m *MockVoucherRepository) List(ctx context.Context, limit, offset int) ([]*domain.Voucher, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Voucher
	for _, v := range m.vouchers {
		out = append(out, v)
	}
	return out, nil
}

// MockFixingRepository is a mock implementation of FixingRepository.
type MockFixingRepository struct {
	mu      sync.RWMutex
	fixings map[string]*domain.Fixing

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, fixing *domain.Fixing) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Fixing, error)
	UpdateFunc  func(ctx context.Context, tx usecase.Transaction, fixing *domain.Fixing) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Fixing, error)
}

func NewMockFixingRepository() *MockFixingRepository {
	return &MockFixingRepository{
		fixings: make(map[string]*domain.Fixing),
	}
}

func (m *MockFixingRepository) Create(ctx context.Context, tx usecase.Transaction, fixing *domain.Fixing) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, fixing)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixings[fixing.ID] = fixing
	return nil
}

func (m *MockFixingRepository) GetByID(ctx context.Context, id string) (*domain.Fixing, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.fixings[id]; ok {
		return f, nil
	}
	return nil, domain.ErrFixingNotFound
}

func (m *MockFixingRepository) Update(ctx context.Context, tx usecase.Transaction, fixing *domain.Fixing) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, fixing)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixings[fixing.ID] = fixing
	return nil
}

func (m *MockFixingRepository) List(ctx context.Context, limit, offset int) ([]*domain.Fixing, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Fixing
	for _, f := range m.fixings {
		out = append(out, f)
	}
	return out, nil
}

// MockFundTransferRepository is a mock implementation of FundTransferRepository.
type MockFundTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.FundTransfer

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, transfer *domain.FundTransfer) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.FundTransfer, error)
	ListByPartyFunc func(ctx context.Context, partyID string, limit, offset int) ([]*domain.FundTransfer, error)
}

func NewMockFundTransferRepository() *MockFundTransferRepository {
	return &MockFundTransferRepository{
		transfers: make(map[string]*domain.FundTransfer),
	}
}

func (m *MockFundTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.FundTransfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[transfer.ID] = transfer
	return nil
}

func (m *MockFundTransferRepository) GetByID(ctx context.Context, id string) (*domain.FundTransfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockFundTransferRepository) ListByParty(ctx context.Context, partyID string, limit, offset int) ([]*domain.FundTransfer, error) {
	if m.ListByPartyFunc != nil {
		return m.ListByPartyFunc(ctx, partyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.FundTransfer
	for _, t := range m.transfers {
		if t.SenderID == partyID || t.ReceiverID == partyID {
			out = append(out, t)
		}
	}
	return out, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if e.PublishedAt == nil {
			out = append(out, e)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			at := publishedAt
			e.PublishedAt = &at
		}
	}
	return nil
}

// Events returns a snapshot of every stored event.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc         func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc       func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListByResourceFunc func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	if m.ListByResourceFunc != nil {
		return m.ListByResourceFunc(ctx, resourceType, resourceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			out = append(out, l)
		}
	}
	return out, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + string(rune('0'+m.counter))
}

// MockRetrier is a Retrier that invokes the operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
