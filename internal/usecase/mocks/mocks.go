package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc        func(ctx context.Context, uow usecase.UnitOfWork, account *domain.Account) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTxFunc     func(ctx context.Context, uow usecase.UnitOfWork, id string) (*domain.Account, error)
	UpdateBalanceFunc func(ctx context.Context, uow usecase.UnitOfWork, m domain.Mutation) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Put stores a copy of account.
func (m *MockAccountRepository) Put(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
}

func (m *MockAccountRepository) Create(ctx context.Context, uow usecase.UnitOfWork, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, uow, account)
	}
	m.Put(account)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDTx(ctx context.Context, uow usecase.UnitOfWork, id string) (*domain.Account, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, uow, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, uow usecase.UnitOfWork, mut domain.Mutation) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, uow, mut)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[mut.AccountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if acc.Version != mut.ExpectedVersion {
		return domain.ErrConcurrencyConflict
	}
	acc.Apply(mut)
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc           func(ctx context.Context, uow usecase.UnitOfWork, tx *domain.Transaction) error
	GetByReferenceIDFunc func(ctx context.Context, uow usecase.UnitOfWork, referenceID string) (*domain.Transaction, error)
	UpdateStatusFunc     func(ctx context.Context, uow usecase.UnitOfWork, id string, status domain.TransactionStatus, updatedAt time.Time) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, uow usecase.UnitOfWork, tx *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, uow, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *tx
	m.transactions[tx.ID] = &cp
	return nil
}

func (m *MockTransactionRepository) GetByReferenceID(ctx context.Context, uow usecase.UnitOfWork, referenceID string) (*domain.Transaction, error) {
	if m.GetByReferenceIDFunc != nil {
		return m.GetByReferenceIDFunc(ctx, uow, referenceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tx := range m.transactions {
		if tx.ReferenceID == referenceID {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, uow usecase.UnitOfWork, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, uow, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	tx.Status = status
	tx.UpdatedAt = updatedAt
	return nil
}

// Len returns the number of stored transactions.
func (m *MockTransactionRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc      func(ctx context.Context, uow usecase.UnitOfWork, entry *domain.LedgerEntry) error
	ListHistoryFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryItem, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, uow usecase.UnitOfWork, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, uow, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) ListHistory(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryItem, error) {
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var items []*domain.HistoryItem
	for _, e := range m.entries {
		if e.AccountID == accountID {
			items = append(items, &domain.HistoryItem{Entry: *e})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Entry.CreatedAt.After(items[j].Entry.CreatedAt)
	})
	if offset >= len(items) {
		return nil, nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Entries returns all recorded entries.
func (m *MockEntryRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.LedgerEntry(nil), m.entries...)
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	BalanceDriftsFunc       func(ctx context.Context) ([]domain.BalanceDrift, error)
	UnbalancedTransfersFunc func(ctx context.Context) ([]string, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) BalanceDrifts(ctx context.Context) ([]domain.BalanceDrift, error) {
	if m.BalanceDriftsFunc != nil {
		return m.BalanceDriftsFunc(ctx)
	}
	return nil, nil
}

func (m *MockLedgerRepository) UnbalancedTransfers(ctx context.Context) ([]string, error) {
	if m.UnbalancedTransfersFunc != nil {
		return m.UnbalancedTransfersFunc(ctx)
	}
	return nil, nil
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.UnitOfWork, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.UnitOfWork, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockUnitOfWork{}, nil
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Hooks run after a successful Commit.
type MockUnitOfWork struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	mu        sync.Mutex
	hooks     []func(ctx context.Context)
	Committed bool
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	hooks := m.hooks
	m.hooks = nil
	m.Committed = true
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(ctx)
	}
	return nil
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	m.mu.Lock()
	m.hooks = nil
	m.mu.Unlock()
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

func (m *MockUnitOfWork) AfterCommit(fn func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
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
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// RecordingGateway is an EventGateway that keeps every event it receives. Events passed
// to PublishAfterCommit are recorded only when the unit of work commits.
type RecordingGateway struct {
	mu     sync.Mutex
	events []domain.Event
}

func NewRecordingGateway() *RecordingGateway {
	return &RecordingGateway{}
}

func (g *RecordingGateway) PublishAfterCommit(ctx context.Context, uow usecase.UnitOfWork, event domain.Event) {
	if uow == nil {
		g.Publish(ctx, event)
		return
	}
	uow.AfterCommit(func(ctx context.Context) { g.Publish(ctx, event) })
}

func (g *RecordingGateway) Publish(_ context.Context, event domain.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, event)
}

// Events returns recorded events, optionally filtered by topic.
func (g *RecordingGateway) Events(topic string) []domain.Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []domain.Event
	for _, ev := range g.events {
		if topic == "" || ev.Topic == topic {
			out = append(out, ev)
		}
	}
	return out
}
