package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create buffers a new account in the unit of work.
func (r *AccountRepository) Create(_ context.Context, uow usecase.UnitOfWork, account *domain.Account) error {
	u, err := asUnitOfWork(uow)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.accounts[account.ID] = &pendingAccount{current: *account, created: true}
	return nil
}

// GetByID reads committed state.
func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	acc, ok := r.store.account(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &acc, nil
}

// GetByIDTx reads the account as seen by the unit of work.
func (r *AccountRepository) GetByIDTx(_ context.Context, uow usecase.UnitOfWork, id string) (*domain.Account, error) {
	u, err := asUnitOfWork(uow)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	p, ok := u.view(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	acc := p.current
	return &acc, nil
}

// UpdateBalance checks the expected version against both the unit of work and the
// committed store before buffering the write.
func (r *AccountRepository) UpdateBalance(_ context.Context, uow usecase.UnitOfWork, m domain.Mutation) error {
	u, err := asUnitOfWork(uow)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	p, ok := u.view(m.AccountID)
	if !ok {
		return domain.ErrAccountNotFound
	}
	if p.current.Version != m.ExpectedVersion {
		return domain.ErrConcurrencyConflict
	}
	if !p.created {
		if stored, ok := r.store.account(m.AccountID); !ok || stored.Version != p.baseVersion {
			return domain.ErrConcurrencyConflict
		}
	}
	if m.NewBalance.IsNegative() {
		return domain.ErrInsufficientFunds
	}

	p.current.Apply(m)
	p.dirty = true
	return nil
}

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create buffers a transaction. A reference id already committed is rejected here and
// again at commit.
func (r *TransactionRepository) Create(_ context.Context, uow usecase.UnitOfWork, tx *domain.Transaction) error {
	u, err := asUnitOfWork(uow)
	if err != nil {
		return err
	}
	if _, ok := r.store.transactionByReference(tx.ReferenceID); ok {
		return domain.ErrDuplicateTransaction
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, pending := range u.transactions {
		if pending.ReferenceID == tx.ReferenceID {
			return domain.ErrDuplicateTransaction
		}
	}
	u.transactions[tx.ID] = *tx
	return nil
}

// GetByReferenceID looks in the unit of work first, then in committed state.
func (r *TransactionRepository) GetByReferenceID(_ context.Context, uow usecase.UnitOfWork, referenceID string) (*domain.Transaction, error) {
	u, err := asUnitOfWork(uow)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	for _, pending := range u.transactions {
		if pending.ReferenceID == referenceID {
			u.mu.Unlock()
			return &pending, nil
		}
	}
	u.mu.Unlock()

	tx, ok := r.store.transactionByReference(referenceID)
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return &tx, nil
}

// UpdateStatus changes the status of a transaction created in the same unit of work.
func (r *TransactionRepository) UpdateStatus(_ context.Context, uow usecase.UnitOfWork, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	u, err := asUnitOfWork(uow)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	tx, ok := u.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	tx.Status = status
	tx.UpdatedAt = updatedAt
	u.transactions[id] = tx
	return nil
}

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	store *Store
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

// Create buffers an entry.
func (r *EntryRepository) Create(_ context.Context, uow usecase.UnitOfWork, entry *domain.LedgerEntry) error {
	u, err := asUnitOfWork(uow)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries = append(u.entries, *entry)
	return nil
}

// ListHistory returns committed entries for an account, newest first.
func (r *EntryRepository) ListHistory(_ context.Context, accountID string, limit, offset int) ([]*domain.HistoryItem, error) {
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("%w: invalid history window", domain.ErrInvalidInput)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []storedEntry
	for _, se := range r.store.entries {
		if se.entry.AccountID == accountID {
			matched = append(matched, se)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.entry.CreatedAt.Equal(b.entry.CreatedAt) {
			return a.entry.CreatedAt.After(b.entry.CreatedAt)
		}
		return a.seq > b.seq
	})

	if offset >= len(matched) {
		return []*domain.HistoryItem{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}

	items := make([]*domain.HistoryItem, 0, len(matched))
	for _, se := range matched {
		tx := r.store.transactions[se.entry.TransactionID]
		items = append(items, &domain.HistoryItem{
			Entry:       se.entry,
			Type:        tx.Type,
			Status:      tx.Status,
			ReferenceID: tx.ReferenceID,
		})
	}
	return items, nil
}

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new ledger repository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// BalanceDrifts compares every balance with the sum of its entries.
func (r *LedgerRepository) BalanceDrifts(_ context.Context) ([]domain.BalanceDrift, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sums := make(map[string]decimal.Decimal, len(r.store.accounts))
	for _, se := range r.store.entries {
		sums[se.entry.AccountID] = sums[se.entry.AccountID].Add(se.entry.Amount)
	}

	var drifts []domain.BalanceDrift
	for id, acc := range r.store.accounts {
		sum := sums[id]
		if !acc.Balance.Equal(sum) || acc.Balance.IsNegative() {
			drifts = append(drifts, domain.BalanceDrift{AccountID: id, Balance: acc.Balance, EntrySum: sum})
		}
	}
	sort.Slice(drifts, func(i, j int) bool { return drifts[i].AccountID < drifts[j].AccountID })
	return drifts, nil
}

// UnbalancedTransfers returns posted transfers whose entries do not net to zero.
func (r *LedgerRepository) UnbalancedTransfers(_ context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sums := make(map[string]decimal.Decimal)
	for _, se := range r.store.entries {
		sums[se.entry.TransactionID] = sums[se.entry.TransactionID].Add(se.entry.Amount)
	}

	var ids []string
	for id, tx := range r.store.transactions {
		if tx.Type != domain.TransactionTypeTransfer || tx.Status != domain.TransactionStatusPosted {
			continue
		}
		if !sums[id].IsZero() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
