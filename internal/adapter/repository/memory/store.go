// Package memory keeps the ledger in process memory. Units of work buffer their writes
// and apply them atomically at commit after checking account versions and
// reference-id uniqueness, which gives the same observable isolation as a serializable
// database transaction for the posting workload.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

var errUnitOfWorkClosed = errors.New("unit of work already closed")

type storedEntry struct {
	entry domain.LedgerEntry
	seq   int64
}

// Store is the shared in-memory state.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	references   map[string]string
	entries      []storedEntry
	seq          int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
		references:   make(map[string]string),
	}
}

// Begin opens a unit of work.
func (s *Store) Begin(_ context.Context) (usecase.UnitOfWork, error) {
	return &unitOfWork{
		store:        s,
		accounts:     make(map[string]*pendingAccount),
		transactions: make(map[string]domain.Transaction),
	}, nil
}

func (s *Store) account(id string) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	return acc, ok
}

func (s *Store) transactionByReference(referenceID string) (domain.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.references[referenceID]
	if !ok {
		return domain.Transaction{}, false
	}
	return s.transactions[id], true
}

type pendingAccount struct {
	current     domain.Account
	baseVersion int64
	created     bool
	dirty       bool
}

type unitOfWork struct {
	store *Store

	mu           sync.Mutex
	accounts     map[string]*pendingAccount
	transactions map[string]domain.Transaction
	entries      []domain.LedgerEntry
	hooks        []func(ctx context.Context)
	closed       bool
}

func asUnitOfWork(uow usecase.UnitOfWork) (*unitOfWork, error) {
	u, ok := uow.(*unitOfWork)
	if !ok || u == nil {
		return nil, fmt.Errorf("memory: unsupported unit of work %T", uow)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return nil, errUnitOfWorkClosed
	}
	return u, nil
}

// view returns the account as seen by this unit of work.
func (u *unitOfWork) view(id string) (*pendingAccount, bool) {
	if p, ok := u.accounts[id]; ok {
		return p, true
	}
	acc, ok := u.store.account(id)
	if !ok {
		return nil, false
	}
	p := &pendingAccount{current: acc, baseVersion: acc.Version}
	u.accounts[id] = p
	return p, true
}

func (u *unitOfWork) AfterCommit(fn func(ctx context.Context)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return
	}
	u.hooks = append(u.hooks, fn)
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed = true
	u.hooks = nil
	u.accounts = nil
	u.transactions = nil
	u.entries = nil
	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		_ = u.Rollback(ctx)
		return err
	}

	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return errUnitOfWorkClosed
	}
	u.closed = true
	hooks := u.hooks
	u.hooks = nil

	err := u.apply()
	u.mu.Unlock()
	if err != nil {
		return err
	}

	runHooks(ctx, hooks)
	return nil
}

// apply validates the buffered writes against the store and installs them.
func (u *unitOfWork) apply() error {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range u.accounts {
		stored, exists := s.accounts[id]
		switch {
		case p.created && exists:
			return fmt.Errorf("memory: account %s already exists", id)
		case !p.created && !exists:
			return domain.ErrAccountNotFound
		case !p.created && p.dirty && stored.Version != p.baseVersion:
			return domain.ErrConcurrencyConflict
		}
		if p.current.Balance.LessThan(decimal.Zero) {
			return domain.ErrInsufficientFunds
		}
	}
	for _, tx := range u.transactions {
		if id, ok := s.references[tx.ReferenceID]; ok && id != tx.ID {
			return domain.ErrDuplicateTransaction
		}
	}

	for id, p := range u.accounts {
		if p.created || p.dirty {
			s.accounts[id] = p.current
		}
	}
	for id, tx := range u.transactions {
		s.transactions[id] = tx
		s.references[tx.ReferenceID] = id
	}
	for _, e := range u.entries {
		s.seq++
		s.entries = append(s.entries, storedEntry{entry: e, seq: s.seq})
	}

	return nil
}

func runHooks(ctx context.Context, hooks []func(ctx context.Context)) {
	hookCtx := context.WithoutCancel(ctx)
	for _, fn := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Interface("panic", r).Msg("after-commit hook panicked")
				}
			}()
			fn(hookCtx)
		}()
	}
}
