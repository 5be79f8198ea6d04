package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/ledgercore/internal/domain"
)

// ErrCacheMiss is returned by BalanceCache when no snapshot is cached.
var ErrCacheMiss = errors.New("cache miss")

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, uow UnitOfWork, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTx(ctx context.Context, uow UnitOfWork, id string) (*domain.Account, error)
	// UpdateBalance persists m only if the stored version still equals m.ExpectedVersion,
	// incrementing it. A stale version yields domain.ErrConcurrencyConflict.
	UpdateBalance(ctx context.Context, uow UnitOfWork, m domain.Mutation) error
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, uow UnitOfWork, tx *domain.Transaction) error
	GetByReferenceID(ctx context.Context, uow UnitOfWork, referenceID string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, uow UnitOfWork, id string, status domain.TransactionStatus, updatedAt time.Time) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, uow UnitOfWork, entry *domain.LedgerEntry) error
	// ListHistory returns entries of an account joined with their transaction, newest first.
	ListHistory(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryItem, error)
}

// LedgerRepository defines ledger-wide consistency queries.
type LedgerRepository interface {
	// BalanceDrifts returns accounts whose balance differs from the sum of their entries
	// or is negative.
	BalanceDrifts(ctx context.Context) ([]domain.BalanceDrift, error)
	// UnbalancedTransfers returns ids of posted transfers whose entries do not sum to zero.
	UnbalancedTransfers(ctx context.Context) ([]string, error)
}

// UnitOfWork is an atomic, serializable group of reads and writes.
type UnitOfWork interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	// AfterCommit registers fn to run once the unit of work has durably committed.
	// Hooks are discarded on rollback.
	AfterCommit(fn func(ctx context.Context))
}

// TxManager opens units of work.
type TxManager interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation while it fails with a transient error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// EventGateway delivers domain events to downstream consumers without blocking the caller.
type EventGateway interface {
	// PublishAfterCommit enqueues event once uow commits, or immediately when uow is nil.
	PublishAfterCommit(ctx context.Context, uow UnitOfWork, event domain.Event)
	// Publish enqueues event immediately.
	Publish(ctx context.Context, event domain.Event)
}

// BalanceCache holds short-lived account snapshots for balance reads.
type BalanceCache interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	// Set must not replace a cached snapshot whose version is equal or newer.
	Set(ctx context.Context, account *domain.Account) error
	Invalidate(ctx context.Context, accountIDs ...string) error
}
