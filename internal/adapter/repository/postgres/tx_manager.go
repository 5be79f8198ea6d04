package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/iho/ledgercore/internal/usecase"
)

type pgxPool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxManager implements usecase.TxManager with serializable transactions.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a new serializable transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.UnitOfWork, error) {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, mapError(err)
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx pgx.Tx

	mu    sync.Mutex
	hooks []func(ctx context.Context)
}

// AfterCommit registers fn to run once Commit succeeds.
func (t *Tx) AfterCommit(fn func(ctx context.Context)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, fn)
}

// Commit commits the transaction and then runs the registered hooks.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		t.clearHooks()
		return mapError(err)
	}

	t.mu.Lock()
	hooks := t.hooks
	t.hooks = nil
	t.mu.Unlock()

	hookCtx := context.WithoutCancel(ctx)
	for _, fn := range hooks {
		runHook(hookCtx, fn)
	}
	return nil
}

// Rollback rolls back the transaction. Rolling back a finished transaction is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	t.clearHooks()
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}

func (t *Tx) clearHooks() {
	t.mu.Lock()
	t.hooks = nil
	t.mu.Unlock()
}

func runHook(ctx context.Context, fn func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("after-commit hook panicked")
		}
	}()
	fn(ctx)
}

// pgxTxFrom extracts the pgx transaction from a unit of work opened by TxManager.
func pgxTxFrom(uow usecase.UnitOfWork) (pgx.Tx, error) {
	tx, ok := uow.(*Tx)
	if !ok || tx == nil {
		return nil, fmt.Errorf("postgres: unsupported unit of work %T", uow)
	}
	return tx.tx, nil
}
