package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/ledgercore/internal/adapter/repository/memory"
	"github.com/iho/ledgercore/internal/adapter/repository/postgres"
	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
	"github.com/iho/ledgercore/internal/usecase"
	"github.com/iho/ledgercore/internal/usecase/mocks"
)

const testUserID = "5f0c6f38-5a1e-4b8e-9a5b-2c1d7f9e8a11"

// ledgerFixture wires the use cases to an in-memory store.
type ledgerFixture struct {
	store        *memory.Store
	accounts     *memory.AccountRepository
	transactions *memory.TransactionRepository
	entries      *memory.EntryRepository
	ledger       *memory.LedgerRepository
	events       *mocks.RecordingGateway
	metrics      *metrics.Metrics

	posting        *usecase.PostingUseCase
	accountUC      *usecase.AccountUseCase
	historyUC      *usecase.EntryUseCase
	reconciliation *usecase.ReconciliationUseCase
}

func newLedgerFixture(t *testing.T, maxRetries int) *ledgerFixture {
	t.Helper()

	store := memory.NewStore()
	f := &ledgerFixture{
		store:        store,
		accounts:     memory.NewAccountRepository(store),
		transactions: memory.NewTransactionRepository(store),
		entries:      memory.NewEntryRepository(store),
		ledger:       memory.NewLedgerRepository(store),
		events:       mocks.NewRecordingGateway(),
		metrics:      metrics.NewWithRegisterer(prometheus.NewRegistry()),
	}

	retrier := postgres.NewRetrier(postgres.RetrierConfig{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsedTime:  10 * time.Second,
	}, zerolog.Nop())

	f.posting = usecase.NewPostingUseCase(usecase.PostingConfig{
		TxManager:       store,
		AccountRepo:     f.accounts,
		TransactionRepo: f.transactions,
		EntryRepo:       f.entries,
		Events:          f.events,
		Retrier:         retrier,
		IDGen:           postgres.NewUUIDGenerator(),
		EventIDGen:      postgres.NewULIDGenerator(),
		Metrics:         f.metrics,
		Logger:          zerolog.Nop(),
	})
	f.accountUC = usecase.NewAccountUseCase(usecase.AccountConfig{
		TxManager:   store,
		AccountRepo: f.accounts,
		Events:      f.events,
		IDGen:       postgres.NewUUIDGenerator(),
		Metrics:     f.metrics,
		Logger:      zerolog.Nop(),
	})
	f.historyUC = usecase.NewEntryUseCase(f.entries)
	f.reconciliation = usecase.NewReconciliationUseCase(f.ledger, zerolog.Nop())

	return f
}

// openAccount creates an account and deposits balance into it.
func (f *ledgerFixture) openAccount(t *testing.T, currency, balance string) string {
	t.Helper()
	ctx := context.Background()

	acc, err := f.accountUC.CreateAccount(ctx, usecase.CreateAccountInput{UserID: testUserID, Currency: currency})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if balance != "0" {
		_, err := f.posting.PostTransaction(ctx, usecase.PostTransactionInput{
			ReferenceID: "seed-" + acc.ID,
			Type:        "DEPOSIT",
			Amount:      balance,
			Currency:    currency,
			ToAccountID: acc.ID,
		})
		if err != nil {
			t.Fatalf("seed deposit: %v", err)
		}
	}
	return acc.ID
}

func (f *ledgerFixture) balance(t *testing.T, id string) string {
	t.Helper()
	acc, err := f.accounts.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	return acc.Balance.StringFixed(domain.AmountScale)
}

func (f *ledgerFixture) assertConsistent(t *testing.T) {
	t.Helper()
	report, err := f.reconciliation.CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("consistency check: %v", err)
	}
	if !report.Consistent {
		t.Fatalf("ledger inconsistent: drifts=%+v unbalanced=%v", report.Drifts, report.UnbalancedTransfers)
	}
}
