package usecase_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgercore/internal/adapter/repository/postgres"
	rediscache "github.com/iho/ledgercore/internal/adapter/repository/redis"
	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// racingAccountRepo runs afterRead once, between the storage read of GetByID and
// the caller's next step.
type racingAccountRepo struct {
	usecase.AccountRepository
	afterRead func()
	fired     bool
}

func (r *racingAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	acc, err := r.AccountRepository.GetByID(ctx, id)
	if !r.fired && r.afterRead != nil {
		r.fired = true
		r.afterRead()
	}
	return acc, err
}

func TestGetBalanceDoesNotCacheSnapshotOlderThanCommittedPosting(t *testing.T) {
	f := newLedgerFixture(t, 0)
	x := f.openAccount(t, "USD", "1000")

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := rediscache.NewBalanceCache(client, time.Minute)

	posting := usecase.NewPostingUseCase(usecase.PostingConfig{
		TxManager:       f.store,
		AccountRepo:     f.accounts,
		TransactionRepo: f.transactions,
		EntryRepo:       f.entries,
		Events:          f.events,
		Cache:           cache,
		Retrier:         postgres.NewRetrier(postgres.RetrierConfig{MaxRetries: 0}, zerolog.Nop()),
		IDGen:           postgres.NewUUIDGenerator(),
		EventIDGen:      postgres.NewULIDGenerator(),
		Metrics:         f.metrics,
		Logger:          zerolog.Nop(),
	})

	repo := &racingAccountRepo{
		AccountRepository: f.accounts,
		afterRead: func() {
			_, err := posting.PostTransaction(context.Background(), usecase.PostTransactionInput{
				ReferenceID: "race-deposit",
				Type:        "DEPOSIT",
				Amount:      "500",
				Currency:    "USD",
				ToAccountID: x,
			})
			require.NoError(t, err)
		},
	}
	accounts := usecase.NewAccountUseCase(usecase.AccountConfig{
		TxManager:   f.store,
		AccountRepo: repo,
		Events:      f.events,
		Cache:       cache,
		IDGen:       postgres.NewUUIDGenerator(),
		Metrics:     f.metrics,
		Logger:      zerolog.Nop(),
	})

	first, err := accounts.GetBalance(context.Background(), x)
	require.NoError(t, err)
	require.Equal(t, "1000.0000", first.Balance.StringFixed(domain.AmountScale))

	second, err := accounts.GetBalance(context.Background(), x)
	require.NoError(t, err)
	require.Equal(t, "1500.0000", second.Balance.StringFixed(domain.AmountScale))
	require.Equal(t, f.balance(t, x), second.Balance.StringFixed(domain.AmountScale))
}
