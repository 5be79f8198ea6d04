package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
	"github.com/iho/ledgercore/internal/usecase/mocks"
)

func TestEntryUseCase_GetTransactionHistoryPaging(t *testing.T) {
	const id = "3d6f1a2b-4c5d-4e6f-8a9b-0c1d2e3f4a5b"

	tests := []struct {
		name       string
		input      usecase.HistoryInput
		wantLimit  int
		wantOffset int
		wantErr    error
	}{
		{name: "default size", input: usecase.HistoryInput{AccountID: id}, wantLimit: 20, wantOffset: 0},
		{name: "second page", input: usecase.HistoryInput{AccountID: id, Page: 2, Size: 10}, wantLimit: 10, wantOffset: 20},
		{name: "clamped size", input: usecase.HistoryInput{AccountID: id, Page: 1, Size: 500}, wantLimit: 100, wantOffset: 100},
		{name: "negative page", input: usecase.HistoryInput{AccountID: id, Page: -1}, wantErr: domain.ErrInvalidInput},
		{name: "negative size", input: usecase.HistoryInput{AccountID: id, Size: -3}, wantErr: domain.ErrInvalidInput},
		{name: "offset overflow", input: usecase.HistoryInput{AccountID: id, Page: math.MaxInt / 50, Size: 100}, wantErr: domain.ErrInvalidInput},
		{name: "malformed account", input: usecase.HistoryInput{AccountID: "nope"}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockEntryRepository()
			var gotLimit, gotOffset int
			repo.ListHistoryFunc = func(_ context.Context, accountID string, limit, offset int) ([]*domain.HistoryItem, error) {
				require.Equal(t, id, accountID)
				gotLimit, gotOffset = limit, offset
				return []*domain.HistoryItem{}, nil
			}

			page, err := usecase.NewEntryUseCase(repo).GetTransactionHistory(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantLimit, gotLimit)
			require.Equal(t, tt.wantOffset, gotOffset)
			require.Equal(t, tt.wantLimit, page.Size)
		})
	}
}

func TestEntryUseCase_GetTransactionHistoryRepositoryError(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	repo.ListHistoryFunc = func(context.Context, string, int, int) ([]*domain.HistoryItem, error) {
		return nil, errors.New("db down")
	}

	_, err := usecase.NewEntryUseCase(repo).GetTransactionHistory(context.Background(), usecase.HistoryInput{
		AccountID: "3d6f1a2b-4c5d-4e6f-8a9b-0c1d2e3f4a5b",
	})
	require.EqualError(t, err, "db down")
}

func TestEntryUseCase_HistoryAfterPostings(t *testing.T) {
	f := newLedgerFixture(t, 3)
	x := f.openAccount(t, "USD", "1000")
	y := f.openAccount(t, "USD", "0")

	_, err := f.posting.PostTransaction(context.Background(), usecase.PostTransactionInput{
		ReferenceID:   "hist-1",
		Type:          "TRANSFER",
		Amount:        "250",
		Currency:      "USD",
		FromAccountID: x,
		ToAccountID:   y,
	})
	require.NoError(t, err)

	page, err := f.historyUC.GetTransactionHistory(context.Background(), usecase.HistoryInput{AccountID: x})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	newest := page.Items[0]
	require.Equal(t, "hist-1", newest.ReferenceID)
	require.Equal(t, domain.TransactionTypeTransfer, newest.Type)
	require.Equal(t, domain.TransactionStatusPosted, newest.Status)
	require.Equal(t, domain.EntryDirectionDebit, newest.Entry.Direction)
	require.True(t, newest.Entry.Amount.Equal(decimal.NewFromInt(-250)))
	require.Equal(t, "750.0000", newest.Entry.BalanceAfter.StringFixed(domain.AmountScale))
	require.False(t, newest.Entry.CreatedAt.After(time.Now()))

	require.Equal(t, domain.TransactionTypeDeposit, page.Items[1].Type)

	_, err = f.historyUC.GetTransactionHistory(context.Background(), usecase.HistoryInput{
		AccountID: x,
		Page:      math.MaxInt / 50,
		Size:      100,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	empty, err := f.historyUC.GetTransactionHistory(context.Background(), usecase.HistoryInput{
		AccountID: "0b7a4c1e-3f5d-4e2a-8c9b-1d2e3f4a5b6c",
	})
	require.NoError(t, err)
	require.Empty(t, empty.Items)
}
