package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgercore/internal/usecase"
	"github.com/iho/ledgercore/internal/usecase/mocks"
)

func TestReconciliationUseCase_TransferCheckError(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()
	repo.UnbalancedTransfersFunc = func(context.Context) ([]string, error) {
		return nil, errors.New("db down")
	}

	_, err := usecase.NewReconciliationUseCase(repo, zerolog.Nop()).CheckConsistency(context.Background())
	require.EqualError(t, err, "check transfers: db down")
}

func TestReconciliationUseCase_OverMemoryLedger(t *testing.T) {
	f := newLedgerFixture(t, 0)
	x := f.openAccount(t, "USD", "40")
	y := f.openAccount(t, "USD", "0")

	_, err := f.posting.PostTransaction(context.Background(), usecase.PostTransactionInput{
		ReferenceID:   "recon-1",
		Type:          "TRANSFER",
		Amount:        "15.5",
		Currency:      "USD",
		FromAccountID: x,
		ToAccountID:   y,
	})
	require.NoError(t, err)

	require.Equal(t, "24.5000", f.balance(t, x))
	f.assertConsistent(t)
}
