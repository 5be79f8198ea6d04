package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

func TestHistoryFromUseCase(t *testing.T) {
	at := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	page := &usecase.HistoryPage{
		AccountID: "acc-1",
		Page:      1,
		Size:      10,
		Items: []*domain.HistoryItem{{
			Entry: domain.LedgerEntry{
				TransactionID: "tx-1",
				Amount:        decimal.RequireFromString("-12.5"),
				Direction:     domain.EntryDirectionDebit,
				BalanceAfter:  decimal.RequireFromString("87.5"),
				CreatedAt:     at,
			},
			Type:        domain.TransactionTypeWithdrawal,
			Status:      domain.TransactionStatusPosted,
			ReferenceID: "ref-1",
		}},
	}

	got := HistoryFromUseCase(page)
	if got.Page != 1 || got.Size != 10 || len(got.Transactions) != 1 {
		t.Fatalf("unexpected page: %+v", got)
	}
	item := got.Transactions[0]
	if item.Amount != "12.5000" || item.BalanceAfter != "87.5000" || item.CreatedAt != "2024-05-02T08:00:00Z" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestConsistencyFromDomain(t *testing.T) {
	report := &domain.ConsistencyReport{
		Consistent: false,
		Drifts: []domain.BalanceDrift{
			{AccountID: "acc-1", Balance: decimal.NewFromInt(-5), EntrySum: decimal.NewFromInt(-5)},
		},
		CheckedAt: time.Now(),
	}

	got := ConsistencyFromDomain(report)
	if got.Status != "inconsistent" || got.Consistent {
		t.Fatalf("unexpected status: %+v", got)
	}
	if len(got.Drifts) != 1 || !got.Drifts[0].Negative || got.Drifts[0].Balance != "-5.0000" {
		t.Fatalf("unexpected drifts: %+v", got.Drifts)
	}
	if got.UnbalancedTransfers == nil {
		t.Fatal("expected non-nil unbalanced transfers")
	}
}
