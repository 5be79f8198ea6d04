package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/postgres/generated"
	"github.com/iho/ledgercore/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create appends a ledger entry within uow.
func (r *EntryRepository) Create(ctx context.Context, uow usecase.UnitOfWork, entry *domain.LedgerEntry) error {
	queries, err := queriesFor(uow)
	if err != nil {
		return err
	}

	err = queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:            entry.ID,
		TransactionID: entry.TransactionID,
		AccountID:     entry.AccountID,
		Amount:        decimalToNumeric(entry.Amount),
		Direction:     string(entry.Direction),
		BalanceAfter:  decimalToNumeric(entry.BalanceAfter),
		CreatedAt:     timeToPgTimestamptz(entry.CreatedAt),
	})
	return mapError(err)
}

// ListHistory returns the entries of accountID with their transactions, newest first.
func (r *EntryRepository) ListHistory(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryItem, error) {
	if limit <= 0 || limit > math.MaxInt32 || offset < 0 || offset > math.MaxInt32 {
		return nil, fmt.Errorf("%w: invalid history window", domain.ErrInvalidInput)
	}

	rows, err := r.queries.ListAccountHistory(ctx, generated.ListAccountHistoryParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]*domain.HistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &domain.HistoryItem{
			Entry: domain.LedgerEntry{
				ID:            row.ID,
				TransactionID: row.TransactionID,
				AccountID:     row.AccountID,
				Amount:        numericToDecimal(row.Amount),
				Direction:     domain.EntryDirection(row.Direction),
				BalanceAfter:  numericToDecimal(row.BalanceAfter),
				CreatedAt:     row.CreatedAt.Time,
			},
			Type:        domain.TransactionType(row.Type),
			Status:      domain.TransactionStatus(row.Status),
			ReferenceID: row.ReferenceID,
		})
	}

	return items, nil
}
