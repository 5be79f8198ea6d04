package postgres

import (
	"context"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// BalanceDrifts lists accounts whose balance disagrees with their entries or is negative.
func (r *LedgerRepository) BalanceDrifts(ctx context.Context) ([]domain.BalanceDrift, error) {
	rows, err := r.queries.GetBalanceDrifts(ctx)
	if err != nil {
		return nil, err
	}

	drifts := make([]domain.BalanceDrift, 0, len(rows))
	for _, row := range rows {
		drifts = append(drifts, domain.BalanceDrift{
			AccountID: row.ID,
			Balance:   numericToDecimal(row.Balance),
			EntrySum:  numericToDecimal(row.EntrySum),
		})
	}
	return drifts, nil
}

// UnbalancedTransfers lists posted transfers whose entries do not net to zero.
func (r *LedgerRepository) UnbalancedTransfers(ctx context.Context) ([]string, error) {
	ids, err := r.queries.GetUnbalancedTransfers(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
