package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgercore/internal/domain"
)

// ReconciliationUseCase checks ledger-wide invariants.
type ReconciliationUseCase struct {
	ledgerRepo LedgerRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(ledgerRepo LedgerRepository, logger zerolog.Logger) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledgerRepo: ledgerRepo,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CheckConsistency verifies that every balance equals the sum of its entries, that no
// balance is negative, and that every posted transfer nets to zero.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	drifts, err := uc.ledgerRepo.BalanceDrifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("check balances: %w", err)
	}

	unbalanced, err := uc.ledgerRepo.UnbalancedTransfers(ctx)
	if err != nil {
		return nil, fmt.Errorf("check transfers: %w", err)
	}

	report := &domain.ConsistencyReport{
		Consistent:          len(drifts) == 0 && len(unbalanced) == 0,
		Drifts:              drifts,
		UnbalancedTransfers: unbalanced,
		CheckedAt:           uc.now(),
	}
	if report.Drifts == nil {
		report.Drifts = []domain.BalanceDrift{}
	}
	if report.UnbalancedTransfers == nil {
		report.UnbalancedTransfers = []string{}
	}

	if !report.Consistent {
		uc.logger.Error().
			Int("drifts", len(drifts)).
			Int("unbalanced_transfers", len(unbalanced)).
			Msg("ledger inconsistency detected")
	}

	return report, nil
}
