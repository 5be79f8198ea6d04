package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceDrift is an account whose stored balance disagrees with its entries.
type BalanceDrift struct {
	AccountID string
	Balance   decimal.Decimal
	EntrySum  decimal.Decimal
}

// Negative reports whether the stored balance is below zero.
func (d BalanceDrift) Negative() bool {
	return d.Balance.IsNegative()
}

// ConsistencyReport summarizes a ledger-wide invariant check.
type ConsistencyReport struct {
	Consistent          bool
	Drifts              []BalanceDrift
	UnbalancedTransfers []string
	CheckedAt           time.Time
}
