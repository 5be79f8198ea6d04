package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection is the side of a ledger entry.
type EntryDirection string

const (
	EntryDirectionDebit  EntryDirection = "DEBIT"
	EntryDirectionCredit EntryDirection = "CREDIT"
)

// LedgerEntry is an immutable balance change of one account within a transaction.
// Amount is signed: negative for debits, positive for credits.
type LedgerEntry struct {
	ID            string
	TransactionID string
	AccountID     string
	Amount        decimal.Decimal
	Direction     EntryDirection
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time
}

// NewDebitEntry records amount leaving the account.
func NewDebitEntry(id, transactionID string, m Mutation, amount decimal.Decimal) *LedgerEntry {
	return &LedgerEntry{
		ID:            id,
		TransactionID: transactionID,
		AccountID:     m.AccountID,
		Amount:        amount.Neg(),
		Direction:     EntryDirectionDebit,
		BalanceAfter:  m.NewBalance,
		CreatedAt:     m.UpdatedAt,
	}
}

// NewCreditEntry records amount arriving in the account.
func NewCreditEntry(id, transactionID string, m Mutation, amount decimal.Decimal) *LedgerEntry {
	return &LedgerEntry{
		ID:            id,
		TransactionID: transactionID,
		AccountID:     m.AccountID,
		Amount:        amount,
		Direction:     EntryDirectionCredit,
		BalanceAfter:  m.NewBalance,
		CreatedAt:     m.UpdatedAt,
	}
}

// HistoryItem is a ledger entry joined with its owning transaction.
type HistoryItem struct {
	Entry       LedgerEntry
	Type        TransactionType
	Status      TransactionStatus
	ReferenceID string
}
