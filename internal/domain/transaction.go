package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement.
type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// ParseTransactionType resolves a case-insensitive token to a TransactionType.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch t := TransactionType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case TransactionTypeTransfer, TransactionTypeDeposit, TransactionTypeWithdrawal:
		return t, nil
	default:
		return "", fmt.Errorf("%w: invalid transaction type", ErrInvalidInput)
	}
}

// RequiresSource reports whether the type debits a source account.
func (t TransactionType) RequiresSource() bool {
	return t == TransactionTypeTransfer || t == TransactionTypeWithdrawal
}

// RequiresDestination reports whether the type credits a destination account.
func (t TransactionType) RequiresDestination() bool {
	return t == TransactionTypeTransfer || t == TransactionTypeDeposit
}

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusPosted  TransactionStatus = "POSTED"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// IsTerminal reports whether the status can no longer change.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusPosted || s == TransactionStatusFailed
}

// Transaction is one accepted posting request.
type Transaction struct {
	ID            string
	ReferenceID   string
	Type          TransactionType
	Status        TransactionStatus
	Amount        decimal.Decimal
	Currency      string
	FromAccountID *string
	ToAccountID   *string
	Metadata      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateAccounts checks the type constraints against the resolved participants.
func (t *Transaction) ValidateAccounts(from, to *Account) error {
	switch t.Type {
	case TransactionTypeTransfer:
		if from == nil || to == nil {
			return fmt.Errorf("%w: transfer requires both source and destination accounts", ErrInvalidInput)
		}
		if from.ID == to.ID {
			return fmt.Errorf("%w: cannot transfer to same account", ErrInvalidInput)
		}
	case TransactionTypeDeposit:
		if to == nil {
			return fmt.Errorf("%w: deposit requires destination account", ErrInvalidInput)
		}
		if from != nil {
			return fmt.Errorf("%w: deposit does not take a source account", ErrInvalidInput)
		}
	case TransactionTypeWithdrawal:
		if from == nil {
			return fmt.Errorf("%w: withdrawal requires source account", ErrInvalidInput)
		}
		if to != nil {
			return fmt.Errorf("%w: withdrawal does not take a destination account", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: invalid transaction type", ErrInvalidInput)
	}
	return nil
}

// MarkPosted flips a pending transaction to POSTED.
func (t *Transaction) MarkPosted(now time.Time) error {
	if t.Status != TransactionStatusPending {
		return fmt.Errorf("cannot post transaction in status %s", t.Status)
	}
	t.Status = TransactionStatusPosted
	t.UpdatedAt = now
	return nil
}
