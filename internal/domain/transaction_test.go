package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		input   string
		want    TransactionType
		wantErr bool
	}{
		{"TRANSFER", TransactionTypeTransfer, false},
		{"deposit", TransactionTypeDeposit, false},
		{" Withdrawal ", TransactionTypeWithdrawal, false},
		{"REFUND", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTransactionType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTransactionValidateAccounts(t *testing.T) {
	a := &Account{ID: "a"}
	b := &Account{ID: "b"}

	tests := []struct {
		name    string
		txType  TransactionType
		from    *Account
		to      *Account
		wantErr bool
	}{
		{"transfer ok", TransactionTypeTransfer, a, b, false},
		{"transfer missing source", TransactionTypeTransfer, nil, b, true},
		{"transfer missing destination", TransactionTypeTransfer, a, nil, true},
		{"transfer same account", TransactionTypeTransfer, a, a, true},
		{"deposit ok", TransactionTypeDeposit, nil, b, false},
		{"deposit missing destination", TransactionTypeDeposit, nil, nil, true},
		{"deposit with source", TransactionTypeDeposit, a, b, true},
		{"withdrawal ok", TransactionTypeWithdrawal, a, nil, false},
		{"withdrawal missing source", TransactionTypeWithdrawal, nil, nil, true},
		{"withdrawal with destination", TransactionTypeWithdrawal, a, b, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{Type: tt.txType}
			err := tx.ValidateAccounts(tt.from, tt.to)
			if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTransactionMarkPosted(t *testing.T) {
	tx := &Transaction{Status: TransactionStatusPending}
	now := time.Now()

	if err := tx.MarkPosted(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Status != TransactionStatusPosted || !tx.Status.IsTerminal() {
		t.Fatalf("expected POSTED terminal status, got %s", tx.Status)
	}
	if err := tx.MarkPosted(now); err == nil {
		t.Fatalf("expected error posting twice")
	}
}

func TestEntriesConserveTransferAmount(t *testing.T) {
	now := time.Now()
	amount := decimal.RequireFromString("100.00")
	from := &Account{ID: "x", Balance: decimal.NewFromInt(1000)}
	to := &Account{ID: "y", Balance: decimal.NewFromInt(500)}

	debit, err := from.Debit(amount, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	credit := to.Credit(amount, now)

	d := NewDebitEntry("e1", "tx", debit, amount)
	c := NewCreditEntry("e2", "tx", credit, amount)

	if !d.Amount.Add(c.Amount).IsZero() {
		t.Fatalf("expected entries to sum to zero, got %s", d.Amount.Add(c.Amount))
	}
	if d.Direction != EntryDirectionDebit || c.Direction != EntryDirectionCredit {
		t.Fatalf("unexpected directions %s/%s", d.Direction, c.Direction)
	}
	if d.BalanceAfter.StringFixed(AmountScale) != "900.0000" || c.BalanceAfter.StringFixed(AmountScale) != "600.0000" {
		t.Fatalf("unexpected balance snapshots %s/%s", d.BalanceAfter, c.BalanceAfter)
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    string
		publish bool
	}{
		{"invalid input", ErrInvalidInput, "", false},
		{"duplicate", ErrDuplicateTransaction, "", false},
		{"source missing", ErrSourceAccountNotFound, ReasonSourceNotFound, true},
		{"destination missing", ErrDestinationAccountNotFound, ReasonDestinationNotFound, true},
		{"currency", ErrCurrencyMismatch, ReasonCurrencyMismatch, true},
		{"funds", ErrInsufficientFunds, ReasonInsufficientFunds, true},
		{"conflict", ErrConcurrencyConflict, ReasonConcurrencyConflict, true},
		{"unknown", errors.New("boom"), ReasonInternal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, publish := FailureReason(tt.err)
			if got != tt.want || publish != tt.publish {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tt.want, tt.publish, got, publish)
			}
		})
	}

	if !errors.Is(ErrSourceAccountNotFound, ErrAccountNotFound) {
		t.Fatalf("source lookup error must match ErrAccountNotFound")
	}
}
