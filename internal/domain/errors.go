package domain

import (
	"errors"
	"fmt"
)

var (
	// Request errors
	ErrInvalidInput = errors.New("invalid input")

	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Participant-specific lookups; both match ErrAccountNotFound.
	ErrSourceAccountNotFound      = fmt.Errorf("source %w", ErrAccountNotFound)
	ErrDestinationAccountNotFound = fmt.Errorf("destination %w", ErrAccountNotFound)

	// Transaction errors
	ErrDuplicateTransaction = errors.New("transaction already processed")
	ErrTransactionNotFound  = errors.New("transaction not found")

	// ErrConcurrencyConflict is returned when an account changed between read and write.
	// The request may be retried with the same reference id.
	ErrConcurrencyConflict = errors.New("concurrent modification detected")
)

// IsBusinessRejection reports whether err is a deterministic business-rule rejection.
func IsBusinessRejection(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrCurrencyMismatch) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrDuplicateTransaction)
}

// IsRetryable reports whether err is transient and the same request may be resubmitted.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}

// FailureReason returns the reason published for a failed posting and whether one
// should be published at all. Input errors and duplicates carry none.
func FailureReason(err error) (string, bool) {
	switch {
	case err == nil,
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrDuplicateTransaction):
		return "", false
	case errors.Is(err, ErrConcurrencyConflict):
		return ReasonConcurrencyConflict, true
	case errors.Is(err, ErrSourceAccountNotFound):
		return ReasonSourceNotFound, true
	case errors.Is(err, ErrDestinationAccountNotFound):
		return ReasonDestinationNotFound, true
	case errors.Is(err, ErrAccountNotFound):
		return ErrAccountNotFound.Error(), true
	case errors.Is(err, ErrCurrencyMismatch):
		return ReasonCurrencyMismatch, true
	case errors.Is(err, ErrInsufficientFunds):
		return ReasonInsufficientFunds, true
	default:
		return ReasonInternal, true
	}
}
