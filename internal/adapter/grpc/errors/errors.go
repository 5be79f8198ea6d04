package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/iho/ledgercore/internal/domain"
)

// InternalMessage is the only detail a caller sees for unexpected failures.
const InternalMessage = "internal server error"

// MapDomainError converts domain errors to appropriate gRPC status codes.
// Unknown errors become Internal without exposing their text.
func MapDomainError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	// Invalid Argument errors
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())

	// Idempotency
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return status.Error(codes.AlreadyExists, "transaction already processed")

	// Not Found errors
	case errors.Is(err, domain.ErrSourceAccountNotFound):
		return status.Error(codes.NotFound, "source account not found")
	case errors.Is(err, domain.ErrDestinationAccountNotFound):
		return status.Error(codes.NotFound, "destination account not found")
	case errors.Is(err, domain.ErrAccountNotFound):
		return status.Error(codes.NotFound, "account not found")

	// Precondition Failed errors (business rule violations)
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return status.Error(codes.FailedPrecondition, "currency mismatch")
	case errors.Is(err, domain.ErrInsufficientFunds):
		return status.Error(codes.FailedPrecondition, "insufficient funds")

	// Retryable with the same reference id
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return status.Error(codes.Aborted, "concurrent modification detected, retry")

	// Context errors (timeouts, cancellations)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "operation timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "operation was canceled")

	default:
		return status.Error(codes.Internal, InternalMessage)
	}
}
