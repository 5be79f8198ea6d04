package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/ledgercore/internal/domain"
)

// PostgreSQL error codes mapped to domain errors.
const (
	pgErrUniqueViolation = "23505"
	pgErrCheckViolation  = "23514"
)

// referenceIDConstraint is the unique constraint on transactions.reference_id.
const referenceIDConstraint = "uq_transactions_reference_id"

// mapError translates driver errors into domain errors, keeping the original in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		if pgErr.ConstraintName == referenceIDConstraint {
			return errors.Join(domain.ErrDuplicateTransaction, err)
		}
		return err
	case pgErrSerializationFailure, pgErrDeadlock:
		return errors.Join(domain.ErrConcurrencyConflict, err)
	case pgErrCheckViolation:
		return errors.Join(domain.ErrInsufficientFunds, err)
	default:
		return err
	}
}
