package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/postgres/generated"
	"github.com/iho/ledgercore/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// Create inserts tx. A reused reference id maps to domain.ErrDuplicateTransaction.
func (r *TransactionRepository) Create(ctx context.Context, uow usecase.UnitOfWork, tx *domain.Transaction) error {
	queries, err := queriesFor(uow)
	if err != nil {
		return err
	}

	err = queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:            tx.ID,
		ReferenceID:   tx.ReferenceID,
		Type:          string(tx.Type),
		Status:        string(tx.Status),
		Amount:        decimalToNumeric(tx.Amount),
		Currency:      tx.Currency,
		FromAccountID: tx.FromAccountID,
		ToAccountID:   tx.ToAccountID,
		Metadata:      optionalString(tx.Metadata),
		CreatedAt:     timeToPgTimestamptz(tx.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(tx.UpdatedAt),
	})
	return mapError(err)
}

// GetByReferenceID looks up a transaction by its client reference.
func (r *TransactionRepository) GetByReferenceID(ctx context.Context, uow usecase.UnitOfWork, referenceID string) (*domain.Transaction, error) {
	queries, err := queriesFor(uow)
	if err != nil {
		return nil, err
	}

	row, err := queries.GetTransactionByReferenceID(ctx, referenceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, mapError(err)
	}

	return &domain.Transaction{
		ID:            row.ID,
		ReferenceID:   row.ReferenceID,
		Type:          domain.TransactionType(row.Type),
		Status:        domain.TransactionStatus(row.Status),
		Amount:        numericToDecimal(row.Amount),
		Currency:      row.Currency,
		FromAccountID: row.FromAccountID,
		ToAccountID:   row.ToAccountID,
		Metadata:      derefString(row.Metadata),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}, nil
}

// UpdateStatus sets the status of transaction id.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, uow usecase.UnitOfWork, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	queries, err := queriesFor(uow)
	if err != nil {
		return err
	}

	affected, err := queries.UpdateTransactionStatus(ctx, generated.UpdateTransactionStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
