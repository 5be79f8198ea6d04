package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/postgres/generated"
	"github.com/iho/ledgercore/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository. db is usually a *pgxpool.Pool.
func NewAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create inserts a new account within uow.
func (r *AccountRepository) Create(ctx context.Context, uow usecase.UnitOfWork, account *domain.Account) error {
	queries, err := queriesFor(uow)
	if err != nil {
		return err
	}

	err = queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:        account.ID,
		UserID:    account.UserID,
		Currency:  account.Currency,
		Balance:   decimalToNumeric(account.Balance),
		Version:   account.Version,
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})
	return mapError(err)
}

// GetByID retrieves an account outside any transaction.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return getAccount(ctx, r.queries, id)
}

// GetByIDTx retrieves an account within uow.
func (r *AccountRepository) GetByIDTx(ctx context.Context, uow usecase.UnitOfWork, id string) (*domain.Account, error) {
	queries, err := queriesFor(uow)
	if err != nil {
		return nil, err
	}
	return getAccount(ctx, queries, id)
}

// UpdateBalance writes m if the row still carries m.ExpectedVersion.
func (r *AccountRepository) UpdateBalance(ctx context.Context, uow usecase.UnitOfWork, m domain.Mutation) error {
	queries, err := queriesFor(uow)
	if err != nil {
		return err
	}

	affected, err := queries.UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:              m.AccountID,
		Balance:         decimalToNumeric(m.NewBalance),
		UpdatedAt:       timeToPgTimestamptz(m.UpdatedAt),
		ExpectedVersion: m.ExpectedVersion,
	})
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: account %s changed since version %d",
			domain.ErrConcurrencyConflict, domain.MaskID(m.AccountID), m.ExpectedVersion)
	}
	return nil
}

func getAccount(ctx context.Context, queries *generated.Queries, id string) (*domain.Account, error) {
	row, err := queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, mapError(err)
	}
	return rowToAccount(row), nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:        row.ID,
		UserID:    row.UserID,
		Currency:  row.Currency,
		Balance:   numericToDecimal(row.Balance),
		Version:   row.Version,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func queriesFor(uow usecase.UnitOfWork) (*generated.Queries, error) {
	tx, err := pgxTxFrom(uow)
	if err != nil {
		return nil, err
	}
	return generated.New(tx), nil
}
