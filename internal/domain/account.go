package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a single-currency balance owned by a user.
type Account struct {
	ID        string
	UserID    string
	Currency  string
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount returns an account with a zero balance at version 0.
func NewAccount(id, userID, currency string, now time.Time) *Account {
	return &Account{
		ID:        id,
		UserID:    userID,
		Currency:  currency,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateDebit checks that the balance covers amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// Mutation is a pending balance change for an account observed at ExpectedVersion.
type Mutation struct {
	AccountID       string
	ExpectedVersion int64
	NewBalance      decimal.Decimal
	UpdatedAt       time.Time
}

// Debit validates and builds the mutation removing amount from the account.
func (a *Account) Debit(amount decimal.Decimal, now time.Time) (Mutation, error) {
	if err := a.ValidateDebit(amount); err != nil {
		return Mutation{}, err
	}
	return a.mutation(a.ApplyDebit(amount), now), nil
}

// Credit builds the mutation adding amount to the account.
func (a *Account) Credit(amount decimal.Decimal, now time.Time) Mutation {
	return a.mutation(a.ApplyCredit(amount), now)
}

func (a *Account) mutation(balance decimal.Decimal, now time.Time) Mutation {
	return Mutation{
		AccountID:       a.ID,
		ExpectedVersion: a.Version,
		NewBalance:      balance,
		UpdatedAt:       now,
	}
}

// Apply records a persisted mutation on the in-memory copy.
func (a *Account) Apply(m Mutation) {
	a.Balance = m.NewBalance
	a.Version = m.ExpectedVersion + 1
	a.UpdatedAt = m.UpdatedAt
}
