package dto

import (
	"github.com/iho/ledgercore/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency"`
}

// ToUseCaseInput converts request to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:   r.UserID,
		Currency: r.Currency,
	}
}

// PostTransactionRequest represents a request to post a transaction.
type PostTransactionRequest struct {
	ReferenceID   string `json:"reference_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	FromAccountID string `json:"from_account_id,omitempty"`
	ToAccountID   string `json:"to_account_id,omitempty"`
	Metadata      string `json:"metadata,omitempty"`
}

// ToUseCaseInput converts request to use case input.
func (r *PostTransactionRequest) ToUseCaseInput() usecase.PostTransactionInput {
	return usecase.PostTransactionInput{
		ReferenceID:   r.ReferenceID,
		Type:          r.Type,
		Amount:        r.Amount,
		Currency:      r.Currency,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Metadata:      r.Metadata,
	}
}
