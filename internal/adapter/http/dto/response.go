package dto

import (
	"time"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// AccountResponse represents a newly created account.
type AccountResponse struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountID: a.ID,
		UserID:    a.UserID,
		Currency:  a.Currency,
		Balance:   a.Balance.StringFixed(domain.AmountScale),
	}
}

// BalanceResponse represents the current balance of an account.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
}

// BalanceFromDomain converts domain account to a balance response.
func BalanceFromDomain(a *domain.Account) *BalanceResponse {
	return &BalanceResponse{
		AccountID: a.ID,
		Currency:  a.Currency,
		Balance:   a.Balance.StringFixed(domain.AmountScale),
	}
}

// PostTransactionResponse represents a posted transaction.
type PostTransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	ReferenceID   string `json:"reference_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// PostResultFromUseCase converts a posting result to response.
func PostResultFromUseCase(r *usecase.PostTransactionResult) *PostTransactionResponse {
	return &PostTransactionResponse{
		TransactionID: r.TransactionID,
		ReferenceID:   r.ReferenceID,
		Status:        string(r.Status),
		Message:       r.Message,
	}
}

// HistoryItemResponse represents one ledger entry; Amount is unsigned.
type HistoryItemResponse struct {
	TransactionID string `json:"transaction_id"`
	ReferenceID   string `json:"reference_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Direction     string `json:"direction"`
	Status        string `json:"status"`
	BalanceAfter  string `json:"balance_after"`
	CreatedAt     string `json:"created_at"`
}

// HistoryResponse represents a page of account history.
type HistoryResponse struct {
	AccountID    string                 `json:"account_id"`
	Page         int                    `json:"page"`
	Size         int                    `json:"size"`
	Transactions []*HistoryItemResponse `json:"transactions"`
}

// HistoryFromUseCase converts a history page to response.
func HistoryFromUseCase(page *usecase.HistoryPage) *HistoryResponse {
	items := make([]*HistoryItemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, &HistoryItemResponse{
			TransactionID: item.Entry.TransactionID,
			ReferenceID:   item.ReferenceID,
			Type:          string(item.Type),
			Amount:        item.Entry.Amount.Abs().StringFixed(domain.AmountScale),
			Direction:     string(item.Entry.Direction),
			Status:        string(item.Status),
			BalanceAfter:  item.Entry.BalanceAfter.StringFixed(domain.AmountScale),
			CreatedAt:     item.Entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return &HistoryResponse{
		AccountID:    page.AccountID,
		Page:         page.Page,
		Size:         page.Size,
		Transactions: items,
	}
}

// DriftResponse represents an account whose balance disagrees with its entries.
type DriftResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
	EntrySum  string `json:"entry_sum"`
	Negative  bool   `json:"negative"`
}

// ConsistencyResponse represents the result of a ledger consistency check.
type ConsistencyResponse struct {
	Status              string           `json:"status"`
	Consistent          bool             `json:"consistent"`
	Drifts              []*DriftResponse `json:"drifts"`
	UnbalancedTransfers []string         `json:"unbalanced_transfers"`
	CheckedAt           time.Time        `json:"checked_at"`
}

// ConsistencyFromDomain converts a consistency report to response.
func ConsistencyFromDomain(r *domain.ConsistencyReport) *ConsistencyResponse {
	status := "consistent"
	if !r.Consistent {
		status = "inconsistent"
	}

	drifts := make([]*DriftResponse, 0, len(r.Drifts))
	for _, d := range r.Drifts {
		drifts = append(drifts, &DriftResponse{
			AccountID: d.AccountID,
			Balance:   d.Balance.StringFixed(domain.AmountScale),
			EntrySum:  d.EntrySum.StringFixed(domain.AmountScale),
			Negative:  d.Negative(),
		})
	}

	unbalanced := r.UnbalancedTransfers
	if unbalanced == nil {
		unbalanced = []string{}
	}

	return &ConsistencyResponse{
		Status:              status,
		Consistent:          r.Consistent,
		Drifts:              drifts,
		UnbalancedTransfers: unbalanced,
		CheckedAt:           r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}
