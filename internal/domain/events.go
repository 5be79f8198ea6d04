package domain

import "time"

// Event topics
const (
	TopicAccountCreated    = "account.created"
	TopicLedgerPosted      = "ledger.posted"
	TopicTransactionFailed = "transaction.failed"
)

// Failure reasons carried by TransactionFailedEvent.
const (
	ReasonSourceNotFound      = "source account not found"
	ReasonDestinationNotFound = "destination account not found"
	ReasonCurrencyMismatch    = "currency mismatch"
	ReasonInsufficientFunds   = "insufficient funds"
	ReasonConcurrencyConflict = "concurrency conflict"
	ReasonInternal            = "internal error"
)

// Event is a domain event addressed to a topic and keyed by an entity id.
type Event struct {
	ID         string
	Topic      string
	Key        string
	OccurredAt time.Time
	Payload    any
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID      string `json:"account_id"`
	UserID         string `json:"user_id"`
	Currency       string `json:"currency"`
	InitialBalance string `json:"initial_balance"`
}

// TransactionPostedEvent payload
type TransactionPostedEvent struct {
	TransactionID string  `json:"transaction_id"`
	ReferenceID   string  `json:"reference_id"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	FromAccountID *string `json:"from_account_id"`
	ToAccountID   *string `json:"to_account_id"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	Metadata      string  `json:"metadata,omitempty"`
}

// TransactionFailedEvent payload
type TransactionFailedEvent struct {
	ReferenceID string `json:"reference_id"`
	Reason      string `json:"reason"`
}

// NewAccountCreatedEvent builds the account.created event for a new account.
func NewAccountCreatedEvent(id string, account *Account) Event {
	return Event{
		ID:         id,
		Topic:      TopicAccountCreated,
		Key:        account.ID,
		OccurredAt: account.CreatedAt,
		Payload: AccountCreatedEvent{
			AccountID:      account.ID,
			UserID:         account.UserID,
			Currency:       account.Currency,
			InitialBalance: account.Balance.StringFixed(AmountScale),
		},
	}
}

// NewTransactionPostedEvent builds the ledger.posted event for a committed transaction.
func NewTransactionPostedEvent(id string, tx *Transaction) Event {
	return Event{
		ID:         id,
		Topic:      TopicLedgerPosted,
		Key:        tx.ID,
		OccurredAt: tx.UpdatedAt,
		Payload: TransactionPostedEvent{
			TransactionID: tx.ID,
			ReferenceID:   tx.ReferenceID,
			Type:          string(tx.Type),
			Status:        string(tx.Status),
			FromAccountID: tx.FromAccountID,
			ToAccountID:   tx.ToAccountID,
			Amount:        tx.Amount.StringFixed(AmountScale),
			Currency:      tx.Currency,
			Metadata:      tx.Metadata,
		},
	}
}

// NewTransactionFailedEvent builds the transaction.failed event for a rejected posting.
func NewTransactionFailedEvent(id, referenceID, reason string, now time.Time) Event {
	return Event{
		ID:         id,
		Topic:      TopicTransactionFailed,
		Key:        referenceID,
		OccurredAt: now,
		Payload: TransactionFailedEvent{
			ReferenceID: referenceID,
			Reason:      reason,
		},
	}
}
