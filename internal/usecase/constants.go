package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single posting unit of work.
	DefaultTransactionTimeout = 10 * time.Second

	// PostedMessage is returned with every successfully posted transaction.
	PostedMessage = "Transaction completed successfully"
)
