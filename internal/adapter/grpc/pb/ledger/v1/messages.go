package ledgerv1

// CreateAccountRequest opens a zero-balance account.
type CreateAccountRequest struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency"`
}

type CreateAccountResponse struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
}

type GetBalanceRequest struct {
	AccountID string `json:"account_id"`
}

type GetBalanceResponse struct {
	AccountID string `json:"account_id"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
}

// PostTransactionRequest moves money. FromAccountID is empty for deposits and
// ToAccountID is empty for withdrawals.
type PostTransactionRequest struct {
	ReferenceID   string `json:"reference_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	FromAccountID string `json:"from_account_id,omitempty"`
	ToAccountID   string `json:"to_account_id,omitempty"`
	Metadata      string `json:"metadata,omitempty"`
}

type PostTransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	ReferenceID   string `json:"reference_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

type GetTransactionHistoryRequest struct {
	AccountID string `json:"account_id"`
	Page      int32  `json:"page"`
	Size      int32  `json:"size"`
}

type GetTransactionHistoryResponse struct {
	AccountID    string                    `json:"account_id"`
	Page         int32                     `json:"page"`
	Size         int32                     `json:"size"`
	Transactions []*TransactionHistoryItem `json:"transactions"`
}

// TransactionHistoryItem is one ledger entry of the account. Amount is unsigned;
// Direction carries the sign.
type TransactionHistoryItem struct {
	TransactionID string `json:"transaction_id"`
	ReferenceID   string `json:"reference_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Direction     string `json:"direction"`
	Status        string `json:"status"`
	BalanceAfter  string `json:"balance_after"`
	CreatedAt     string `json:"created_at"`
}
