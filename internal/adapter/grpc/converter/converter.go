package converter

import (
	"time"

	pb "github.com/iho/ledgercore/internal/adapter/grpc/pb/ledger/v1"
	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// AccountToCreateResponse converts a new domain.Account to its CreateAccount response
func AccountToCreateResponse(a *domain.Account) *pb.CreateAccountResponse {
	if a == nil {
		return nil
	}
	return &pb.CreateAccountResponse{
		AccountID: a.ID,
		UserID:    a.UserID,
		Currency:  a.Currency,
		Balance:   a.Balance.StringFixed(domain.AmountScale),
	}
}

// AccountToBalanceResponse converts domain.Account to a GetBalance response
func AccountToBalanceResponse(a *domain.Account) *pb.GetBalanceResponse {
	if a == nil {
		return nil
	}
	return &pb.GetBalanceResponse{
		AccountID: a.ID,
		Currency:  a.Currency,
		Balance:   a.Balance.StringFixed(domain.AmountScale),
	}
}

// PostRequestToInput converts a PostTransaction request to use case input
func PostRequestToInput(req *pb.PostTransactionRequest) usecase.PostTransactionInput {
	return usecase.PostTransactionInput{
		ReferenceID:   req.ReferenceID,
		Type:          req.Type,
		Amount:        req.Amount,
		Currency:      req.Currency,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Metadata:      req.Metadata,
	}
}

// PostResultToPb converts a posting result to its response
func PostResultToPb(r *usecase.PostTransactionResult) *pb.PostTransactionResponse {
	if r == nil {
		return nil
	}
	return &pb.PostTransactionResponse{
		TransactionID: r.TransactionID,
		ReferenceID:   r.ReferenceID,
		Status:        string(r.Status),
		Message:       r.Message,
	}
}

// HistoryItemToPb converts a history item; the amount is rendered unsigned
func HistoryItemToPb(item *domain.HistoryItem) *pb.TransactionHistoryItem {
	if item == nil {
		return nil
	}
	return &pb.TransactionHistoryItem{
		TransactionID: item.Entry.TransactionID,
		ReferenceID:   item.ReferenceID,
		Type:          string(item.Type),
		Amount:        item.Entry.Amount.Abs().StringFixed(domain.AmountScale),
		Direction:     string(item.Entry.Direction),
		Status:        string(item.Status),
		BalanceAfter:  item.Entry.BalanceAfter.StringFixed(domain.AmountScale),
		CreatedAt:     FormatTimestamp(item.Entry.CreatedAt),
	}
}

// HistoryPageToPb converts a page of history
func HistoryPageToPb(page *usecase.HistoryPage) *pb.GetTransactionHistoryResponse {
	items := make([]*pb.TransactionHistoryItem, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, HistoryItemToPb(item))
	}
	return &pb.GetTransactionHistoryResponse{
		AccountID:    page.AccountID,
		Page:         int32(page.Page),
		Size:         int32(page.Size),
		Transactions: items,
	}
}

// FormatTimestamp renders t in RFC 3339 UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
