package usecase

import (
	"context"

	"github.com/iho/ledgercore/internal/domain"
)

// EntryUseCase serves account history.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
	}
}

// HistoryInput represents a history page request. Size 0 selects the default page size.
type HistoryInput struct {
	AccountID string
	Page      int
	Size      int
}

// HistoryPage is one page of an account's entries, newest first.
type HistoryPage struct {
	AccountID string
	Page      int
	Size      int
	Items     []*domain.HistoryItem
}

// GetTransactionHistory lists the ledger entries of an account. An unknown account
// yields an empty page.
func (uc *EntryUseCase) GetTransactionHistory(ctx context.Context, input HistoryInput) (*HistoryPage, error) {
	id, err := domain.ValidateID(input.AccountID, "account_id")
	if err != nil {
		return nil, err
	}

	size := input.Size
	if size == 0 {
		size = domain.DefaultPageSize
	}
	page, size, err := domain.ValidatePagination(input.Page, size)
	if err != nil {
		return nil, err
	}

	items, err := uc.entryRepo.ListHistory(ctx, id, size, page*size)
	if err != nil {
		return nil, err
	}

	return &HistoryPage{
		AccountID: id,
		Page:      page,
		Size:      size,
		Items:     items,
	}, nil
}
