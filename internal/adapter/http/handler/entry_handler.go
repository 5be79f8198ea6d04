package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ledgercore/internal/adapter/http/dto"
	"github.com/iho/ledgercore/internal/usecase"
)

// HistoryService defines the behavior needed by EntryHandler.
type HistoryService interface {
	GetTransactionHistory(ctx context.Context, input usecase.HistoryInput) (*usecase.HistoryPage, error)
}

// EntryHandler handles ledger entry requests.
type EntryHandler struct {
	historyUC HistoryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(historyUC HistoryService) *EntryHandler {
	return &EntryHandler{historyUC: historyUC}
}

// History lists the entries of an account, newest first.
func (h *EntryHandler) History(w http.ResponseWriter, r *http.Request) {
	page, err := parseIntQuery(r, "page", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	size, err := parseIntQuery(r, "size", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.historyUC.GetTransactionHistory(r.Context(), usecase.HistoryInput{
		AccountID: chi.URLParam(r, "id"),
		Page:      page,
		Size:      size,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromUseCase(result))
}
