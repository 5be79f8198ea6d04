package handler

import (
	"context"
	"net/http"

	"github.com/iho/ledgercore/internal/adapter/http/dto"
	"github.com/iho/ledgercore/internal/usecase"
)

// PostingService defines the behavior needed by TransactionHandler.
type PostingService interface {
	PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*usecase.PostTransactionResult, error)
}

// TransactionHandler handles transaction postings.
type TransactionHandler struct {
	postingUC PostingService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(postingUC PostingService) *TransactionHandler {
	return &TransactionHandler{postingUC: postingUC}
}

// Post posts a transfer, deposit or withdrawal.
func (h *TransactionHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.postingUC.PostTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostResultFromUseCase(result))
}
