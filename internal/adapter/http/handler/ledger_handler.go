package handler

import (
	"context"
	"net/http"

	"github.com/iho/ledgercore/internal/adapter/http/dto"
	"github.com/iho/ledgercore/internal/domain"
)

// ConsistencyChecker defines the behavior needed by LedgerHandler.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error)
}

// LedgerHandler handles ledger-wide requests.
type LedgerHandler struct {
	checker ConsistencyChecker
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(checker ConsistencyChecker) *LedgerHandler {
	return &LedgerHandler{checker: checker}
}

// Consistency runs the ledger invariant checks. An inconsistent ledger
// responds with 409 and the offending accounts and transfers.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.checker.CheckConsistency(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}
	writeJSON(w, status, dto.ConsistencyFromDomain(report))
}
