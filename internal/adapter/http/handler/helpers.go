package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iho/ledgercore/internal/adapter/http/dto"
	"github.com/iho/ledgercore/internal/domain"
)

const internalMessage = "internal server error"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// respondError maps err to a status and writes it. Internal errors are logged
// and their details hidden from the caller.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapDomainError(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeError(w, status, internalMessage, "")
		return
	}

	writeJSON(w, status, dto.ErrorResponse{
		Error:     http.StatusText(status),
		Message:   err.Error(),
		Retryable: domain.IsRetryable(err),
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
// A present but malformed value is an input error.
func parseIntQuery(r *http.Request, key string, defaultValue int) (int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return i, nil
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
