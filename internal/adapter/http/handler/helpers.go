package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mcsoftware/atmledger/internal/adapter/http/dto"
	"github.com/mcsoftware/atmledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrOwnerNotFound),
		errors.Is(err, domain.ErrBankNotFound),
		errors.Is(err, domain.ErrBranchNotFound),
		errors.Is(err, domain.ErrATMNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientInitialDeposit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSameAccountTransfer),
		errors.Is(err, domain.ErrBankTooSmall),
		errors.Is(err, domain.ErrBankTooLarge),
		errors.Is(err, domain.ErrEmptyAccountSet),
		errors.Is(err, domain.ErrInvalidTransactionKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrInconsistentUpdate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
