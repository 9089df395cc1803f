package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/peerpay/peerledger/internal/adapter/http/dto"
	"github.com/peerpay/peerledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes the uniform error envelope.
func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   kind,
		Message: message,
	})
}

// mapDomainError maps domain errors to an HTTP status and a stable error
// kind. Kinds are part of the API contract; messages are not.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, domain.ErrSelfTransfer):
		return http.StatusBadRequest, "SELF_TRANSFER"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, "INSUFFICIENT_FUNDS"
	case errors.Is(err, domain.ErrRecipientNotFound):
		return http.StatusBadRequest, "RECIPIENT_NOT_FOUND"
	case errors.Is(err, domain.ErrSenderNotFound):
		return http.StatusNotFound, "SENDER_NOT_FOUND"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "ACCOUNT_NOT_FOUND"
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound, "ENTRY_NOT_FOUND"
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, "ACCOUNT_EXISTS"
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrStorageFailure):
		return http.StatusServiceUnavailable, "STORAGE_FAILURE"
	case errors.Is(err, dto.ErrMalformedBody):
		return http.StatusBadRequest, "MALFORMED_BODY"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// writeDomainError maps err and writes the envelope in one step.
func writeDomainError(w http.ResponseWriter, err error) {
	status, kind := mapDomainError(err)
	writeError(w, status, kind, err.Error())
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
