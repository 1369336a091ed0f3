package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kinsonleung/bankgo/internal/adapter/http/dto"
	"github.com/kinsonleung/bankgo/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrAccountNameEmpty),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSameAccount),
		domain.IsInsufficientFunds(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// bodyRefStatus collapses not-found to a client error. It applies to
// routes whose identifiers (account IDs, owner email) arrive in the
// request body, where an unknown reference is the caller's mistake,
// not a missing resource.
func bodyRefStatus(err error) int {
	status := mapDomainError(err)
	if status == http.StatusNotFound {
		return http.StatusBadRequest
	}
	return status
}

// parseIDParam parses an int64 URL parameter.
func parseIDParam(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
