package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response. Server-side failures log their
// cause and return a generic message; driver and infrastructure errors
// never reach the client.
func writeError(w http.ResponseWriter, status int, message, details string) {
	if status >= http.StatusInternalServerError {
		log.Error().Int("status", status).Str("cause", details).Msg(message)
		details = "internal server error"
	}

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
	case errors.Is(err, domain.ErrLedgerNotFound),
		errors.Is(err, domain.ErrLedgerGroupNotFound),
		errors.Is(err, domain.ErrStockItemNotFound),
		errors.Is(err, domain.ErrVoucherNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownVoucherType),
		errors.Is(err, domain.ErrEmptyEntries),
		errors.Is(err, domain.ErrAmbiguousEntry),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnbalancedVoucher),
		errors.Is(err, domain.ErrUnknownReference),
		errors.Is(err, domain.ErrEntryShapeNotAllowed),
		errors.Is(err, domain.ErrMissingParty),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidFinancialYear),
		errors.Is(err, domain.ErrInvalidBasis):
		return http.StatusBadRequest
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

// parseBoolQuery parses a boolean query parameter with a default value.
func parseBoolQuery(r *http.Request, key string, defaultValue bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return b
}

// parseDateQuery parses an ISO date query parameter. An absent parameter
// yields the zero time with ok=false; a malformed one yields an error.
func parseDateQuery(r *http.Request, key string) (time.Time, bool, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, false, nil
	}

	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return time.Time{}, false, err
	}

	return t, true, nil
}
