package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/karat/bullionledger/internal/adapter/http/dto"
	"github.com/karat/bullionledger/internal/domain"
)

// ActorIDHeader carries the identity of the operator performing the request.
const ActorIDHeader = "X-Actor-ID"

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

// writeDomainError maps a domain error to an HTTP response carrying the
// stable error code.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	status := http.StatusInternalServerError
	code := ""

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		code = domainErr.Code
		switch domainErr.Kind {
		case domain.KindInvalid:
			status = http.StatusBadRequest
		case domain.KindNotFound:
			status = http.StatusNotFound
		case domain.KindConflict:
			status = http.StatusConflict
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Code:    code,
		Message: err.Error(),
	})
}

// actorID extracts the acting operator from the request, defaulting to
// "system".
func actorID(r *http.Request) string {
	if id := r.Header.Get(ActorIDHeader); id != "" {
		return id
	}
	return "system"
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
