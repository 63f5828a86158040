package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

// WriteJSONError writes {"error": message} with the given status code
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// decodeJSON reads the request body into v. A body that is not valid JSON
// for v, including a string where a number is expected, is a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, log logger.Logger, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithField("path", r.URL.Path).Warn(fmt.Sprintf("Failed to decode request body: %v", err))
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError maps domain errors onto status codes. Anything unknown
// is a 500 that echoes the error text.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		ve      domain.ValidationError
		nf      *domain.ErrNotFound
		cnf     *domain.ErrContentNotFound
		exists  *domain.ErrUserAlreadyExists
		limited *domain.ErrRateLimited
	)

	switch {
	case errors.As(err, &ve):
		WriteJSONError(w, ve.Message, http.StatusBadRequest)
	case errors.As(err, &nf):
		WriteJSONError(w, capitalize(nf.Entity)+" not found", http.StatusNotFound)
	case errors.As(err, &cnf):
		WriteJSONError(w, "Content not found", http.StatusNotFound)
	case errors.As(err, &exists):
		WriteJSONError(w, "A user with this email already exists", http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.As(err, &limited):
		w.Header().Set("Retry-After", strconv.Itoa(limited.RetryAfter))
		WriteJSONError(w, "Too many login attempts, please try again later", http.StatusTooManyRequests)
	default:
		WriteJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
