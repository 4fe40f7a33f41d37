package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytview/internal/shared"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "status", status, "err", err)
	}
}

// statusFor maps sentinel errors onto HTTP status codes. Anything unrecognised is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrBadRequest), errors.Is(err, shared.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrUnknownRoute):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err with its detail and sends only message to the client.
//
// message is the endpoint's generic text for client and server failures; 401, 404 and 429 use fixed text.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error, message string) {
	status := statusFor(err)
	switch status {
	case http.StatusUnauthorized:
		message = "Unauthorized"
	case http.StatusNotFound:
		message = "Not found"
	case http.StatusTooManyRequests:
		message = "Too many requests"
	}

	kv := []any{"method", r.Method, "path", r.URL.Path, "status", status, "err", err}
	if status >= http.StatusInternalServerError {
		logger.Error(message, kv...)
	} else {
		logger.Warn(message, kv...)
	}

	writeJSON(w, logger, status, errorBody{Error: message})
}
