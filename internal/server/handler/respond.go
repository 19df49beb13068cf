// Package handler provides the HTTP handlers for the gateway's webhook and
// admin surfaces.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sevigo/botgate/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError is the single place failures are mapped to HTTP statuses. Only
// a short machine-readable message crosses the boundary; internal detail
// stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotReady):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service unavailable"})
	case errors.Is(err, core.ErrInvalidPayload):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	case errors.Is(err, core.ErrMissingCredential):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "bot token not configured"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
