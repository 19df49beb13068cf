package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/core"
)

// AdminHandler serves the key-gated administrative surface: queue metrics
// and manual broadcast enqueue. It is peripheral to the ingress pipeline and
// shares only the job store with it.
type AdminHandler struct {
	cfg    *config.Config
	store  core.JobStore
	logger *slog.Logger
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(cfg *config.Config, store core.JobStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{cfg: cfg, store: store, logger: logger}
}

// RequireKey gates admin routes on the X-Admin-Key header. With no key
// configured the whole surface is disabled.
func (h *AdminHandler) RequireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Admin-Key")
		if h.cfg.AdminKey == "" ||
			subtle.ConstantTimeCompare([]byte(key), []byte(h.cfg.AdminKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Metrics reports job counts aggregated by status and type.
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.store.Metrics(r.Context())
	if err != nil {
		h.logger.Error("failed to aggregate queue metrics", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

type broadcastRequest struct {
	Route   string          `json:"route"`
	Payload json.RawMessage `json:"payload"`
}

type broadcastResponse struct {
	Status string    `json:"status"`
	JobID  uuid.UUID `json:"job_id"`
}

// Broadcast enqueues a manual broadcast job under a named route's primary
// credential.
func (h *AdminHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		writeError(w, core.ErrInvalidPayload)
		return
	}
	if len(req.Payload) == 0 {
		writeError(w, core.ErrInvalidPayload)
		return
	}

	route, ok := h.cfg.RouteByName(req.Route)
	if !ok || route.Token == "" {
		h.logger.Error("broadcast rejected, no usable route", "route", req.Route)
		writeError(w, core.ErrMissingCredential)
		return
	}

	jobID, err := h.store.Enqueue(context.WithoutCancel(r.Context()), "broadcast", route.Token, req.Payload)
	if err != nil {
		h.logger.Error("failed to enqueue broadcast", "route", req.Route, "error", err)
		writeError(w, err)
		return
	}

	h.logger.Info("broadcast enqueued", "route", req.Route, "job_id", jobID)
	writeJSON(w, http.StatusOK, broadcastResponse{Status: "ok", JobID: jobID})
}
