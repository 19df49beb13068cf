package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/core"
	"github.com/sevigo/botgate/internal/health"
)

// maxBodySize caps webhook bodies; Telegram updates are far smaller.
const maxBodySize = 1 << 20

// WebhookHandler is the ingress endpoint: it gates on readiness, classifies
// the update, fires the immediate responder, and enqueues the job.
type WebhookHandler struct {
	store     core.JobStore
	responder core.Responder
	checker   *health.Checker
	logger    *slog.Logger
}

// NewWebhookHandler creates the ingress handler with its collaborators.
func NewWebhookHandler(store core.JobStore, responder core.Responder, checker *health.Checker, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		store:     store,
		responder: responder,
		checker:   checker,
		logger:    logger,
	}
}

type webhookResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	UpdateID int64  `json:"update_id"`
}

// Status serves the readiness document: 200 when the gateway can enqueue,
// 503 otherwise. Non-mutating and always available.
func (h *WebhookHandler) Status(w http.ResponseWriter, r *http.Request) {
	report := h.checker.Check(r.Context())
	status := http.StatusOK
	if !report.Ready() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// Receive returns the POST handler for one webhook route. The sequence is
// fixed: readiness, parse, classify, resolve credential, dispatch the
// responder (async), enqueue. The responder can neither delay nor alter the
// result past this point.
func (h *WebhookHandler) Receive(route config.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if report := h.checker.Check(r.Context()); !report.Ready() {
			h.logger.Warn("rejecting update, gateway not ready", "route", route.Name)
			writeError(w, core.ErrNotReady)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			writeError(w, core.ErrInvalidPayload)
			return
		}

		update, err := core.ParseUpdate(body)
		if err != nil {
			h.logger.Warn("rejecting malformed update", "route", route.Name, "error", err)
			writeError(w, err)
			return
		}

		decision := core.Classify(update)
		token, err := route.ResolveToken(decision)
		if err != nil {
			h.logger.Error("no credential for update",
				"route", route.Name,
				"job_type", decision.JobType(),
				"update_id", *update.UpdateID,
			)
			writeError(w, err)
			return
		}

		h.responder.Dispatch(decision, token)

		// The provider retries on non-2xx; a caller disconnect must not
		// abandon a transaction mid-write.
		jobID, err := h.store.Enqueue(context.WithoutCancel(r.Context()), decision.JobType(), token, update.Raw)
		if err != nil {
			h.logger.Error("failed to enqueue job",
				"route", route.Name,
				"job_type", decision.JobType(),
				"update_id", *update.UpdateID,
				"error", err,
			)
			writeError(w, err)
			return
		}

		h.logger.Info("job enqueued",
			"route", route.Name,
			"job_type", decision.JobType(),
			"job_id", jobID,
			"update_id", *update.UpdateID,
		)
		writeJSON(w, http.StatusOK, webhookResponse{
			Status:   "ok",
			Message:  "webhook processed",
			UpdateID: *update.UpdateID,
		})
	}
}
