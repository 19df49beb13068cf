package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/core"
	"github.com/sevigo/botgate/internal/health"
	"github.com/sevigo/botgate/internal/server/handler"
)

// NewRouter configures the HTTP router: one webhook handler mounted per
// configured route, a global readiness endpoint, and the key-gated admin
// surface.
func NewRouter(cfg *config.Config, store core.JobStore, responder core.Responder, checker *health.Checker, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("botgate is running"))
	})

	webhook := handler.NewWebhookHandler(store, responder, checker, logger)
	r.Get("/health", webhook.Status)

	for _, route := range cfg.Routes {
		r.Get(route.Path, webhook.Status)
		r.Post(route.Path, webhook.Receive(route))
	}

	admin := handler.NewAdminHandler(cfg, store, logger)
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(admin.RequireKey)
		r.Get("/metrics", admin.Metrics)
		r.Post("/broadcast", admin.Broadcast)
	})

	return r
}
