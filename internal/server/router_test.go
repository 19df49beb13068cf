package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/core"
	"github.com/sevigo/botgate/internal/health"
)

type stubStore struct{}

func (stubStore) Enqueue(context.Context, string, string, []byte) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (stubStore) Metrics(context.Context) (*core.QueueMetrics, error) {
	return nil, errors.New("not implemented")
}

func (stubStore) Ping(context.Context) error { return nil }

type stubResponder struct{}

func (stubResponder) Dispatch(core.Decision, string) {}

func newTestRouter() http.Handler {
	cfg := &config.Config{
		ServerPort: "0",
		AdminKey:   "secret",
		Routes: []config.Route{
			{Name: "main", Path: "/api/webhook", Token: "tok"},
			{Name: "swap", Path: "/api/webhook_swap", Token: "tok2"},
		},
	}
	store := stubStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker := health.NewChecker(store, cfg.Routes)
	return NewRouter(cfg, store, stubResponder{}, checker, logger)
}

func TestRouterMountsConfiguredRoutes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/webhook", http.StatusOK},
		{http.MethodGet, "/api/webhook_swap", http.StatusOK},
		{http.MethodGet, "/api/webhook_other", http.StatusNotFound},
		{http.MethodGet, "/api/admin/metrics", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestRouterAcceptsWebhookPost(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/webhook",
		strings.NewReader(`{"update_id": 1, "message": {"chat": {"id": 42}}}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("POST /api/webhook = %d, want 200", rec.Code)
	}
}
