package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/core"
	"github.com/sevigo/botgate/internal/core/mocks"
)

func newAdminHandler(t *testing.T, store core.JobStore, adminKey string) *AdminHandler {
	t.Helper()
	cfg := &config.Config{
		AdminKey: adminKey,
		Routes: []config.Route{
			{Name: "main", Path: "/api/webhook", Token: "primary-token"},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAdminHandler(cfg, store, logger)
}

func adminRequest(h *AdminHandler, method, path, key, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}
	rec := httptest.NewRecorder()

	var next http.Handler
	switch path {
	case "/api/admin/metrics":
		next = http.HandlerFunc(h.Metrics)
	default:
		next = http.HandlerFunc(h.Broadcast)
	}
	h.RequireKey(next).ServeHTTP(rec, req)
	return rec
}

func TestRequireKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockJobStore(ctrl)

	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{"no key provided", "secret", "", http.StatusUnauthorized},
		{"wrong key", "secret", "guess", http.StatusUnauthorized},
		{"admin surface disabled", "", "anything", http.StatusUnauthorized},
		{"correct key", "secret", "secret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantStatus == http.StatusOK {
				store.EXPECT().Metrics(gomock.Any()).Return(&core.QueueMetrics{}, nil)
			}
			h := newAdminHandler(t, store, tt.configured)
			rec := adminRequest(h, http.MethodGet, "/api/admin/metrics", tt.provided, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockJobStore(ctrl)

	store.EXPECT().Metrics(gomock.Any()).Return(&core.QueueMetrics{
		Total:    4,
		ByStatus: map[string]int{"pending": 3, "failed": 1},
		ByType:   map[string]int{"process_telegram_update": 4},
	}, nil)

	h := newAdminHandler(t, store, "secret")
	rec := adminRequest(h, http.MethodGet, "/api/admin/metrics", "secret", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var m core.QueueMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 4, m.Total)
	assert.Equal(t, 3, m.ByStatus["pending"])
}

func TestBroadcast(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockJobStore(ctrl)

	payload := `{"text": "maintenance at noon"}`
	store.EXPECT().
		Enqueue(gomock.Any(), "broadcast", "primary-token", []byte(payload)).
		Return(uuid.New(), nil)

	h := newAdminHandler(t, store, "secret")
	body := `{"route": "main", "payload": ` + payload + `}`
	rec := adminRequest(h, http.MethodPost, "/api/admin/broadcast", "secret", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		JobID  string `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.JobID)
}

func TestBroadcastUnknownRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockJobStore(ctrl)

	h := newAdminHandler(t, store, "secret")
	rec := adminRequest(h, http.MethodPost, "/api/admin/broadcast", "secret",
		`{"route": "ghost", "payload": {"text": "x"}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBroadcastRejectsEmptyPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockJobStore(ctrl)

	h := newAdminHandler(t, store, "secret")
	rec := adminRequest(h, http.MethodPost, "/api/admin/broadcast", "secret", `{"route": "main"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
