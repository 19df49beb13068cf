package telegram

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnswerCallbackQuery(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := NewClient(discardLogger(), WithBaseURL(srv.URL))
	if err := client.AnswerCallbackQuery(context.Background(), "secret-token", "cb-1"); err != nil {
		t.Fatalf("AnswerCallbackQuery() failed: %v", err)
	}

	if gotPath != "/botsecret-token/answerCallbackQuery" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["callback_query_id"] != "cb-1" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestSendChatAction(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := NewClient(discardLogger(), WithBaseURL(srv.URL))
	if err := client.SendChatAction(context.Background(), "tok", 42, "typing"); err != nil {
		t.Fatalf("SendChatAction() failed: %v", err)
	}

	if gotPath != "/bottok/sendChatAction" {
		t.Errorf("path = %q", gotPath)
	}
	// JSON numbers decode as float64.
	if gotBody["chat_id"] != float64(42) || gotBody["action"] != "typing" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestAPIErrorsAreSurfaced(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
	}{
		{"api rejection", http.StatusBadRequest, `{"ok": false, "description": "query is too old"}`},
		{"ok false without description", http.StatusOK, `{"ok": false}`},
		{"garbage response", http.StatusBadGateway, `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := NewClient(discardLogger(), WithBaseURL(srv.URL))
			if err := client.AnswerCallbackQuery(context.Background(), "tok", "cb"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestUnreachableHost(t *testing.T) {
	// Reserved TEST-NET address: connections fail fast.
	client := NewClient(discardLogger(), WithBaseURL("http://192.0.2.1:9"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := client.SendChatAction(ctx, "tok", 1, "typing"); err == nil {
		t.Error("expected an error for an unreachable host")
	}
}
