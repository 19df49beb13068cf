// Package telegram is a minimal Bot API client covering the gateway's two
// outbound calls: acknowledging callback queries and emitting chat actions.
// Both are side-channel calls with short timeouts; bot business logic lives
// in the workers, which carry their own full client.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client calls the Telegram Bot API. These calls sit on the request's side
// channel and must never stretch tail latency, so the HTTP client carries a
// 2-second overall timeout.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host, for tests and self-hosted Bot API
// servers.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Bot API client with short, fixed timeouts.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 2 * time.Second,
	}

	c := &Client{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Transport: transport,
			Timeout:   2 * time.Second,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnswerCallbackQuery acknowledges an interactive button press so the
// client's loading spinner stops.
func (c *Client) AnswerCallbackQuery(ctx context.Context, token, callbackID string) error {
	return c.post(ctx, token, "answerCallbackQuery", map[string]any{
		"callback_query_id": callbackID,
	})
}

// SendChatAction emits a chat action such as "typing".
func (c *Client) SendChatAction(ctx context.Context, token string, chatID int64, action string) error {
	return c.post(ctx, token, "sendChatAction", map[string]any{
		"chat_id": chatID,
		"action":  action,
	})
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) post(ctx context.Context, token, method string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	c.logger.Debug("telegram api call", "method", method, "status", resp.StatusCode)
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	var apiResp apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode %s response (status %d): %w", method, resp.StatusCode, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%s failed (status %d): %s", method, resp.StatusCode, apiResp.Description)
	}
	return nil
}
