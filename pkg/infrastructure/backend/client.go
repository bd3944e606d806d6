// Package backend implements the domain.Backend port over HTTP: typed REST
// verbs per collection against the database service, plus workflow-service
// calls for execution, generation, transcription, and maintenance.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/atelier-ai/atelier/pkg/domain"
)

// Options configures a Client.
type Options struct {
	// DatabaseURL is the database service base, e.g. "http://localhost:3000".
	DatabaseURL string
	// WorkflowURL is the workflow service base, e.g. "http://localhost:8000".
	WorkflowURL string
	// Token, when set, is attached to every request as a bearer token.
	Token string
	// Timeout bounds each remote call. Zero selects a 30s default.
	Timeout time.Duration
}

// Client talks to the two remote services. It owns no state beyond its
// connections; every record it returns is a transient copy.
type Client struct {
	db     string
	wf     string
	http   *http.Client
	logger *slog.Logger
}

// New creates a backend client. A non-empty token wraps the transport in an
// oauth2 static token source so every request carries the bearer header.
func New(opts Options, logger *slog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if opts.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, src)
		httpClient.Timeout = timeout
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		db:     trimSlash(opts.DatabaseURL),
		wf:     trimSlash(opts.WorkflowURL),
		http:   httpClient,
		logger: logger.With("component", "backend"),
	}
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// ---------------------------------------------------------------------------
// Database service — collection CRUD
// ---------------------------------------------------------------------------

func (c *Client) collectionURL(col domain.Collection, id string) string {
	u := fmt.Sprintf("%s/api/%s", c.db, col)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

// FetchAll returns every record in a collection. A backend answering with a
// single object instead of an array is normalized into a one-element slice.
func (c *Client) FetchAll(ctx context.Context, col domain.Collection) ([]domain.Item, error) {
	var raw json.RawMessage
	op := fmt.Sprintf("GET /api/%s", col)
	if err := c.do(ctx, http.MethodGet, c.collectionURL(col, ""), op, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeList(raw, op)
}

// Fetch returns one record by identifier.
func (c *Client) Fetch(ctx context.Context, col domain.Collection, id string) (domain.Item, error) {
	var item domain.Item
	op := fmt.Sprintf("GET /api/%s/{id}", col)
	if err := c.do(ctx, http.MethodGet, c.collectionURL(col, id), op, nil, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Create stores a new record and returns it with its assigned identifier.
func (c *Client) Create(ctx context.Context, col domain.Collection, partial domain.Item) (domain.Item, error) {
	var item domain.Item
	op := fmt.Sprintf("POST /api/%s", col)
	if err := c.do(ctx, http.MethodPost, c.collectionURL(col, ""), op, partial, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial change and returns the updated record.
func (c *Client) Update(ctx context.Context, col domain.Collection, id string, partial domain.Item) (domain.Item, error) {
	var item domain.Item
	op := fmt.Sprintf("PATCH /api/%s/{id}", col)
	if err := c.do(ctx, http.MethodPatch, c.collectionURL(col, id), op, partial, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, col domain.Collection, id string) error {
	op := fmt.Sprintf("DELETE /api/%s/{id}", col)
	return c.do(ctx, http.MethodDelete, c.collectionURL(col, id), op, nil, nil)
}

// AddChatMessage appends a message to a chat and returns the updated chat.
func (c *Client) AddChatMessage(ctx context.Context, chatID string, message domain.Item) (domain.Item, error) {
	var item domain.Item
	u := fmt.Sprintf("%s/api/chats/%s/add_message", c.db, url.PathEscape(chatID))
	err := c.do(ctx, http.MethodPatch, u, "PATCH /api/chats/{id}/add_message", domain.Item{"message": message}, &item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateChatMessage replaces one message by identity and returns the
// updated chat.
func (c *Client) UpdateChatMessage(ctx context.Context, chatID string, message domain.Item) (domain.Item, error) {
	var item domain.Item
	u := fmt.Sprintf("%s/api/chats/%s/update_message", c.db, url.PathEscape(chatID))
	err := c.do(ctx, http.MethodPatch, u, "PATCH /api/chats/{id}/update_message", domain.Item{"message": message}, &item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

// Health probes both services. Probe failures land in the report, never in
// an error return.
func (c *Client) Health(ctx context.Context) domain.HealthReport {
	return domain.HealthReport{
		Database: c.probe(ctx, c.db+"/api/health", "GET /api/health"),
		Workflow: c.probe(ctx, c.wf+"/health", "GET /health"),
	}
}

func (c *Client) probe(ctx context.Context, u, op string) domain.ComponentHealth {
	if err := c.do(ctx, http.MethodGet, u, op, nil, nil); err != nil {
		return domain.ComponentHealth{OK: false, Detail: err.Error()}
	}
	return domain.ComponentHealth{OK: true}
}

// ---------------------------------------------------------------------------
// Transport plumbing
// ---------------------------------------------------------------------------

// do performs one HTTP round trip. Non-2xx answers and transport failures
// come back as *RemoteError; out may be nil when the response body is
// irrelevant.
func (c *Client) do(ctx context.Context, method, u, op string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Status: resp.StatusCode, Op: op, Message: "read response: " + err.Error()}
	}

	c.logger.Debug("remote call", "op", op, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Status: resp.StatusCode, Op: op, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// errorMessage extracts the backend's error envelope: {"message": "..."} from
// the database service, {"detail": ...} from the workflow service. Anything
// else is reported raw, truncated.
func errorMessage(data []byte) string {
	var envelope struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if len(envelope.Detail) > 0 {
			var s string
			if json.Unmarshal(envelope.Detail, &s) == nil && s != "" {
				return s
			}
			return string(envelope.Detail)
		}
	}
	msg := string(bytes.TrimSpace(data))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = "remote call failed"
	}
	return msg
}

// normalizeList turns a raw response into a slice of items, accepting either
// an array or a bare object.
func normalizeList(raw json.RawMessage, op string) ([]domain.Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Item{}, nil
	}

	if trimmed[0] == '[' {
		var items []domain.Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%s: decode response: %w", op, err)
		}
		return items, nil
	}

	var single domain.Item
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return []domain.Item{single}, nil
}

// Verify interface compliance at compile time.
var _ domain.Backend = (*Client)(nil)
