package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"dashboard-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Failure is the single error every remote problem is normalized to:
// unreachable host, non-2xx status, or a malformed body. Status is zero when
// the request never produced an HTTP response.
type Failure struct {
	Status  int
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Notifier surfaces a failure to whichever session issued the request.
// Notification and error return both happen on every failure; callers still
// handle the returned error themselves.
type Notifier interface {
	RequestFailed(ctx context.Context, message string)
}

// Client is the remote access layer for the restaurant API. All dashboard
// data lives behind it; the dashboard itself persists nothing.
type Client struct {
	baseURL  string
	httpc    *http.Client
	notifier Notifier
}

// New creates a client for the given base URL.
func New(baseURL string, notifier Notifier) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		httpc:    http.DefaultClient,
		notifier: notifier,
	}
}

// Do issues one JSON request. Non-2xx statuses and transport errors come
// back as *Failure after notifying the session. Empty response bodies decode
// as an empty object rather than failing.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, c.fail(ctx, 0, fmt.Sprintf("Error: %v", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, c.fail(ctx, 0, fmt.Sprintf("Error: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, c.fail(ctx, 0, fmt.Sprintf("Error: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(ctx, resp.StatusCode, fmt.Sprintf("Error: HTTP status %d", resp.StatusCode))
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(ctx, 0, fmt.Sprintf("Error: %v", err))
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(text) {
		return nil, c.fail(ctx, 0, "Error: respuesta inválida del servidor")
	}

	return json.RawMessage(text), nil
}

// List fetches a collection endpoint. A JSON null decodes as an empty list.
func (c *Client) List(ctx context.Context, path string) ([]entity.Record, error) {
	raw, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var records []entity.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, c.fail(ctx, 0, "Error: respuesta inválida del servidor")
	}
	return records, nil
}

// Get fetches a single record by its item path.
func (c *Client) Get(ctx context.Context, path string) (entity.Record, error) {
	raw, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var record entity.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, c.fail(ctx, 0, "Error: respuesta inválida del servidor")
	}
	return record, nil
}

// Post creates a record at a collection's item path.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put replaces a record at its item path.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete removes a record at its item path.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) fail(ctx context.Context, status int, message string) error {
	logger.Error().Int("status", status).Msg(message)
	if c.notifier != nil {
		c.notifier.RequestFailed(ctx, message)
	}
	return &Failure{Status: status, Message: message}
}
