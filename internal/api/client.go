package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "PASTE_HTTP_TIMEOUT"
	maxErrorBodyBytes  = 4 << 10
)

// Client is a simple HTTP client for the paste API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

// Usage returns the server's usage text.
func (c *Client) Usage(ctx context.Context) (string, error) {
	return c.do(ctx, http.MethodGet, "/", nil)
}

// Create uploads content as a new paste.
func (c *Client) Create(ctx context.Context, content io.Reader) (CreateResponse, error) {
	if content == nil {
		content = strings.NewReader("")
	}
	body, err := c.do(ctx, http.MethodPost, "/", content)
	if err != nil {
		return CreateResponse{}, err
	}
	return parseCreateResponse(body)
}

// Get fetches the raw content of a paste.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (string, error) {
	return c.do(ctx, http.MethodGet, "/"+id.String(), nil)
}

// GetHighlighted fetches a paste rendered for a terminal using the given
// syntax extension.
func (c *Client) GetHighlighted(ctx context.Context, id uuid.UUID, lang string) (string, error) {
	return c.do(ctx, http.MethodGet, "/"+id.String()+"/"+url.PathEscape(lang), nil)
}

// Delete removes a paste.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, "/"+id.String(), nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", decodeError(resp)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(payload), nil
}

func parseCreateResponse(body string) (CreateResponse, error) {
	raw := strings.TrimSpace(body)
	u, err := url.Parse(raw)
	if err != nil {
		return CreateResponse{}, fmt.Errorf("unexpected create response %q: %w", raw, err)
	}
	id, err := uuid.Parse(path.Base(u.Path))
	if err != nil {
		return CreateResponse{}, fmt.Errorf("unexpected create response %q: missing paste id", raw)
	}
	return CreateResponse{ID: id, URL: raw}, nil
}

func decodeError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &APIError{
		Status:  resp.StatusCode,
		Message: strings.TrimSpace(string(payload)),
	}
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
