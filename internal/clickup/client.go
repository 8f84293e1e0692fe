// Package clickup is a small client for the ClickUp v2 REST API.
package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultBaseURL is the public ClickUp API endpoint.
const DefaultBaseURL = "https://api.clickup.com/api/v2"

// APIError is returned for non-2xx responses and for bodies that are not JSON.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ClickUp API error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the ClickUp API with a personal token.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	mu sync.Mutex
	me *User
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client authenticating with token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and decodes the JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	c.logger.Debug("clickup request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if !json.Valid(data) {
		return &APIError{StatusCode: resp.StatusCode, Message: "response was not valid JSON"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// errorMessage picks the most specific message ClickUp put in an error body.
func errorMessage(data []byte, status int) string {
	var body struct {
		Err   string `json:"err"`
		Error string `json:"error"`
		ECode string `json:"ECODE"`
	}
	// Error bodies are not always objects; fall through to the status text.
	_ = json.Unmarshal(data, &body)
	switch {
	case body.Err != "":
		return body.Err
	case body.Error != "":
		return body.Error
	case body.ECode != "":
		return body.ECode
	default:
		return http.StatusText(status)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Me returns the authenticated user. The result is memoized per client;
// concurrent first calls may each hit the API, which is harmless.
func (c *Client) Me(ctx context.Context) (User, error) {
	c.mu.Lock()
	if c.me != nil {
		u := *c.me
		c.mu.Unlock()
		return u, nil
	}
	c.mu.Unlock()

	var resp struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/user", nil, &resp); err != nil {
		return User{}, err
	}

	c.mu.Lock()
	c.me = &resp.User
	c.mu.Unlock()
	return resp.User, nil
}
