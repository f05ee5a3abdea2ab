// Package client provides the shared HTTP client for the registry API:
// request construction, bearer-token handling, and the error taxonomy that
// every registry operation surfaces.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultUserAgent = "model-pkgs-registry"

// maxErrorBody bounds how much of an error response is retained for
// message extraction.
const maxErrorBody = 64 << 10

// Client is an HTTP client for registry API calls. It attaches a normalized
// bearer token from its TokenSource on every request unless the request
// opts out. It never retries: every failure is surfaced to the caller.
type Client struct {
	httpClient *http.Client
	userAgent  string
	tokens     TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTokenSource sets where the client reads the bearer token from.
// The source is consulted on every request, so a login or logout between
// calls takes effect immediately.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClient returns a client with a 30s timeout and no token source.
func DefaultClient() *Client {
	return NewClient()
}

// WithTokenSource returns a copy of the client reading tokens from ts.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	dup := *c
	dup.tokens = ts
	return &dup
}

// WithUserAgent returns a copy of the client using the given User-Agent.
func (c *Client) WithUserAgent(ua string) *Client {
	dup := *c
	dup.userAgent = ua
	return &dup
}

// Request describes one registry API call.
type Request struct {
	// Op names the operation for error messages ("search packages").
	Op string

	Method string
	URL    string

	// Body is JSON-encoded as the request body when non-nil.
	Body any

	// NoAuth skips the Authorization header even when a token is
	// available. Used by authenticate and the health probe.
	NoAuth bool
}

// DoJSON performs the request and decodes a JSON response into out.
// A nil out or an empty response body skips decoding.
func (c *Client) DoJSON(ctx context.Context, r Request, out any) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: r.Op, Err: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RequestError{Op: r.Op, StatusCode: resp.StatusCode, Message: "failed to " + r.Op, Body: body}
	}
	return nil
}

// DoText performs the request and returns the response body as text.
func (c *Client) DoText(ctx context.Context, r Request) (string, error) {
	resp, err := c.do(ctx, r)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Op: r.Op, Err: err}
	}
	return string(body), nil
}

// GetJSON is shorthand for an authenticated GET decoded into out.
func (c *Client) GetJSON(ctx context.Context, op, url string, out any) error {
	return c.DoJSON(ctx, Request{Op: op, Method: http.MethodGet, URL: url}, out)
}

func (c *Client) do(ctx context.Context, r Request) (*http.Response, error) {
	var body io.Reader
	if r.Body != nil {
		encoded, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &RequestError{Op: r.Op, Message: "failed to " + r.Op}
		}
		body = bytes.NewReader(encoded)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, &RequestError{Op: r.Op, Message: "failed to " + r.Op}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !r.NoAuth && c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", BearerHeader(tok))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: r.Op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newRequestError(r.Op, resp.StatusCode, raw)
	}
	return resp, nil
}
