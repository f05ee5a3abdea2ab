package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/model-pkgs/registry/client"
)

// ErrNoLocation is returned when the registry answered a download request
// without a redirect location.
var ErrNoLocation = errors.New("no storage location in download response")

// Location describes where an artifact actually lives after the
// registry's download redirect is resolved.
type Location struct {
	// URL is the storage URL the registry redirected to. When the
	// registry served the artifact directly it equals the request URL.
	URL string

	// Direct is true when the registry answered with the payload itself
	// instead of a redirect.
	Direct bool
}

// Resolver turns the registry's redirecting download endpoint into the
// underlying storage location without transferring the payload.
type Resolver struct {
	client *http.Client
	tokens client.TokenSource
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverTimeout sets the resolution request timeout.
func WithResolverTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.client.Timeout = d
	}
}

// WithResolverAuth attaches the session token to resolution requests.
func WithResolverAuth(ts client.TokenSource) ResolverOption {
	return func(r *Resolver) {
		r.tokens = ts
	}
}

// NewResolver creates a resolver. Redirects are captured, not followed:
// the whole point is to hand the Location back to the caller.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve issues the download request and returns the storage location
// the registry redirects to. Failure means the hand-off could not be
// initiated; what happens to the transfer afterwards is outside this
// client's visibility.
func (r *Resolver) Resolve(ctx context.Context, downloadURL string) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if r.tokens != nil {
		if tok := r.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", client.BearerHeader(tok))
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolving download: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		loc := resp.Header.Get("Location")
		if loc == "" {
			return nil, ErrNoLocation
		}
		resolved, err := resp.Request.URL.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("parsing storage location: %w", err)
		}
		return &Location{URL: resolved.String()}, nil

	case resp.StatusCode == http.StatusOK:
		return &Location{URL: downloadURL, Direct: true}, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound

	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
