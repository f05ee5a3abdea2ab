// Package registry provides a client for a model/package registry API:
// authentication, package search and inspection, model ingest behind a
// quality gate, rating reads and writes, and admin operations.
//
// Basic usage:
//
//	reg := registry.New("https://registry.example.com", nil)
//	token, err := reg.Authenticate(ctx, "alice", "pw1", false)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	reg = registry.New("https://registry.example.com",
//		registry.NewClient(registry.WithTokenSource(registry.StaticToken(token))))
//	result, err := reg.SearchPackages(ctx, []registry.SearchQuery{{Name: "*"}})
//
// Calls are independent, one HTTP request each, and never retried.
// Concurrent calls race freely: there is no de-duplication or sequencing
// of in-flight requests, and the later response wins in whatever order
// the two resolve.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/model-pkgs/registry/client"
	"github.com/model-pkgs/registry/internal/core"
)

const (
	searchPage     = 1
	searchPageSize = 100

	// ingestedVersion is the version assigned to freshly ingested models;
	// the backend does not report one.
	ingestedVersion = "1.0.0"
)

// Wildcard is the search name meaning "match all". The backend has no
// wildcard semantics, so it is encoded as filter absence on the wire.
const Wildcard = "*"

// Registry translates domain-level operations into HTTP requests against
// one registry deployment.
type Registry struct {
	routes Routes
	client *client.Client
}

// New creates a registry client for the deployment at baseURL.
// If c is nil, DefaultClient() is used.
func New(baseURL string, c *client.Client) *Registry {
	if c == nil {
		c = client.DefaultClient()
	}
	return &Registry{routes: NewRoutes(baseURL), client: c}
}

// Routes returns the endpoint builder for this deployment.
func (r *Registry) Routes() Routes {
	return r.routes
}

// Authenticate exchanges credentials for a bearer token. The returned
// token is normalized: any "bearer" prefix or wrapping quotes the backend
// included are stripped. Credential rejection surfaces as
// *AuthenticationError carrying the backend-provided message.
func (r *Registry) Authenticate(ctx context.Context, username, password string, isAdmin bool) (string, error) {
	body := core.AuthenticateWire{
		User:   core.AuthUserWire{Name: username, IsAdmin: isAdmin},
		Secret: core.AuthSecretWire{Password: password},
	}
	text, err := r.client.DoText(ctx, client.Request{
		Op:     "authenticate",
		Method: http.MethodPut,
		URL:    r.routes.Authenticate(),
		Body:   body,
		NoAuth: true,
	})
	if err != nil {
		var reqErr *client.RequestError
		if errors.As(err, &reqErr) {
			return "", &client.AuthenticationError{Message: reqErr.Message}
		}
		return "", err
	}
	return client.NormalizeToken(text), nil
}

// RegisterUser creates a new non-admin account. An empty email defaults
// to <username>@example.com.
func (r *Registry) RegisterUser(ctx context.Context, username, password, email string) error {
	if email == "" {
		email = username + "@example.com"
	}
	return r.client.DoJSON(ctx, client.Request{
		Op:     "create user",
		Method: http.MethodPost,
		URL:    r.routes.RegisterUser(),
		Body:   core.RegisterUserWire{Username: username, Password: password, Email: email},
	}, nil)
}

// CurrentUser resolves the identity behind the current token.
func (r *Registry) CurrentUser(ctx context.Context) (core.User, error) {
	var wire core.UserWire
	if err := r.client.GetJSON(ctx, "get user info", r.routes.CurrentUser(), &wire); err != nil {
		return core.User{}, err
	}
	return wire.Domain(), nil
}

// CheckHealth probes registry liveness. Unauthenticated.
func (r *Registry) CheckHealth(ctx context.Context) (core.HealthStatus, error) {
	var wire core.HealthWire
	err := r.client.DoJSON(ctx, client.Request{
		Op:     "check health",
		URL:    r.routes.Health(),
		NoAuth: true,
	}, &wire)
	if err != nil {
		return core.HealthStatus{}, err
	}
	return wire.Domain(), nil
}

// SearchPackages lists packages matching the first query's name. The
// wildcard name "*" (and an absent query) lists everything: the filter is
// omitted from the outgoing request rather than sent literally.
func (r *Registry) SearchPackages(ctx context.Context, queries []core.SearchQuery) (core.SearchResult, error) {
	pattern := ""
	if len(queries) > 0 && queries[0].Name != Wildcard {
		pattern = queries[0].Name
	}
	return r.search(ctx, "search packages", pattern)
}

// SearchByRegex lists packages whose names match the given pattern.
// The wildcard "*" is treated as no filter, same as SearchPackages.
func (r *Registry) SearchByRegex(ctx context.Context, pattern string) ([]core.PackageMetadata, error) {
	if pattern == Wildcard {
		pattern = ""
	}
	result, err := r.search(ctx, "search", pattern)
	if err != nil {
		return nil, err
	}
	return result.Packages, nil
}

func (r *Registry) search(ctx context.Context, op, pattern string) (core.SearchResult, error) {
	var wire core.SearchWire
	url := r.routes.Search(searchPage, searchPageSize, pattern)
	if err := r.client.GetJSON(ctx, op, url, &wire); err != nil {
		return core.SearchResult{}, err
	}
	return wire.Domain(), nil
}

// GetPackage fetches one package record by ID.
func (r *Registry) GetPackage(ctx context.Context, id string) (core.Package, error) {
	var wire core.PackageWire
	if err := r.client.GetJSON(ctx, "get package", r.routes.Package(id), &wire); err != nil {
		return core.Package{}, err
	}
	return wire.Domain(), nil
}

// UploadPackage registers a new package. Only URL uploads are supported;
// the content is ingested by the backend from the given URL, subject to
// the quality gate. An HTTP 424 response surfaces as *QualityGateError
// listing the failing metrics.
func (r *Registry) UploadPackage(ctx context.Context, data core.PackageData) (core.Package, error) {
	if data.URL == "" {
		return core.Package{}, errors.New("only URL uploads are supported")
	}
	result, err := r.ingest(ctx, "upload package", core.IngestRequestWire{URL: data.URL})
	if err != nil {
		return core.Package{}, err
	}
	return core.Package{
		Metadata: core.PackageMetadata{
			Name:    result.ModelName,
			Version: ingestedVersion,
			ID:      result.ArtifactID,
		},
		Data: core.PackageData{URL: data.URL},
	}, nil
}

// IngestModel registers a model by URL with an optional explicit name.
// Quality-gate rejections surface as *QualityGateError.
func (r *Registry) IngestModel(ctx context.Context, url, name string) (core.IngestResult, error) {
	return r.ingest(ctx, "ingest", core.IngestRequestWire{URL: url, Name: name})
}

func (r *Registry) ingest(ctx context.Context, op string, body core.IngestRequestWire) (core.IngestResult, error) {
	var wire core.IngestWire
	err := r.client.DoJSON(ctx, client.Request{
		Op:     op,
		Method: http.MethodPost,
		URL:    r.routes.Ingest(),
		Body:   body,
	}, &wire)
	if err != nil {
		var reqErr *client.RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusFailedDependency {
			return core.IngestResult{}, qualityGateError(reqErr)
		}
		return core.IngestResult{}, err
	}
	return wire.Domain(), nil
}

// qualityGateError decodes the 424 response body into the structured
// failing-metrics list.
func qualityGateError(reqErr *client.RequestError) error {
	var wire core.QualityGateWire
	_ = json.Unmarshal(reqErr.Body, &wire)

	metrics := make([]core.FailingMetric, 0, len(wire.FailingMetrics))
	for _, m := range wire.FailingMetrics {
		metrics = append(metrics, m.Domain())
	}
	return &client.QualityGateError{Message: wire.Message, FailingMetrics: metrics}
}

// DeletePackage removes a package by ID.
func (r *Registry) DeletePackage(ctx context.Context, id string) error {
	return r.client.DoJSON(ctx, client.Request{
		Op:     "delete package",
		Method: http.MethodDelete,
		URL:    r.routes.Package(id),
	}, nil)
}

// GetPackageRating fetches the quality scores for a model.
func (r *Registry) GetPackageRating(ctx context.Context, id string) (core.PackageRating, error) {
	var wire core.RatingReadWire
	if err := r.client.GetJSON(ctx, "get rating", r.routes.RateRead(id), &wire); err != nil {
		return core.PackageRating{}, err
	}
	return wire.Domain(), nil
}

// RatePackage submits quality scores for a package.
func (r *Registry) RatePackage(ctx context.Context, id string, rating core.PackageRating) error {
	return r.client.DoJSON(ctx, client.Request{
		Op:     "rate package",
		Method: http.MethodPost,
		URL:    r.routes.RateWrite(id),
		Body:   core.RatingToWire(rating),
	}, nil)
}

// GetPackageCost returns the cost figures for a package. The backend
// endpoint does not exist yet; callers always receive a well-formed
// zero-cost result rather than an error.
func (r *Registry) GetPackageCost(ctx context.Context, id string) (core.PackageCost, error) {
	return core.PackageCost{id: core.CostEntry{TotalCost: 0}}, nil
}

// GetPackageHistory returns the action history for a package. The backend
// endpoint does not exist yet; callers always receive an empty history
// rather than an error.
func (r *Registry) GetPackageHistory(ctx context.Context, id string) ([]core.HistoryEntry, error) {
	return []core.HistoryEntry{}, nil
}

// ResetRegistry restores the registry to its default state. Admin only.
func (r *Registry) ResetRegistry(ctx context.Context) error {
	return r.client.DoJSON(ctx, client.Request{
		Op:     "reset",
		Method: http.MethodPost,
		URL:    r.routes.Reset(),
	}, nil)
}

// DownloadURL returns the location to hand a download off to. The backend
// responds there with a redirect to third-party storage; resolving and
// streaming it is the fetch package's job. No request is issued here.
func (r *Registry) DownloadURL(id string) string {
	return r.routes.Download(id)
}
