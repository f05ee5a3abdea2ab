package registry

import (
	"net/url"
	"strconv"
	"strings"
)

// Routes builds endpoint URLs for a registry deployment. The model rating
// read and the artifact download live on distinct base paths from the
// package CRUD surface; that split is the backend's, not ours.
type Routes struct {
	base string
}

// NewRoutes creates a route builder rooted at baseURL.
func NewRoutes(baseURL string) Routes {
	return Routes{base: strings.TrimSuffix(baseURL, "/")}
}

// Base returns the deployment base URL without a trailing slash.
func (r Routes) Base() string { return r.base }

func (r Routes) Authenticate() string { return r.base + "/authenticate" }

func (r Routes) RegisterUser() string { return r.base + "/api/v1/user/register" }

func (r Routes) CurrentUser() string { return r.base + "/api/v1/user/me" }

func (r Routes) Health() string { return r.base + "/api/v1/system/health" }

func (r Routes) Reset() string { return r.base + "/api/v1/system/reset" }

// Search returns the paginated package listing URL. An empty namePattern
// omits the filter parameter entirely.
func (r Routes) Search(page, pageSize int, namePattern string) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	if namePattern != "" {
		params.Set("name_pattern", namePattern)
	}
	return r.base + "/api/v1/package?" + params.Encode()
}

func (r Routes) Package(id string) string {
	return r.base + "/api/v1/package/" + url.PathEscape(id)
}

func (r Routes) Ingest() string { return r.base + "/api/v1/package/ingest" }

// RateRead is the model rating read endpoint (baseline API surface).
func (r Routes) RateRead(id string) string {
	return r.base + "/artifact/model/" + url.PathEscape(id) + "/rate"
}

// RateWrite is the package rating write endpoint.
func (r Routes) RateWrite(id string) string {
	return r.base + "/api/v1/package/" + url.PathEscape(id) + "/rate"
}

// Download locates a model artifact. The backend answers with a redirect
// to third-party storage rather than the payload itself.
func (r Routes) Download(id string) string {
	return r.base + "/download/model/" + url.PathEscape(id)
}
