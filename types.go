package registry

import (
	"github.com/model-pkgs/registry/client"
	"github.com/model-pkgs/registry/internal/core"
)

// Re-export types from internal/core
type (
	// User is the identity reported by the registry for the current token.
	User = core.User

	// PackageMetadata identifies a package in the registry.
	PackageMetadata = core.PackageMetadata

	// PackageData carries the content reference for a package.
	PackageData = core.PackageData

	// Package is a full package record.
	Package = core.Package

	// PackageRating is the fixed set of quality scores for a package.
	PackageRating = core.PackageRating

	// CostEntry holds the download cost figures for a single package.
	CostEntry = core.CostEntry

	// PackageCost maps package IDs to their cost figures.
	PackageCost = core.PackageCost

	// HistoryEntry records one action taken on a package.
	HistoryEntry = core.HistoryEntry

	// SearchQuery filters a package search.
	SearchQuery = core.SearchQuery

	// SearchResult is one page of search matches.
	SearchResult = core.SearchResult

	// HealthStatus reports registry liveness.
	HealthStatus = core.HealthStatus

	// IngestResult is the registry's response to a successful ingest.
	IngestResult = core.IngestResult

	// FailingMetric names a quality-gate metric below its threshold.
	FailingMetric = core.FailingMetric
)

// Re-export types from client
type (
	// Client is the HTTP client used for registry API calls.
	Client = client.Client

	// Option configures a Client.
	Option = client.Option

	// TokenSource supplies the current bearer token.
	TokenSource = client.TokenSource

	// StaticToken is a fixed-value TokenSource.
	StaticToken = client.StaticToken
)

// Error types
type (
	AuthenticationError = client.AuthenticationError
	RequestError        = client.RequestError
	QualityGateError    = client.QualityGateError
	NetworkError        = client.NetworkError
)

// NewClient creates a new client with the given options.
var NewClient = client.NewClient

// DefaultClient returns a client with sensible defaults.
var DefaultClient = client.DefaultClient

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithTokenSource sets where the client reads the bearer token from.
var WithTokenSource = client.WithTokenSource

// NormalizeToken strips a wrapping quote pair and a "bearer" prefix from
// a raw token, each exactly once.
var NormalizeToken = client.NormalizeToken

// SortPackages orders search results by name, then by version descending.
var SortPackages = core.SortPackages

// LatestVersion returns the highest-versioned entry matching name.
var LatestVersion = core.LatestVersion
