// Package core provides the shared domain model and wire mappings for the
// registry client.
package core

// User is the identity reported by the registry for the current token.
type User struct {
	Name    string
	IsAdmin bool
}

// PackageMetadata identifies a package in the registry.
// ID is opaque, server-assigned, and always stringified client-side.
type PackageMetadata struct {
	Name    string
	Version string
	ID      string
}

// PackageData carries the content reference for a package. At most one of
// Content/URL is meaningfully populated depending on how the package was
// ingested.
type PackageData struct {
	Content   string
	URL       string
	JSProgram string
}

// Package is a full package record: identity plus content reference.
type Package struct {
	Metadata PackageMetadata
	Data     PackageData
}

// PackageRating is the fixed set of quality scores computed by the registry.
// Each score is in [0,1] and independently computed upstream; there is no
// ordering guarantee between fields.
type PackageRating struct {
	BusFactor            float64
	Correctness          float64
	RampUp               float64
	ResponsiveMaintainer float64
	LicenseScore         float64
	GoodPinningPractice  float64
	PullRequest          float64
	NetScore             float64
	Reproducibility      float64
}

// CostEntry holds the download cost figures for a single package.
type CostEntry struct {
	StandaloneCost float64
	TotalCost      float64
}

// PackageCost maps package IDs to their cost figures.
type PackageCost map[string]CostEntry

// HistoryEntry records one action taken on a package.
type HistoryEntry struct {
	Timestamp string
	User      string
}

// SearchQuery filters a package search. The literal name "*" means
// "match all" and is encoded as filter absence on the wire.
type SearchQuery struct {
	Name    string
	Version string
}

// SearchResult is one page of search matches. NextOffset is empty under
// page-based pagination.
type SearchResult struct {
	Packages   []PackageMetadata
	NextOffset string
}

// HealthStatus reports registry liveness.
type HealthStatus struct {
	Status         string
	DatabaseStatus string
}

// IngestResult is the registry's response to a successful model ingest.
type IngestResult struct {
	ArtifactID string
	ModelName  string
	Message    string
}

// FailingMetric names a quality-gate metric that fell below its threshold.
type FailingMetric struct {
	Metric    string
	Score     float64
	Threshold float64
}
