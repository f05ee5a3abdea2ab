package core

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// The registry speaks snake_case; the client domain model is PascalCase.
// All translation between the two lives here as static, bidirectional
// tables so the two schemas cannot drift in ad hoc call sites.

// WireID tolerates the registry sending IDs as either JSON numbers or
// strings. Either way the client-side identity is the string form.
type WireID string

func (id *WireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = WireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = WireID(n.String())
	return nil
}

func (id WireID) String() string { return string(id) }

// UserWire is the GET /api/v1/user/me response.
type UserWire struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func (w UserWire) Domain() User {
	return User{Name: w.Username, IsAdmin: w.IsAdmin}
}

// RegisterUserWire is the POST /api/v1/user/register request body.
type RegisterUserWire struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// AuthenticateWire is the PUT /authenticate request body.
type AuthenticateWire struct {
	User   AuthUserWire   `json:"user"`
	Secret AuthSecretWire `json:"secret"`
}

type AuthUserWire struct {
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

type AuthSecretWire struct {
	Password string `json:"password"`
}

// HealthWire is the GET /api/v1/system/health response.
type HealthWire struct {
	Status         string `json:"status"`
	DatabaseStatus string `json:"database_status"`
}

func (w HealthWire) Domain() HealthStatus {
	return HealthStatus{Status: w.Status, DatabaseStatus: w.DatabaseStatus}
}

// PackageSummaryWire is one entry of the GET /api/v1/package listing.
type PackageSummaryWire struct {
	Name    string `json:"name"`
	ID      WireID `json:"id"`
	Version string `json:"version"`
}

func (w PackageSummaryWire) Domain() PackageMetadata {
	return PackageMetadata{Name: w.Name, Version: w.Version, ID: w.ID.String()}
}

// SearchWire is the GET /api/v1/package response envelope.
type SearchWire struct {
	Packages []PackageSummaryWire `json:"packages"`
}

func (w SearchWire) Domain() SearchResult {
	out := SearchResult{Packages: make([]PackageMetadata, len(w.Packages))}
	for i, p := range w.Packages {
		out.Packages[i] = p.Domain()
	}
	return out
}

// PackageWire is the GET /api/v1/package/{id} response.
type PackageWire struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	ID          WireID `json:"id"`
	S3Bucket    string `json:"s3_bucket"`
	S3Key       string `json:"s3_key"`
	Description string `json:"description"`
}

func (w PackageWire) Domain() Package {
	pkg := Package{
		Metadata: PackageMetadata{Name: w.Name, Version: w.Version, ID: w.ID.String()},
		Data:     PackageData{Content: w.Description},
	}
	if w.S3Key != "" {
		pkg.Data.URL = "s3://" + w.S3Bucket + "/" + w.S3Key
	}
	return pkg
}

// IngestRequestWire is the POST /api/v1/package/ingest request body.
type IngestRequestWire struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// IngestWire is the ingest success response.
type IngestWire struct {
	ArtifactID WireID `json:"artifact_id"`
	ModelName  string `json:"model_name"`
	Message    string `json:"message"`
}

func (w IngestWire) Domain() IngestResult {
	return IngestResult{
		ArtifactID: w.ArtifactID.String(),
		ModelName:  w.ModelName,
		Message:    w.Message,
	}
}

// FailingMetricWire is one entry of the 424 quality-gate failure body.
// The registry has shipped both bare strings and structured objects here,
// so decoding tolerates either shape.
type FailingMetricWire struct {
	Metric    string  `json:"metric"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
}

func (w *FailingMetricWire) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = FailingMetricWire{Metric: s}
		return nil
	}
	type alias FailingMetricWire
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*w = FailingMetricWire(a)
	return nil
}

func (w FailingMetricWire) Domain() FailingMetric {
	return FailingMetric{Metric: w.Metric, Score: w.Score, Threshold: w.Threshold}
}

// QualityGateWire is the HTTP 424 ingest response body.
type QualityGateWire struct {
	Message        string              `json:"message"`
	FailingMetrics []FailingMetricWire `json:"failing_metrics"`
}

// RatingReadWire is the GET /artifact/model/{id}/rate response. The read
// vocabulary differs from the write vocabulary (`license` here versus
// `license_score` on writes); both reflect the registry schema exactly.
type RatingReadWire struct {
	BusFactor         float64 `json:"bus_factor"`
	PerformanceClaims float64 `json:"performance_claims"`
	RampUpTime        float64 `json:"ramp_up_time"`
	CodeQuality       float64 `json:"code_quality"`
	License           float64 `json:"license"`
	DatasetQuality    float64 `json:"dataset_quality"`
	Reviewedness      float64 `json:"reviewedness"`
	NetScore          float64 `json:"net_score"`
	Reproducibility   float64 `json:"reproducibility"`
}

func (w RatingReadWire) Domain() PackageRating {
	return PackageRating{
		BusFactor:            w.BusFactor,
		Correctness:          w.PerformanceClaims,
		RampUp:               w.RampUpTime,
		ResponsiveMaintainer: w.CodeQuality,
		LicenseScore:         w.License,
		GoodPinningPractice:  w.DatasetQuality,
		PullRequest:          w.Reviewedness,
		NetScore:             w.NetScore,
		Reproducibility:      w.Reproducibility,
	}
}

// RatingWriteWire is the POST /api/v1/package/{id}/rate request body.
type RatingWriteWire struct {
	RampUpTime        float64 `json:"ramp_up_time"`
	BusFactor         float64 `json:"bus_factor"`
	PerformanceClaims float64 `json:"performance_claims"`
	LicenseScore      float64 `json:"license_score"`
	CodeQuality       float64 `json:"code_quality"`
	DatasetQuality    float64 `json:"dataset_quality"`
	Reviewedness      float64 `json:"reviewedness"`
	Reproducibility   float64 `json:"reproducibility"`
	NetScore          float64 `json:"net_score"`
}

// RatingToWire maps a domain rating onto the write vocabulary.
func RatingToWire(r PackageRating) RatingWriteWire {
	return RatingWriteWire{
		RampUpTime:        r.RampUp,
		BusFactor:         r.BusFactor,
		PerformanceClaims: r.Correctness,
		LicenseScore:      r.LicenseScore,
		CodeQuality:       r.ResponsiveMaintainer,
		DatasetQuality:    r.GoodPinningPractice,
		Reviewedness:      r.PullRequest,
		Reproducibility:   r.Reproducibility,
		NetScore:          r.NetScore,
	}
}

// FormatScore renders a score for display, trimming float noise.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
