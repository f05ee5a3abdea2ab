package core

import (
	"encoding/json"
	"testing"
)

func TestRatingReadWire_Domain(t *testing.T) {
	raw := `{
		"bus_factor": 0.1,
		"performance_claims": 0.2,
		"ramp_up_time": 0.3,
		"code_quality": 0.4,
		"license": 0.5,
		"dataset_quality": 0.6,
		"reviewedness": 0.7,
		"net_score": 0.8,
		"reproducibility": 0.9
	}`

	var wire RatingReadWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	got := wire.Domain()
	want := PackageRating{
		BusFactor:            0.1,
		Correctness:          0.2,
		RampUp:               0.3,
		ResponsiveMaintainer: 0.4,
		LicenseScore:         0.5,
		GoodPinningPractice:  0.6,
		PullRequest:          0.7,
		NetScore:             0.8,
		Reproducibility:      0.9,
	}
	if got != want {
		t.Errorf("Domain() = %+v, want %+v", got, want)
	}
}

func TestRatingReadWire_AbsentFieldsReadZero(t *testing.T) {
	var wire RatingReadWire
	if err := json.Unmarshal([]byte(`{"net_score": 0.8}`), &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	got := wire.Domain()
	if got.NetScore != 0.8 {
		t.Errorf("NetScore = %v, want 0.8", got.NetScore)
	}
	if got.BusFactor != 0 || got.Reproducibility != 0 {
		t.Errorf("absent fields should be zero: %+v", got)
	}
}

func TestRatingToWire_FieldNames(t *testing.T) {
	rating := PackageRating{
		BusFactor:            0.1,
		Correctness:          0.2,
		RampUp:               0.3,
		ResponsiveMaintainer: 0.4,
		LicenseScore:         0.5,
		GoodPinningPractice:  0.6,
		PullRequest:          0.7,
		NetScore:             0.8,
		Reproducibility:      0.9,
	}

	raw, err := json.Marshal(RatingToWire(rating))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var fields map[string]float64
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := map[string]float64{
		"ramp_up_time":       0.3,
		"bus_factor":         0.1,
		"performance_claims": 0.2,
		"license_score":      0.5,
		"code_quality":       0.4,
		"dataset_quality":    0.6,
		"reviewedness":       0.7,
		"reproducibility":    0.9,
		"net_score":          0.8,
	}
	if len(fields) != len(want) {
		t.Fatalf("wire fields = %v, want exactly %d fields", fields, len(want))
	}
	for name, value := range want {
		if fields[name] != value {
			t.Errorf("field %s = %v, want %v", name, fields[name], value)
		}
	}
}

// The write and read vocabularies differ only in the license field
// (license_score out, license in). Everything else round-trips under the
// same wire name.
func TestRatingRoundTrip(t *testing.T) {
	original := PackageRating{
		BusFactor:            0.15,
		Correctness:          0.25,
		RampUp:               0.35,
		ResponsiveMaintainer: 0.45,
		LicenseScore:         0.55,
		GoodPinningPractice:  0.65,
		PullRequest:          0.75,
		NetScore:             0.85,
		Reproducibility:      0.95,
	}

	written, err := json.Marshal(RatingToWire(original))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// Simulate the backend storing the write payload and serving it back
	// under the read vocabulary.
	var stored map[string]float64
	if err := json.Unmarshal(written, &stored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	stored["license"] = stored["license_score"]
	delete(stored, "license_score")

	served, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var read RatingReadWire
	if err := json.Unmarshal(served, &read); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got := read.Domain(); got != original {
		t.Errorf("round trip = %+v, want %+v", got, original)
	}
}

func TestWireID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"number", `7`, "7"},
		{"large number", `9007199254740993`, "9007199254740993"},
		{"string", `"abc-123"`, "abc-123"},
		{"float survives as text", `1.5`, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id WireID
			if err := json.Unmarshal([]byte(tt.raw), &id); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if id.String() != tt.want {
				t.Errorf("WireID = %q, want %q", id.String(), tt.want)
			}
		})
	}
}

func TestPackageWire_Domain(t *testing.T) {
	raw := `{
		"name": "bert-base",
		"version": "2.1.0",
		"id": 42,
		"s3_bucket": "models",
		"s3_key": "bert/weights.bin",
		"description": "a description"
	}`

	var wire PackageWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	pkg := wire.Domain()
	if pkg.Metadata.ID != "42" {
		t.Errorf("ID = %q, want %q", pkg.Metadata.ID, "42")
	}
	if pkg.Data.URL != "s3://models/bert/weights.bin" {
		t.Errorf("URL = %q", pkg.Data.URL)
	}
	if pkg.Data.Content != "a description" {
		t.Errorf("Content = %q", pkg.Data.Content)
	}
}

func TestPackageWire_NoStorageKey(t *testing.T) {
	var wire PackageWire
	if err := json.Unmarshal([]byte(`{"name":"x","version":"1.0.0","id":"1"}`), &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if url := wire.Domain().Data.URL; url != "" {
		t.Errorf("URL = %q, want empty when no s3_key", url)
	}
}

func TestFailingMetricWire_Shapes(t *testing.T) {
	raw := `{"failing_metrics": [{"metric": "BusFactor", "score": 0.1, "threshold": 0.5}, "LicenseScore"]}`

	var wire QualityGateWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(wire.FailingMetrics) != 2 {
		t.Fatalf("got %d metrics, want 2", len(wire.FailingMetrics))
	}
	if wire.FailingMetrics[0].Metric != "BusFactor" || wire.FailingMetrics[0].Threshold != 0.5 {
		t.Errorf("structured metric = %+v", wire.FailingMetrics[0])
	}
	if wire.FailingMetrics[1].Metric != "LicenseScore" {
		t.Errorf("bare string metric = %+v", wire.FailingMetrics[1])
	}
}

func TestSearchWire_Domain(t *testing.T) {
	raw := `{"packages": [{"name": "foo", "id": 7, "version": "1.0.0"}]}`

	var wire SearchWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	result := wire.Domain()
	if len(result.Packages) != 1 {
		t.Fatalf("got %d packages, want 1", len(result.Packages))
	}
	want := PackageMetadata{Name: "foo", ID: "7", Version: "1.0.0"}
	if result.Packages[0] != want {
		t.Errorf("package = %+v, want %+v", result.Packages[0], want)
	}
}
