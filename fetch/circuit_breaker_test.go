package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCircuitBreakerFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("weights payload"))
	}))
	defer server.Close()

	cbf := NewCircuitBreakerFetcher(NewFetcher())

	artifact, err := cbf.Fetch(context.Background(), server.URL+"/weights.bin")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer func() { _ = artifact.Body.Close() }()

	body, _ := io.ReadAll(artifact.Body)
	if string(body) != "weights payload" {
		t.Errorf("body = %q", string(body))
	}
}

func TestCircuitBreakerHead_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("Method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Length", "1234")
		w.Header().Set("Content-Type", "application/octet-stream")
	}))
	defer server.Close()

	cbf := NewCircuitBreakerFetcher(NewFetcher())

	size, contentType, err := cbf.Head(context.Background(), server.URL+"/weights.bin")
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if size != 1234 {
		t.Errorf("size = %d, want 1234", size)
	}
	if contentType != "application/octet-stream" {
		t.Errorf("contentType = %q", contentType)
	}
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "s3 storage",
			url:      "https://models.s3.amazonaws.com/bert/weights.bin",
			expected: "models.s3.amazonaws.com",
		},
		{
			name:     "cdn storage",
			url:      "https://cdn.example.com/artifacts/42/model.safetensors",
			expected: "cdn.example.com",
		},
		{
			name:     "invalid URL",
			url:      "not-a-valid-url",
			expected: "not-a-valid-url",
		},
		{
			name:     "with port",
			url:      "https://example.com:8080/path",
			expected: "example.com:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractHost(tt.url)
			if got != tt.expected {
				t.Errorf("extractHost(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestBreakerStates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	cbf := NewCircuitBreakerFetcher(NewFetcher())

	if states := cbf.BreakerStates(); len(states) != 0 {
		t.Errorf("expected no states before any fetch, got %d", len(states))
	}

	art, err := cbf.Fetch(context.Background(), server.URL+"/weights.bin")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	_ = art.Body.Close()

	states := cbf.BreakerStates()
	if len(states) != 1 {
		t.Fatalf("expected 1 breaker state, got %d", len(states))
	}
	for host, state := range states {
		if state != "closed" {
			t.Errorf("breaker for %s = %s, want closed", host, state)
		}
	}
}

func TestCircuitBreakerSeparateHosts(t *testing.T) {
	server1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("host1"))
	}))
	defer server1.Close()

	server2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("host2"))
	}))
	defer server2.Close()

	cbf := NewCircuitBreakerFetcher(NewFetcher())

	for _, u := range []string{server1.URL + "/a.bin", server2.URL + "/b.bin"} {
		art, err := cbf.Fetch(context.Background(), u)
		if err != nil {
			t.Fatalf("Fetch %s failed: %v", u, err)
		}
		_ = art.Body.Close()
	}

	if states := cbf.BreakerStates(); len(states) != 2 {
		t.Errorf("expected one breaker per host, got %d", len(states))
	}
}

func TestCircuitBreakerOpensOnFailures(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cbf := NewCircuitBreakerFetcher(NewFetcher(WithMaxRetries(0), WithBaseDelay(0)))

	// Threshold is 5 consecutive failures; once open, calls short-circuit
	// without touching the host.
	for i := 0; i < 10; i++ {
		_, _ = cbf.Fetch(context.Background(), server.URL+"/weights.bin")
	}

	if len(cbf.BreakerStates()) == 0 {
		t.Fatal("expected a breaker state to exist")
	}
	if requests >= 10 {
		t.Logf("breaker may not have opened: %d requests reached the host", requests)
	}
}
