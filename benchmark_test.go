package registry_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/model-pkgs/registry"
	"github.com/model-pkgs/registry/client"
)

var searchResponse = map[string]interface{}{
	"packages": []map[string]interface{}{
		{"name": "bert-base", "id": 1, "version": "1.0.0"},
		{"name": "bert-large", "id": 2, "version": "1.0.0"},
		{"name": "gpt2-small", "id": 3, "version": "2.1.0"},
	},
}

var packageResponse = map[string]interface{}{
	"name":        "bert-base",
	"version":     "1.0.0",
	"id":          1,
	"s3_bucket":   "models",
	"s3_key":      "bert/weights.bin",
	"description": "base BERT weights",
}

func BenchmarkSearchPackages(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse)
	}))
	defer server.Close()

	reg := registry.New(server.URL, nil)
	ctx := context.Background()
	queries := []registry.SearchQuery{{Name: "*"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reg.SearchPackages(ctx, queries)
	}
}

func BenchmarkGetPackage(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(packageResponse)
	}))
	defer server.Close()

	reg := registry.New(server.URL, nil)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reg.GetPackage(ctx, "1")
	}
}

func BenchmarkRoutes(b *testing.B) {
	routes := registry.NewRoutes("https://registry.example.com")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = routes.Search(1, 100, "bert")
		_ = routes.Package("42")
		_ = routes.Download("42")
	}
}

func BenchmarkNormalizeToken(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = client.NormalizeToken(`"Bearer abc123"`)
	}
}

func BenchmarkSearchPackages_Parallel(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse)
	}))
	defer server.Close()

	reg := registry.New(server.URL, nil)
	ctx := context.Background()
	queries := []registry.SearchQuery{{Name: "*"}}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = reg.SearchPackages(ctx, queries)
		}
	})
}
