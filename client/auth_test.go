package client

import "testing"

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "abc123", "abc123"},
		{"bearer lowercase", "bearer abc123", "abc123"},
		{"bearer capitalized", "Bearer abc123", "abc123"},
		{"bearer uppercase", "BEARER abc123", "abc123"},
		{"bearer no space", "bearerabc123", "abc123"},
		{"quoted", `"abc123"`, "abc123"},
		{"quoted bearer", `"Bearer abc123"`, "abc123"},
		{"leading whitespace", "  Bearer abc123", "abc123"},
		{"strips only once", `""abc123""`, `"abc123"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeToken(tt.raw); got != tt.want {
				t.Errorf("NormalizeToken(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBearerHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"abc123", "Bearer abc123"},
		{"bearer abc123", "Bearer abc123"},
		{`"Bearer abc123"`, "Bearer abc123"},
	}

	for _, tt := range tests {
		if got := BearerHeader(tt.raw); got != tt.want {
			t.Errorf("BearerHeader(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
