package client

import "strings"

// TokenSource supplies the current bearer token. An empty string means
// no token is held and no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value TokenSource.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// NormalizeToken strips a wrapping quote pair and a leading "bearer"
// prefix (any casing) from a raw token, each exactly once. The registry
// has been seen returning tokens double-wrapped as `"Bearer abc123"`;
// normalizing before re-adding the prefix keeps the header well-formed
// either way.
func NormalizeToken(raw string) string {
	tok := strings.TrimSpace(raw)
	tok = strings.TrimPrefix(tok, `"`)
	if len(tok) >= 6 && strings.EqualFold(tok[:6], "bearer") {
		tok = strings.TrimLeft(tok[6:], " ")
	}
	return strings.TrimSuffix(tok, `"`)
}

// BearerHeader builds the Authorization header value for a raw token.
func BearerHeader(raw string) string {
	return "Bearer " + NormalizeToken(raw)
}
