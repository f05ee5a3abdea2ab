package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/model-pkgs/registry/internal/core"
)

// AuthenticationError reports a credential rejection during login. The
// message is the backend-provided text when available.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// RequestError reports a non-success HTTP response. Message holds the
// backend-provided text when the body carried one, otherwise a generic
// per-operation fallback. Body retains the raw response for callers that
// need shape-specific handling (the ingest quality gate).
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsNotFound reports whether the error represents a 404 response.
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == 404
}

// NetworkError reports a transport failure before any response was
// received (offline, DNS, timeout).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// QualityGateError reports an ingest rejected with HTTP 424: the model
// failed one or more minimum-score thresholds.
type QualityGateError struct {
	Message        string
	FailingMetrics []core.FailingMetric
}

func (e *QualityGateError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Quality gate check failed"
	}
	if names := e.MetricNames(); len(names) > 0 {
		msg += "\n\nFailing metrics: " + strings.Join(names, ", ")
	}
	return msg
}

// MetricNames returns the names of the failing metrics, in response order.
func (e *QualityGateError) MetricNames() []string {
	names := make([]string, 0, len(e.FailingMetrics))
	for _, m := range e.FailingMetrics {
		if m.Metric != "" {
			names = append(names, m.Metric)
		}
	}
	return names
}

// errorBody is the shape most registry error responses share.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// newRequestError extracts a human-readable message from an error
// response body, preferring structured message/detail fields and falling
// back to raw body text, then to a generic per-operation string.
func newRequestError(op string, status int, body []byte) *RequestError {
	msg := ""
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 {
		var eb errorBody
		if err := json.Unmarshal(trimmed, &eb); err == nil {
			if eb.Message != "" {
				msg = eb.Message
			} else if eb.Detail != "" {
				msg = eb.Detail
			}
		}
		if msg == "" && trimmed[0] != '{' && trimmed[0] != '[' {
			msg = string(trimmed)
		}
	}
	if msg == "" {
		msg = "failed to " + op
	}
	return &RequestError{Op: op, StatusCode: status, Message: msg, Body: body}
}
