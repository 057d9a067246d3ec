// Package provider implements block explorer providers.
//
// This package contains:
//   - Provider interface: core abstraction for explorer endpoints
//   - HTTPProvider: REST over HTTP implementation
//   - ProviderMonitor: health and rate tracking
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Operation represents a single REST call against a provider.
type Operation struct {
	// Name is the path relative to the provider endpoint (e.g., "address/1BvBM...")
	Name string

	// Method is the HTTP method (e.g., "GET", "POST"). Empty means GET.
	Method string

	// Body is sent as-is for POST requests.
	Body []byte

	// ContentType of Body. Defaults to text/plain when Body is set.
	ContentType string
}

// NewGetOperation creates a GET operation for path.
func NewGetOperation(path string) Operation {
	return Operation{Name: path, Method: http.MethodGet}
}

// NewPostOperation creates a POST operation for path with a raw body.
func NewPostOperation(path string, body []byte, contentType string) Operation {
	return Operation{
		Name:        path,
		Method:      http.MethodPost,
		Body:        body,
		ContentType: contentType,
	}
}

// Response is a successful (2xx) provider response.
type Response struct {
	StatusCode int
	Body       []byte
	Latency    time.Duration
}

// StatusError is returned for any non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err carries the given HTTP status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Provider defines the core interface for an explorer endpoint.
type Provider interface {
	// GetName returns provider identifier (e.g., "blockstream", "mempool")
	GetName() string

	// GetHealth returns current health metrics
	GetHealth() HealthStatus

	// IsAvailable checks if the provider is healthy enough to use
	IsAvailable() bool

	// Execute performs the operation with monitoring and error handling
	Execute(ctx context.Context, op Operation) (*Response, error)

	// Close cleans up resources
	Close() error
}

// HealthStatus represents the health state of a provider.
type HealthStatus struct {
	Available     bool
	Latency       time.Duration
	ErrorRate     float64
	LastSuccessAt time.Time
	LastFailureAt time.Time
	MonitorStats  *MonitorStats `json:"monitor_stats,omitempty"`
}
