// Package rpc provides a resilient REST client for block explorers.
//
// # Quick Start
//
//	import "github.com/vietddude/btcprobe/internal/infra/rpc"
//
//	p := rpc.NewHTTPProvider("blockstream", "https://blockstream.info/api", 10*time.Second)
//	client := rpc.NewClient(p, rpc.DefaultRetryConfig)
//
//	resp, err := client.Execute(ctx, rpc.NewGetOperation("address/"+addr))
//
// # Package Structure
//
//   - provider/ - HTTPProvider and throttle monitoring
//   - routing/  - error classification and retry logic
//
// Most types are re-exported at the root level for convenience.
package rpc

import (
	"time"

	"github.com/vietddude/btcprobe/internal/infra/rpc/provider"
	"github.com/vietddude/btcprobe/internal/infra/rpc/routing"
)

// =============================================================================
// Re-exported types from provider package
// =============================================================================

// Provider is the core interface for explorer endpoints.
type Provider = provider.Provider

// HTTPProvider implements Provider for REST over HTTP.
type HTTPProvider = provider.HTTPProvider

// Operation represents a REST operation to execute.
type Operation = provider.Operation

// Response is a successful provider response.
type Response = provider.Response

// StatusError is returned for non-2xx responses.
type StatusError = provider.StatusError

// HealthStatus represents the health state of a provider.
type HealthStatus = provider.HealthStatus

// NewHTTPProvider creates a new HTTP-based explorer provider.
func NewHTTPProvider(name, endpoint string, timeout time.Duration) *HTTPProvider {
	return provider.NewHTTPProvider(name, endpoint, timeout)
}

// NewGetOperation creates a GET operation for path.
func NewGetOperation(path string) Operation {
	return provider.NewGetOperation(path)
}

// NewPostOperation creates a POST operation with a raw body.
func NewPostOperation(path string, body []byte, contentType string) Operation {
	return provider.NewPostOperation(path, body, contentType)
}

// IsStatus reports whether err carries the given HTTP status code.
func IsStatus(err error, code int) bool {
	return provider.IsStatus(err, code)
}

// =============================================================================
// Re-exported types from routing package
// =============================================================================

// RetryConfig defines retry behavior.
type RetryConfig = routing.RetryConfig

// DefaultRetryConfig performs a single attempt.
var DefaultRetryConfig = routing.DefaultRetryConfig
