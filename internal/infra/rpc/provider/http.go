package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vietddude/btcprobe/internal/probe/metrics"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// HTTPProvider implements Provider for REST over HTTP.
type HTTPProvider struct {
	name       string
	endpoint   string
	httpClient *http.Client

	mu           sync.RWMutex
	health       HealthStatus
	totalLatency time.Duration
	successCount int
	failureCount int
	requestCount int

	Monitor *ProviderMonitor
}

// NewHTTPProvider creates a new HTTP-based explorer provider.
func NewHTTPProvider(name, endpoint string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		name:     name,
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		health: HealthStatus{
			Available:     true,
			LastSuccessAt: time.Now(),
		},
		Monitor: NewProviderMonitor(),
	}
}

// Execute performs a single REST request.
// Non-2xx responses are returned as *StatusError.
// The request is always sent; throttle state only feeds health and metrics.
func (p *HTTPProvider) Execute(ctx context.Context, op Operation) (*Response, error) {
	start := time.Now()

	method := op.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(op.Body) > 0 {
		body = bytes.NewReader(op.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.endpoint+"/"+strings.TrimLeft(op.Name, "/"), body)
	if err != nil {
		p.recordFailure()
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		contentType := op.ContentType
		if contentType == "" {
			contentType = "text/plain"
		}
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.recordFailure()
		metrics.ExplorerRequests.WithLabelValues(p.name, method, "error").Inc()
		return nil, fmt.Errorf("rest call: %w", err)
	}
	defer resp.Body.Close()

	latency := time.Since(start)
	metrics.ExplorerRequests.WithLabelValues(p.name, method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.ExplorerLatency.WithLabelValues(p.name, method).Observe(latency.Seconds())

	// Rate limit detection
	if resp.StatusCode == http.StatusTooManyRequests {
		p.Monitor.RecordThrottle(resp.StatusCode, resp.Header.Get("Retry-After"))
		p.recordFailure()
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: "rate limited"}
	}

	// IP blocked detection
	if resp.StatusCode == http.StatusForbidden {
		p.Monitor.RecordThrottle(resp.StatusCode, "")
		p.recordFailure()
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: "ip blocked"}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		p.recordFailure()
		return nil, fmt.Errorf("read response: %w", err)
	}

	// The explorer answered; unknown resources are not a provider fault
	if resp.StatusCode == http.StatusNotFound {
		p.Monitor.RecordRequest(latency)
		p.recordSuccess(latency)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.recordFailure()

		if p.Monitor.DetectThrottlePattern(string(data)) {
			p.Monitor.RecordThrottle(http.StatusTooManyRequests, "")
			return nil, fmt.Errorf("throttle detected in response: %w",
				&StatusError{StatusCode: resp.StatusCode, Body: string(data)})
		}

		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	p.Monitor.RecordRequest(latency)
	p.recordSuccess(latency)

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Latency:    latency,
	}, nil
}

// GetName returns the provider's name.
func (p *HTTPProvider) GetName() string {
	return p.name
}

// GetHealth returns the provider's health status.
func (p *HTTPProvider) GetHealth() HealthStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	health := p.health
	stats := p.Monitor.GetStats()
	health.MonitorStats = &stats
	return health
}

// Close cleans up resources.
func (p *HTTPProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

// IsAvailable checks if the provider is available.
func (p *HTTPProvider) IsAvailable() bool {
	status := p.Monitor.CheckProviderStatus()
	return status == StatusHealthy || status == StatusDegraded
}

func (p *HTTPProvider) recordSuccess(latency time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.successCount++
	p.requestCount++
	p.totalLatency += latency
	p.health.LastSuccessAt = time.Now()
	p.health.Available = true

	if p.requestCount > 0 {
		p.health.ErrorRate = float64(p.failureCount) / float64(p.requestCount)
	}
	if p.successCount > 0 {
		p.health.Latency = p.totalLatency / time.Duration(p.successCount)
	}
}

func (p *HTTPProvider) recordFailure() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.failureCount++
	p.requestCount++
	p.health.LastFailureAt = time.Now()

	if p.requestCount > 0 {
		p.health.ErrorRate = float64(p.failureCount) / float64(p.requestCount)
	}

	if p.health.ErrorRate > 0.5 {
		p.health.Available = false
	}
}
