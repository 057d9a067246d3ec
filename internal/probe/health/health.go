// Package health provides run health monitoring and status reporting.
package health

// SystemStatus represents the overall health state of the probe or a component.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// ExplorerHealth contains health metrics for the block explorer.
type ExplorerHealth struct {
	Name             string       `json:"name"`
	Status           SystemStatus `json:"status"`
	ProviderStatus   string       `json:"provider_status"`
	Available        bool         `json:"available"`
	ErrorRate        float64      `json:"error_rate"`
	AverageLatencyMs int64        `json:"average_latency_ms"`
	Throttled429     int          `json:"throttled_429"`
	Throttled403     int          `json:"throttled_403"`
}

// Progress contains the counters of the running probe.
type Progress struct {
	RunID           string `json:"run_id"`
	KeysRequested   int    `json:"keys_requested"`
	KeysProcessed   int    `json:"keys_processed"`
	KeysWithBalance int    `json:"keys_with_balance"`
	InvalidKeys     int    `json:"invalid_keys"`
	FailedLookups   int    `json:"failed_lookups"`
}

// HealthReport contains the full health report.
type HealthReport struct {
	SystemStatus SystemStatus   `json:"system_status"`
	Explorer     ExplorerHealth `json:"explorer"`
	Progress     Progress       `json:"progress"`
}
