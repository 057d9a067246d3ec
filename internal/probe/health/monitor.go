package health

import (
	"context"

	"github.com/vietddude/btcprobe/internal/core/domain"
	"github.com/vietddude/btcprobe/internal/infra/rpc/provider"
)

// ExplorerSource exposes the health of the explorer client.
type ExplorerSource interface {
	Health() provider.HealthStatus
	ProviderName() string
}

// ProgressSource exposes the live counters of a run.
type ProgressSource interface {
	Progress() domain.Summary
}

// Monitor aggregates health status from the explorer client and the run.
type Monitor struct {
	explorer ExplorerSource
	progress ProgressSource
}

// NewMonitor creates a new health monitor. Either source may be nil.
func NewMonitor(explorer ExplorerSource, progress ProgressSource) *Monitor {
	return &Monitor{
		explorer: explorer,
		progress: progress,
	}
}

// CheckHealth builds a report from the current state.
func (m *Monitor) CheckHealth(ctx context.Context) HealthReport {
	report := HealthReport{SystemStatus: StatusHealthy}

	if m.explorer != nil {
		report.Explorer = explorerHealth(m.explorer.ProviderName(), m.explorer.Health())
		report.SystemStatus = report.Explorer.Status
	}

	if m.progress != nil {
		s := m.progress.Progress()
		report.Progress = Progress{
			RunID:           s.RunID,
			KeysRequested:   s.KeysRequested,
			KeysProcessed:   s.KeysProcessed,
			KeysWithBalance: s.KeysWithBalance,
			InvalidKeys:     s.InvalidKeys,
			FailedLookups:   s.FailedLookups,
		}
	}

	return report
}

func explorerHealth(name string, h provider.HealthStatus) ExplorerHealth {
	eh := ExplorerHealth{
		Name:      name,
		Status:    StatusHealthy,
		Available: h.Available,
		ErrorRate: h.ErrorRate,
	}

	if stats := h.MonitorStats; stats != nil {
		eh.ProviderStatus = stats.Status.String()
		eh.AverageLatencyMs = stats.AverageLatency.Milliseconds()
		eh.Throttled429 = stats.ThrottleCount429
		eh.Throttled403 = stats.ThrottleCount403

		switch stats.Status {
		case provider.StatusBlocked:
			eh.Status = StatusCritical
		case provider.StatusThrottled, provider.StatusDegraded:
			eh.Status = StatusDegraded
		}
	}

	// High error rate = degraded
	if eh.Status == StatusHealthy && h.ErrorRate > 0.5 {
		eh.Status = StatusDegraded
	}
	if !h.Available {
		eh.Status = StatusCritical
	}

	return eh
}
