package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// KeysProcessed tracks generated keys by outcome (ok, invalid)
	KeysProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcprobe_keys_processed_total",
			Help: "Total number of keys run through the pipeline",
		},
		[]string{"outcome"},
	)

	// KeysWithBalance counts keys whose addresses hold a nonzero balance
	KeysWithBalance = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "btcprobe_keys_with_balance_total",
			Help: "Total number of keys found with a nonzero balance",
		},
	)

	// BalanceLookups tracks balance checks per address type and status
	BalanceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcprobe_balance_lookups_total",
			Help: "Total number of balance lookups",
		},
		[]string{"address_type", "status"},
	)

	// ExplorerRequests tracks HTTP requests per provider, method and status code
	ExplorerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcprobe_explorer_requests_total",
			Help: "Total number of block explorer requests",
		},
		[]string{"provider", "method", "code"},
	)

	// ExplorerLatency tracks explorer request latency
	ExplorerLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "btcprobe_explorer_latency_seconds",
			Help:    "Block explorer request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "method"},
	)
)
