package config

import (
	"time"

	"github.com/vietddude/btcprobe/internal/infra/rpc/routing"
)

// Bech32 encoding modes.
const (
	Bech32Local  = "local"
	Bech32Remote = "remote"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Scan     ScanConfig     `yaml:"scan"`
	Explorer ExplorerConfig `yaml:"explorer"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ScanConfig controls the probe loop.
type ScanConfig struct {
	Keys           int           `yaml:"keys"`
	SatoshisPerBTC int64         `yaml:"satoshis_per_btc"`
	RequestDelay   time.Duration `yaml:"request_delay"`
	Bech32         string        `yaml:"bech32"` // local, remote
}

// ExplorerConfig holds settings for the Esplora-compatible explorer.
type ExplorerConfig struct {
	Name    string              `yaml:"name"`
	URL     string              `yaml:"url"`
	Timeout time.Duration       `yaml:"timeout"`
	Retry   routing.RetryConfig `yaml:"retry"`
}

// MetricsConfig holds the health/metrics HTTP server settings.
type MetricsConfig struct {
	Port int `yaml:"port"` // 0 = disabled
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
