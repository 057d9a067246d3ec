package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every override variable, e.g. BTCPROBE_KEYS.
const EnvPrefix = "BTCPROBE"

// EnvOverrides are optional environment variables that win over the file.
// Pointer fields distinguish an explicit zero from an unset variable.
type EnvOverrides struct {
	Keys         *int           `envconfig:"KEYS"`
	RequestDelay *time.Duration `envconfig:"REQUEST_DELAY"`
	Bech32       string         `envconfig:"BECH32"`
	ExplorerURL  string         `envconfig:"EXPLORER_URL"`
	MetricsPort  *int           `envconfig:"METRICS_PORT"`
	LogLevel     string         `envconfig:"LOG_LEVEL"`
}

// ApplyEnv reads BTCPROBE_* variables and overrides the matching fields.
func ApplyEnv(cfg *AppConfig) error {
	var env EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to process environment: %w", err)
	}

	if env.Keys != nil {
		cfg.Scan.Keys = *env.Keys
	}
	if env.RequestDelay != nil {
		cfg.Scan.RequestDelay = *env.RequestDelay
	}
	if env.Bech32 != "" {
		cfg.Scan.Bech32 = env.Bech32
	}
	if env.ExplorerURL != "" {
		cfg.Explorer.URL = env.ExplorerURL
	}
	if env.MetricsPort != nil {
		cfg.Metrics.Port = *env.MetricsPort
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	return nil
}
