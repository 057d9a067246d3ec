package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/vietddude/btcprobe/internal/infra/rpc/routing"
)

// Defaults.
const (
	DefaultKeys           = 10
	DefaultSatoshisPerBTC = 100_000_000
	DefaultRequestDelay   = 500 * time.Millisecond
	DefaultExplorerName   = "blockstream"
	DefaultExplorerURL    = "https://blockstream.info/api"
	DefaultTimeout        = 10 * time.Second
)

// Default returns the built-in configuration, without environment overrides.
func Default() *AppConfig {
	cfg := base()
	applyDefaults(cfg)
	return cfg
}

// base holds the defaults for fields where zero is a valid setting
// (scan.keys: 0 runs nothing, request_delay: 0 disables the pause).
// The file is decoded on top of it, so only absent keys keep these values.
func base() *AppConfig {
	return &AppConfig{
		Scan: ScanConfig{
			Keys:         DefaultKeys,
			RequestDelay: DefaultRequestDelay,
		},
	}
}

// Load reads configuration from a YAML file and applies BTCPROBE_* overrides.
// An empty path starts from the defaults.
func Load(path string) (*AppConfig, error) {
	cfg := base()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks values that have no sensible default.
func (c *AppConfig) Validate() error {
	if c.Scan.Keys < 0 {
		return fmt.Errorf("scan.keys must not be negative, got %d", c.Scan.Keys)
	}
	if c.Scan.SatoshisPerBTC < 0 {
		return fmt.Errorf("scan.satoshis_per_btc must be positive, got %d", c.Scan.SatoshisPerBTC)
	}
	if c.Scan.RequestDelay < 0 {
		return fmt.Errorf("scan.request_delay must not be negative, got %s", c.Scan.RequestDelay)
	}
	switch c.Scan.Bech32 {
	case Bech32Local, Bech32Remote:
	default:
		return fmt.Errorf("scan.bech32 must be %q or %q, got %q", Bech32Local, Bech32Remote, c.Scan.Bech32)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port out of range: %d", c.Metrics.Port)
	}
	return nil
}

// applyDefaults fills fields whose zero value is never meaningful.
func applyDefaults(cfg *AppConfig) {
	if cfg.Scan.SatoshisPerBTC == 0 {
		cfg.Scan.SatoshisPerBTC = DefaultSatoshisPerBTC
	}
	if cfg.Scan.Bech32 == "" {
		cfg.Scan.Bech32 = Bech32Local
	}

	if cfg.Explorer.Name == "" {
		cfg.Explorer.Name = DefaultExplorerName
	}
	if cfg.Explorer.URL == "" {
		cfg.Explorer.URL = DefaultExplorerURL
	}
	if cfg.Explorer.Timeout == 0 {
		cfg.Explorer.Timeout = DefaultTimeout
	}

	retry := &cfg.Explorer.Retry
	if retry.MaxAttempts == 0 {
		retry.MaxAttempts = routing.DefaultRetryConfig.MaxAttempts
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = routing.DefaultRetryConfig.InitialDelay
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = routing.DefaultRetryConfig.MaxDelay
	}
	if retry.BackoffMultiple == 0 {
		retry.BackoffMultiple = routing.DefaultRetryConfig.BackoffMultiple
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
