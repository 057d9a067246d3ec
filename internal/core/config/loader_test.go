package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scan.Keys != 10 {
		t.Errorf("expected 10 keys, got %d", cfg.Scan.Keys)
	}
	if cfg.Scan.SatoshisPerBTC != 100_000_000 {
		t.Errorf("expected 100000000 sats per BTC, got %d", cfg.Scan.SatoshisPerBTC)
	}
	if cfg.Scan.RequestDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms delay, got %s", cfg.Scan.RequestDelay)
	}
	if cfg.Scan.Bech32 != Bech32Local {
		t.Errorf("expected local bech32, got %q", cfg.Scan.Bech32)
	}
	if cfg.Explorer.URL != "https://blockstream.info/api" {
		t.Errorf("unexpected explorer url %q", cfg.Explorer.URL)
	}
	if cfg.Explorer.Retry.MaxAttempts != 1 {
		t.Errorf("expected a single attempt by default, got %d", cfg.Explorer.Retry.MaxAttempts)
	}
	if cfg.Metrics.Port != 0 {
		t.Errorf("metrics server should be disabled by default, got port %d", cfg.Metrics.Port)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
scan:
  keys: 3
  request_delay: 1s
  bech32: remote
explorer:
  name: mempool
  url: https://mempool.space/api
  timeout: 5s
  retry:
    max_attempts: 3
    initial_delay: 200ms
metrics:
  port: 9100
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scan.Keys != 3 || cfg.Scan.RequestDelay != time.Second || cfg.Scan.Bech32 != Bech32Remote {
		t.Errorf("unexpected scan config: %+v", cfg.Scan)
	}
	if cfg.Explorer.Name != "mempool" || cfg.Explorer.Timeout != 5*time.Second {
		t.Errorf("unexpected explorer config: %+v", cfg.Explorer)
	}
	if cfg.Explorer.Retry.MaxAttempts != 3 || cfg.Explorer.Retry.InitialDelay != 200*time.Millisecond {
		t.Errorf("unexpected retry config: %+v", cfg.Explorer.Retry)
	}
	if cfg.Explorer.Retry.MaxDelay != 10*time.Second {
		t.Errorf("expected default max delay, got %s", cfg.Explorer.Retry.MaxDelay)
	}
	if cfg.Scan.SatoshisPerBTC != 100_000_000 {
		t.Errorf("expected default sats per BTC, got %d", cfg.Scan.SatoshisPerBTC)
	}
	if cfg.Metrics.Port != 9100 || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected metrics/logging config: %+v %+v", cfg.Metrics, cfg.Logging)
	}
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("TEST_EXPLORER_URL", "http://localhost:3002/api")

	path := writeConfig(t, `
explorer:
  url: ${TEST_EXPLORER_URL}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Explorer.URL != "http://localhost:3002/api" {
		t.Errorf("Expected URL http://localhost:3002/api, got %s", cfg.Explorer.URL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad bech32 mode", "scan:\n  bech32: segwit\n", "scan.bech32"},
		{"negative keys", "scan:\n  keys: -1\n", "scan.keys"},
		{"negative delay", "scan:\n  request_delay: -1s\n", "scan.request_delay"},
		{"port out of range", "metrics:\n  port: 70000\n", "metrics.port"},
		{"malformed yaml", "scan: [\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BTCPROBE_KEYS", "25")
	t.Setenv("BTCPROBE_BECH32", "remote")
	t.Setenv("BTCPROBE_EXPLORER_URL", "https://mempool.space/api")
	t.Setenv("BTCPROBE_METRICS_PORT", "9200")

	path := writeConfig(t, `
scan:
  keys: 3
explorer:
  url: https://blockstream.info/api
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scan.Keys != 25 {
		t.Errorf("expected env to override keys, got %d", cfg.Scan.Keys)
	}
	if cfg.Scan.Bech32 != Bech32Remote {
		t.Errorf("expected remote bech32, got %q", cfg.Scan.Bech32)
	}
	if cfg.Explorer.URL != "https://mempool.space/api" {
		t.Errorf("expected env explorer url, got %q", cfg.Explorer.URL)
	}
	if cfg.Metrics.Port != 9200 {
		t.Errorf("expected metrics port 9200, got %d", cfg.Metrics.Port)
	}
}

func TestLoad_EnvOverridesWithoutFile(t *testing.T) {
	t.Setenv("BTCPROBE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
	if cfg.Scan.Keys != DefaultKeys {
		t.Errorf("expected default keys, got %d", cfg.Scan.Keys)
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("BTCPROBE_KEYS", "many")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric BTCPROBE_KEYS")
	}
}

func TestLoad_ExplicitZeroes(t *testing.T) {
	path := writeConfig(t, `
scan:
  keys: 0
  request_delay: 0s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scan.Keys != 0 {
		t.Errorf("expected explicit zero keys, got %d", cfg.Scan.Keys)
	}
	if cfg.Scan.RequestDelay != 0 {
		t.Errorf("expected explicit zero delay, got %s", cfg.Scan.RequestDelay)
	}

	// Absent keys still get their defaults
	cfg, err = Load(writeConfig(t, "logging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scan.Keys != DefaultKeys || cfg.Scan.RequestDelay != DefaultRequestDelay {
		t.Errorf("expected defaults for absent keys, got %+v", cfg.Scan)
	}
}

func TestLoad_EnvExplicitZeroes(t *testing.T) {
	t.Setenv("BTCPROBE_KEYS", "0")
	t.Setenv("BTCPROBE_REQUEST_DELAY", "0s")

	cfg, err := Load(writeConfig(t, "scan:\n  keys: 7\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scan.Keys != 0 || cfg.Scan.RequestDelay != 0 {
		t.Errorf("expected env zeroes to override the file, got %+v", cfg.Scan)
	}
}
