package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("got listen address %q, want %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("got write timeout %v, want %v", cfg.Server.WriteTimeout, DefaultWriteTimeout)
	}
	if cfg.Upstream.BaseURL != DefaultUpstreamBaseURL {
		t.Errorf("got base URL %q, want %q", cfg.Upstream.BaseURL, DefaultUpstreamBaseURL)
	}
	if cfg.Cache.Path != DefaultCachePath {
		t.Errorf("got cache path %q, want %q", cfg.Cache.Path, DefaultCachePath)
	}
	if cfg.Mining.MaxDepth != DefaultMiningMaxDepth {
		t.Errorf("got max depth %d, want %d", cfg.Mining.MaxDepth, DefaultMiningMaxDepth)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics must default to enabled")
	}
	if cfg.Upload.APIID != 0 || cfg.Upload.APIHash != "" {
		t.Error("upload credentials must default to unset")
	}
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_address: "0.0.0.0:9090"
  read_timeout: 15s
upstream:
  base_url: "http://localhost:8081"
cache:
  path: "/var/lib/tgmirror/cache.db"
  maintenance_schedule: "30 2 * * *"
telemetry:
  logging:
    level: debug
    format: text
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("got listen address %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("got read timeout %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Upstream.BaseURL != "http://localhost:8081" {
		t.Errorf("got base URL %q", cfg.Upstream.BaseURL)
	}
	if cfg.Cache.MaintenanceSchedule != "30 2 * * *" {
		t.Errorf("got schedule %q", cfg.Cache.MaintenanceSchedule)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("got logging %q/%q, want debug/text", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	}
	// An explicit false must survive the enabled-by-default seeding.
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("explicit metrics.enabled=false was overridden")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not: a: mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_address: "127.0.0.1:8080"
upload:
  api_id: 11
  api_hash: "from-file"
`)

	t.Setenv("TGMIRROR_SERVER_LISTEN_ADDRESS", "0.0.0.0:7070")
	t.Setenv("TGMIRROR_UPSTREAM_TIMEOUT", "3s")
	t.Setenv("TGMIRROR_UPLOAD_API_HASH", "from-env")
	t.Setenv("TGMIRROR_MINING_MAX_DEPTH", "50")
	t.Setenv("TGMIRROR_TELEMETRY_METRICS_ENABLED", "false")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:7070" {
		t.Errorf("env override lost: got %q", cfg.Server.ListenAddress)
	}
	if cfg.Upstream.Timeout != 3*time.Second {
		t.Errorf("got upstream timeout %v, want 3s", cfg.Upstream.Timeout)
	}
	if cfg.Upload.APIHash != "from-env" {
		t.Errorf("got api_hash %q, want the env value", cfg.Upload.APIHash)
	}
	if cfg.Mining.MaxDepth != 50 {
		t.Errorf("got max depth %d, want 50", cfg.Mining.MaxDepth)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics enabled override lost")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidResult(t *testing.T) {
	path := writeConfigFile(t, "")
	t.Setenv("TGMIRROR_CACHE_MAINTENANCE_SCHEDULE", "every day at dawn")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Error("expected validation failure for invalid cron override")
	}
}
