package config

import "time"

// Config is the root configuration structure for the mirror proxy.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and TLS settings.
	Server ServerConfig `yaml:"server"`

	// Upstream contains configuration for the Bot API endpoint that
	// forwarded calls are relayed to.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Cache contains configuration for the entity cache store.
	Cache CacheConfig `yaml:"cache"`

	// Mining contains configuration for the entity extraction pipeline.
	Mining MiningConfig `yaml:"mining"`

	// Upload contains configuration for the big-upload path. Both fields
	// must be set for the path to be active.
	Upload UploadConfig `yaml:"upload"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port". Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes. Default: 120s, sized for long polls and uploads.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle limit. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size. Default: 1MB
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// TLS contains optional TLS settings for the listener.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS settings for the HTTP listener.
type TLSConfig struct {
	// Enabled turns TLS on. Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the PEM certificate.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM private key.
	KeyFile string `yaml:"key_file"`
}

// UpstreamConfig contains configuration for the Bot API endpoint.
type UpstreamConfig struct {
	// BaseURL is the Bot API base. Default: "https://api.telegram.org"
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-call deadline for upstream requests.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns caps pooled idle connections. Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost caps pooled idle connections per host.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long idle connections are kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// CacheConfig contains configuration for the entity cache store.
type CacheConfig struct {
	// Path is the SQLite database file. Default: "./tgmirror.db"
	Path string `yaml:"path"`

	// BusyTimeout is the SQLite busy handler timeout. Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaintenanceSchedule is a cron expression for periodic VACUUM and
	// ANALYZE runs. Empty disables maintenance. Default: "0 4 * * *"
	MaintenanceSchedule string `yaml:"maintenance_schedule"`
}

// MiningConfig contains configuration for the entity extraction pipeline.
type MiningConfig struct {
	// MaxDepth bounds recursion into upstream response documents.
	// Default: 200
	MaxDepth int `yaml:"max_depth"`
}

// UploadConfig contains configuration for the big-upload path.
type UploadConfig struct {
	// APIID is the protocol application identifier. Zero disables the
	// big-upload path.
	APIID int `yaml:"api_id"`

	// APIHash is the matching application secret. Empty disables the
	// big-upload path.
	APIHash string `yaml:"api_hash"`
}

// TelemetryConfig contains configuration for logging and metrics.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text"). Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records. Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled turns metric recording on. Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix. Default: "tgmirror"
	Namespace string `yaml:"namespace"`

	// Path is where the exposition endpoint is mounted.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// RequestDurationBuckets overrides the duration histogram buckets.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
