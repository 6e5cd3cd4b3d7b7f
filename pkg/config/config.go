package config

import "time"

// Config is the root configuration structure for the Cheddar REST adapter.
// It contains the HTTP server settings, the lifecycle sequencing used during
// startup and shutdown, and the telemetry settings.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, admission control and the upstream application.
	Server ServerConfig `yaml:"server"`

	// Lifecycle controls the initial lifecycle status and the shutdown
	// sequence timings.
	Lifecycle LifecycleConfig `yaml:"lifecycle"`

	// Telemetry contains configuration for logging, metrics, health
	// endpoints and periodic status reports.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch enables reloading the configuration file when it changes.
	// Only settings that are safe to change at runtime (log level) are
	// applied to a running adapter.
	// Default: false
	Watch bool `yaml:"watch"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the adapter to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds the whole shutdown sequence, including waiting
	// for in-progress requests to drain.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// UpstreamURL is the application the adapter fronts. When empty the
	// adapter serves a built-in /ping endpoint.
	// Example: "http://127.0.0.1:9000"
	UpstreamURL string `yaml:"upstream_url"`

	// Admission controls whether the transport rejects requests while the
	// adapter is not accepting them.
	Admission AdmissionConfig `yaml:"admission"`

	// Admin controls the lifecycle admin endpoint.
	Admin AdminConfig `yaml:"admin"`
}

// AdmissionConfig contains request admission settings.
type AdmissionConfig struct {
	// Enabled rejects application requests with 503 while the lifecycle
	// status does not accept requests.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// RetryAfter is advertised to rejected clients in the Retry-After header.
	// Default: 5s
	RetryAfter time.Duration `yaml:"retry_after"`
}

// AdminConfig contains lifecycle admin endpoint settings.
type AdminConfig struct {
	// Enabled exposes GET/PUT /admin/lifecycle.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the admin endpoint path.
	// Default: "/admin/lifecycle"
	Path string `yaml:"path"`

	// Tokens authorize admin requests. When empty the endpoint is
	// unauthenticated.
	Tokens []AdminToken `yaml:"tokens"`
}

// AdminToken is a named bearer token accepted by the admin endpoint.
type AdminToken struct {
	// Name identifies the token in logs. The value is never logged.
	Name string `yaml:"name"`

	// Value is the secret presented as "Authorization: Bearer <value>" or
	// in the X-Admin-Token header.
	Value string `yaml:"value"`

	// Disabled rejects the token without removing it from the file.
	Disabled bool `yaml:"disabled"`
}

// LifecycleConfig contains lifecycle sequencing settings.
type LifecycleConfig struct {
	// InitialStatus is the status reported before the server is listening.
	// Default: "STARTING"
	InitialStatus string `yaml:"initial_status"`

	// StartPaused moves the service to PAUSED instead of RUNNING once the
	// server is listening.
	// Default: false
	StartPaused bool `yaml:"start_paused"`

	// HaltGracePeriod is how long the service stays in
	// HALTING_LOW_PRIORITY_EVENTS, still accepting requests, before it stops
	// admitting new ones.
	// Default: 5s
	HaltGracePeriod time.Duration `yaml:"halt_grace_period"`

	// DrainPollInterval is how often the in-progress count is checked while
	// draining.
	// Default: 100ms
	DrainPollInterval time.Duration `yaml:"drain_poll_interval"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Health contains health endpoint configuration.
	Health HealthConfig `yaml:"health"`

	// StatusReport contains periodic status report configuration.
	StatusReport StatusReportConfig `yaml:"status_report"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "cheddar"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "adapter"
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for request duration (seconds).
	// Default: [0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// HealthConfig contains health endpoint configuration.
type HealthConfig struct {
	// LivenessPath is the liveness probe path.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the readiness probe path.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// StatusPath serves the adapter status snapshot.
	// Default: "/status"
	StatusPath string `yaml:"status_path"`

	// CheckTimeout bounds each readiness check.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`

	// RateLimit caps requests per second to the health endpoints.
	// 0 disables the limit.
	// Default: 0
	RateLimit int `yaml:"rate_limit"`
}

// StatusReportConfig contains periodic status report configuration.
type StatusReportConfig struct {
	// Enabled turns on the periodic status log line.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression or descriptor (e.g. "@every 1m").
	// Default: "@every 1m"
	Schedule string `yaml:"schedule"`
}
