package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// Admission defaults
	DefaultAdmissionEnabled    = true
	DefaultAdmissionRetryAfter = 5 * time.Second

	// Admin defaults
	DefaultAdminEnabled = false
	DefaultAdminPath    = "/admin/lifecycle"

	// Lifecycle defaults
	DefaultInitialStatus     = "STARTING"
	DefaultStartPaused       = false
	DefaultHaltGracePeriod   = 5 * time.Second
	DefaultDrainPollInterval = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultMetricsEnabled     = true
	DefaultPrometheusPath     = "/metrics"
	DefaultMetricsNamespace   = "cheddar"
	DefaultMetricsSubsystem   = "adapter"
	DefaultLivenessPath       = "/health"
	DefaultReadinessPath      = "/ready"
	DefaultStatusPath         = "/status"
	DefaultHealthCheckTimeout = 5 * time.Second
	DefaultStatusReport       = true
	DefaultStatusSchedule     = "@every 1m"
)

// DefaultRequestDurationBuckets covers typical REST latencies (5ms - 10s).
var DefaultRequestDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// DefaultConfig returns a configuration with every field set to its default.
// Files are decoded on top of it, so boolean settings that default to true
// keep that value unless the file sets them explicitly.
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Admission: AdmissionConfig{
				Enabled: DefaultAdmissionEnabled,
			},
			Admin: AdminConfig{
				Enabled: DefaultAdminEnabled,
			},
		},
		Lifecycle: LifecycleConfig{
			StartPaused: DefaultStartPaused,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			StatusReport: StatusReportConfig{
				Enabled: DefaultStatusReport,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any non-boolean fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.Admission.RetryAfter == 0 {
		cfg.Server.Admission.RetryAfter = DefaultAdmissionRetryAfter
	}
	if cfg.Server.Admin.Path == "" {
		cfg.Server.Admin.Path = DefaultAdminPath
	}

	// Lifecycle defaults
	if cfg.Lifecycle.InitialStatus == "" {
		cfg.Lifecycle.InitialStatus = DefaultInitialStatus
	}
	if cfg.Lifecycle.HaltGracePeriod == 0 {
		cfg.Lifecycle.HaltGracePeriod = DefaultHaltGracePeriod
	}
	if cfg.Lifecycle.DrainPollInterval == 0 {
		cfg.Lifecycle.DrainPollInterval = DefaultDrainPollInterval
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		buckets := make([]float64, len(DefaultRequestDurationBuckets))
		copy(buckets, DefaultRequestDurationBuckets)
		cfg.Telemetry.Metrics.RequestDurationBuckets = buckets
	}
	if cfg.Telemetry.Health.LivenessPath == "" {
		cfg.Telemetry.Health.LivenessPath = DefaultLivenessPath
	}
	if cfg.Telemetry.Health.ReadinessPath == "" {
		cfg.Telemetry.Health.ReadinessPath = DefaultReadinessPath
	}
	if cfg.Telemetry.Health.StatusPath == "" {
		cfg.Telemetry.Health.StatusPath = DefaultStatusPath
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
	if cfg.Telemetry.StatusReport.Schedule == "" {
		cfg.Telemetry.StatusReport.Schedule = DefaultStatusSchedule
	}
}
