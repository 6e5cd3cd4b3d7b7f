package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"cheddar-hq/adapter/pkg/lifecycle"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateLifecycle(&cfg.Lifecycle)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validatePaths(cfg)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateServer validates HTTP server configuration.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	}

	// Validate timeouts are positive
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.shutdown_timeout",
			Message: "shutdown timeout must be positive",
		})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}

	if cfg.UpstreamURL != "" {
		u, err := url.Parse(cfg.UpstreamURL)
		if err != nil {
			errs = append(errs, FieldError{
				Field:   "server.upstream_url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   "server.upstream_url",
				Message: "upstream URL must be an absolute http or https URL",
			})
		}
	}

	if cfg.Admission.RetryAfter < 0 {
		errs = append(errs, FieldError{
			Field:   "server.admission.retry_after",
			Message: "retry after must be non-negative",
		})
	}

	if cfg.Admin.Enabled && !strings.HasPrefix(cfg.Admin.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "server.admin.path",
			Message: "admin path must start with /",
		})
	}

	names := make(map[string]bool, len(cfg.Admin.Tokens))
	for i, token := range cfg.Admin.Tokens {
		field := fmt.Sprintf("server.admin.tokens[%d]", i)
		if token.Name == "" {
			errs = append(errs, FieldError{Field: field + ".name", Message: "token name is required"})
		} else if names[token.Name] {
			errs = append(errs, FieldError{Field: field + ".name", Message: fmt.Sprintf("duplicate token name %q", token.Name)})
		}
		names[token.Name] = true

		if token.Value == "" {
			errs = append(errs, FieldError{Field: field + ".value", Message: "token value is required"})
		}
	}

	return errs
}

// validateLifecycle validates lifecycle sequencing configuration.
func validateLifecycle(cfg *LifecycleConfig) []FieldError {
	var errs []FieldError

	if _, err := lifecycle.ParseStatus(cfg.InitialStatus); err != nil {
		errs = append(errs, FieldError{
			Field:   "lifecycle.initial_status",
			Message: err.Error(),
		})
	}

	if cfg.HaltGracePeriod < 0 {
		errs = append(errs, FieldError{
			Field:   "lifecycle.halt_grace_period",
			Message: "halt grace period must be non-negative",
		})
	}
	if cfg.DrainPollInterval <= 0 {
		errs = append(errs, FieldError{
			Field:   "lifecycle.drain_poll_interval",
			Message: "drain poll interval must be positive",
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	// Validate logging format
	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json', 'text', or 'console'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with /",
			})
		}
		if cfg.Metrics.Namespace == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.namespace",
				Message: "metrics namespace is required when metrics are enabled",
			})
		}
		for i := 1; i < len(cfg.Metrics.RequestDurationBuckets); i++ {
			if cfg.Metrics.RequestDurationBuckets[i] <= cfg.Metrics.RequestDurationBuckets[i-1] {
				errs = append(errs, FieldError{
					Field:   "telemetry.metrics.request_duration_buckets",
					Message: "buckets must be strictly increasing",
				})
				break
			}
		}
	}

	for field, path := range map[string]string{
		"telemetry.health.liveness_path":  cfg.Health.LivenessPath,
		"telemetry.health.readiness_path": cfg.Health.ReadinessPath,
		"telemetry.health.status_path":    cfg.Health.StatusPath,
	} {
		if !strings.HasPrefix(path, "/") {
			errs = append(errs, FieldError{
				Field:   field,
				Message: "path must start with /",
			})
		}
	}

	if cfg.Health.CheckTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.health.check_timeout",
			Message: "check timeout must be positive",
		})
	}
	if cfg.Health.CheckTimeout > 60*time.Second {
		errs = append(errs, FieldError{
			Field:   "telemetry.health.check_timeout",
			Message: "check timeout exceeds reasonable limit (60s)",
		})
	}
	if cfg.Health.RateLimit < 0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.health.rate_limit",
			Message: "rate limit must be non-negative",
		})
	}

	if cfg.StatusReport.Enabled {
		if _, err := cron.ParseStandard(cfg.StatusReport.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.status_report.schedule",
				Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.StatusReport.Schedule, err),
			})
		}
	}

	return errs
}

// validatePaths rejects configurations where two endpoints share a path.
func validatePaths(cfg *Config) []FieldError {
	var errs []FieldError

	seen := map[string]string{}
	check := func(field, path string) {
		if path == "" {
			return
		}
		if other, ok := seen[path]; ok {
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("path %q is already used by %s", path, other),
			})
			return
		}
		seen[path] = field
	}

	check("telemetry.health.liveness_path", cfg.Telemetry.Health.LivenessPath)
	check("telemetry.health.readiness_path", cfg.Telemetry.Health.ReadinessPath)
	check("telemetry.health.status_path", cfg.Telemetry.Health.StatusPath)
	if cfg.Telemetry.Metrics.Enabled {
		check("telemetry.metrics.path", cfg.Telemetry.Metrics.Path)
	}
	if cfg.Server.Admin.Enabled {
		check("server.admin.path", cfg.Server.Admin.Path)
	}

	return errs
}
