// Package config provides configuration management for the Cheddar REST adapter.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// An empty path loads the defaults, so the adapter can run without a file.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CHEDDAR_SECTION_FIELD:
//
//   - CHEDDAR_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - CHEDDAR_LIFECYCLE_HALT_GRACE_PERIOD overrides lifecycle.halt_grace_period
//   - CHEDDAR_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Values that do not parse are ignored.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton and Reload
//
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// When watch is enabled, a Watcher reloads the file on change and hands the
// new configuration to a callback. A file that fails validation is logged and
// ignored.
//
// # Example Configuration
//
//	server:
//	  listen_address: "0.0.0.0:8080"
//	  upstream_url: "http://127.0.0.1:9000"
//	  admission:
//	    enabled: true
//	    retry_after: 5s
//
//	lifecycle:
//	  initial_status: STARTING
//	  halt_grace_period: 5s
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	  status_report:
//	    schedule: "@every 30s"
package config
