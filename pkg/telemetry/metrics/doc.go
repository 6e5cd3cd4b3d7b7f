// Package metrics provides Prometheus metrics collection for the Cheddar adapter.
//
// # Metrics
//
//   - requests_in_progress: the tracker's in-progress count, read at scrape time
//   - accepting_requests: 1 while the adapter accepts requests
//   - lifecycle_status{status}: 1 for the current lifecycle status
//   - lifecycle_transitions_total{from,to}
//   - requests_total{method,code} and request_duration_seconds{method}
//   - requests_rejected_total{reason}
//
// Every name is prefixed with the configured namespace and subsystem
// (cheddar_adapter_ by default).
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.ObserveTracker(tracker)
//	collector.ObserveLifecycle(holder)
//	mux.Handle("/metrics", collector.Handler())
//
// # Prometheus Endpoint
//
//	# HELP cheddar_adapter_requests_in_progress Number of requests started but not yet finished
//	# TYPE cheddar_adapter_requests_in_progress gauge
//	cheddar_adapter_requests_in_progress 3
package metrics
