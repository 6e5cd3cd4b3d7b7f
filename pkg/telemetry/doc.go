// Package telemetry provides observability for the Cheddar adapter.
//
// # Components
//
//   - logging: structured slog logging with request IDs from context
//   - metrics: Prometheus metrics for requests, admission and the lifecycle
//   - health: liveness, readiness, status and version endpoints
//   - reporter: periodic status log lines on a cron schedule
//
// # Usage
//
//	logger, levelVar, err := logging.New(logging.Config{Level: "info", Format: "json"})
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	collector.ObserveTracker(tracker)
//	collector.ObserveLifecycle(holder)
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	checker.RegisterCheck("adapter", health.AdapterCheck(tracker))
//
//	rep := reporter.NewReporter(tracker, &cfg.Telemetry.StatusReport, logger)
//	if err := rep.Start(ctx); err != nil {
//	    return err
//	}
//
// The logging level can be changed at runtime through levelVar, which the
// run command does when the configuration file is reloaded.
package telemetry
