// Package server provides the adapter's HTTP server.
//
// The server ties together the status tracker, the lifecycle holder, the
// health endpoints and the request metrics, and sequences the lifecycle
// status through startup and shutdown.
//
// # Basic Usage
//
//	holder, _ := lifecycle.NewHolder(lifecycle.Starting, logger)
//	tracker := status.NewTracker(holder)
//
//	srv, err := server.NewServer(cfg, server.Dependencies{
//	    Tracker:   tracker,
//	    Lifecycle: holder,
//	    Logger:    logger,
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx)
//
// # Routes
//
//   - health endpoints at the configured liveness, readiness and status paths
//   - /version
//   - the metrics path when metrics are enabled
//   - the lifecycle admin endpoint when enabled
//   - everything else goes to the application handler: a reverse proxy to
//     server.upstream_url, or the built-in GET /ping
//
// Every route passes through request IDs, panic recovery and access logging.
// Application routes additionally pass admission, tracking and metrics, so
// only application requests count as in progress.
//
// # Graceful Shutdown
//
// Shutdown moves the lifecycle through HALTING_LOW_PRIORITY_EVENTS (still
// accepting for halt_grace_period), then HALTING_HIGH_PRIORITY_EVENTS (new
// application requests get 503) while WaitForDrain polls the in-progress
// count, and finally HALTED before closing the listener. The sequence is
// bounded by server.shutdown_timeout.
//
// Signal handling lives in the CLI; cancel the context passed to Start or
// call Stop to begin the sequence.
package server
