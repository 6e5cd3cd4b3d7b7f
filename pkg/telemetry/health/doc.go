// Package health provides the adapter's probe and status endpoints.
//
// # Endpoints
//
//   - /health: Liveness probe, 200 while the process is running
//   - /ready: Readiness probe, 200 when every registered check passes, else 503
//   - /status: Adapter status snapshot (lifecycle status, accepting flag,
//     requests in progress); 200 when accepting, 503 when not, 500 when the
//     lifecycle provider fails
//   - /version: Build information
//
// All endpoints answer GET and HEAD only.
//
// # Usage
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	checker.RegisterCheck("adapter", health.AdapterCheck(tracker))
//
//	health.Handlers{
//	    Liveness:  checker.LivenessHandler(),
//	    Readiness: checker.ReadinessHandler(),
//	    Status:    health.StatusHandler(tracker, logger),
//	    Version:   health.VersionHandler(version, commit, buildTime),
//	}.Register(mux, &cfg.Telemetry.Health)
//
// # Rate Limiting
//
// When telemetry.health.rate_limit is positive each endpoint is wrapped with
// a golang.org/x/time/rate token bucket and answers 429 once it is exhausted.
package health
