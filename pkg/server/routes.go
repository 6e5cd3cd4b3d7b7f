package server

import (
	"net/http"

	"cheddar-hq/adapter/pkg/security/auth"
	"cheddar-hq/adapter/pkg/telemetry/health"
	"cheddar-hq/adapter/pkg/transport/middleware"
)

// setupRoutes configures HTTP routes and the middleware chain.
//
// Every route gets request IDs, panic recovery and access logging.
// Application routes additionally go through admission, tracking and
// request metrics.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	cfg := s.config

	health.Handlers{
		Liveness:  s.deps.Checker.LivenessHandler(),
		Readiness: s.deps.Checker.ReadinessHandler(),
		Status:    health.StatusHandler(s.deps.Tracker, s.logger),
		Version:   health.VersionHandler(s.deps.Build.Version, s.deps.Build.Commit, s.deps.Build.BuildTime),
	}.Register(mux, &cfg.Telemetry.Health)

	if s.deps.Metrics != nil && s.deps.Metrics.Enabled() {
		mux.Handle(cfg.Telemetry.Metrics.Path, s.deps.Metrics.Handler())
	}

	if cfg.Server.Admin.Enabled {
		var admin http.Handler = LifecycleAdminHandler(s.deps.Lifecycle, s.logger)
		if len(cfg.Server.Admin.Tokens) > 0 {
			validator := auth.NewTokenValidatorFromConfig(cfg.Server.Admin.Tokens)
			admin = auth.NewTokenMiddleware(validator, nil, s.logger).Handle(admin)
		} else {
			s.logger.Warn("lifecycle admin endpoint is enabled without tokens", "path", cfg.Server.Admin.Path)
		}
		mux.Handle(cfg.Server.Admin.Path, admin)
	}

	mux.Handle("/", s.applicationChain(s.deps.App))

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler
}

// applicationChain wraps app with admission, tracking and metrics,
// outermost first.
func (s *Server) applicationChain(app http.Handler) http.Handler {
	handler := app

	if s.deps.Metrics != nil && s.deps.Metrics.Enabled() {
		handler = middleware.MetricsMiddleware(s.deps.Metrics)(handler)
	}

	handler = middleware.TrackingMiddleware(s.deps.Tracker)(handler)

	if admission := s.config.Server.Admission; admission.Enabled {
		opts := middleware.AdmissionOptions{
			RetryAfter: admission.RetryAfter,
			Logger:     s.logger,
		}
		if s.deps.Metrics != nil {
			opts.Recorder = s.deps.Metrics
		}
		handler = middleware.AdmissionMiddleware(s.deps.Tracker, opts)(handler)
	}

	return handler
}
