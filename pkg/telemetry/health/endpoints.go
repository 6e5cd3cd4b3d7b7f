package health

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/status"
)

// VersionInfo contains build and version information.
type VersionInfo struct {
	// Version is the semantic version (e.g., "1.0.0")
	Version string `json:"version"`

	// Commit is the git commit hash
	Commit string `json:"commit"`

	// BuildTime is when the binary was built
	BuildTime string `json:"build_time"`

	// GoVersion is the Go version used to build
	GoVersion string `json:"go_version"`
}

// StatusResponse is the body served on the status endpoint.
type StatusResponse struct {
	status.Snapshot

	// Error is set when the lifecycle provider failed.
	Error string `json:"error,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// LivenessHandler returns an HTTP handler for the liveness probe endpoint.
//
// Example response:
//
//	{
//	    "status": "ok",
//	    "timestamp": "2026-10-19T10:30:00Z"
//	}
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}

		writeJSON(w, r, http.StatusOK, c.CheckLiveness(r.Context()))
	}
}

// ReadinessHandler returns an HTTP handler for the readiness probe endpoint.
// It performs all registered component health checks.
//
// Returns:
//   - 200 OK: every check passed
//   - 503 Service Unavailable: at least one check failed
//
// Example response (degraded):
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "adapter": {"status": "unhealthy", "message": "adapter is not accepting requests (lifecycle status HALTED)", "duration_ms": 0.01}
//	    },
//	    "timestamp": "2026-10-19T10:30:00Z"
//	}
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}

		result := c.CheckReadiness(r.Context())

		code := http.StatusOK
		if !result.Ready() {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, result)
	}
}

// StatusHandler returns an HTTP handler serving the adapter status snapshot.
//
// Returns:
//   - 200 OK: the adapter is accepting requests
//   - 503 Service Unavailable: the adapter is not accepting requests
//   - 500 Internal Server Error: the lifecycle provider failed
//
// Example response:
//
//	{
//	    "lifecycle_status": "RUNNING",
//	    "accepting_requests": true,
//	    "requests_in_progress": 3,
//	    "timestamp": "2026-10-19T10:30:00Z"
//	}
func StatusHandler(source SnapshotSource, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}

		snap, err := source.Snapshot()
		resp := StatusResponse{Snapshot: snap, Timestamp: time.Now()}

		code := http.StatusOK
		switch {
		case err != nil:
			logger.ErrorContext(r.Context(), "failed to read lifecycle status", "error", err)
			resp.Error = err.Error()
			code = http.StatusInternalServerError
		case !snap.AcceptingRequests:
			code = http.StatusServiceUnavailable
		}

		writeJSON(w, r, code, resp)
	}
}

// VersionHandler returns an HTTP handler for the version information endpoint.
func VersionHandler(version, commit, buildTime string) http.HandlerFunc {
	info := VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}

		writeJSON(w, r, http.StatusOK, info)
	}
}

// Handlers bundles the health endpoint handlers.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc
	Status    http.HandlerFunc
	Version   http.HandlerFunc
}

// Register mounts the handlers on mux at the configured paths.
// Version is always served at /version. A positive cfg.RateLimit caps each
// endpoint at that many requests per second.
func (h Handlers) Register(mux *http.ServeMux, cfg *config.HealthConfig) {
	routes := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{cfg.LivenessPath, h.Liveness},
		{cfg.ReadinessPath, h.Readiness},
		{cfg.StatusPath, h.Status},
		{"/version", h.Version},
	}

	for _, route := range routes {
		if route.handler == nil || route.path == "" {
			continue
		}
		mux.Handle(route.path, RateLimitedHandler(route.handler, cfg.RateLimit))
	}
}

// Paths returns the paths Register mounts for cfg.
func Paths(cfg *config.HealthConfig) []string {
	return []string{cfg.LivenessPath, cfg.ReadinessPath, cfg.StatusPath, "/version"}
}

// RateLimitedHandler wraps a handler with a token bucket allowing
// requestsPerSecond requests per second with an equal burst. Requests over
// the limit receive 429. A non-positive rate returns handler unchanged.
//
// Usage:
//
//	handler := RateLimitedHandler(checker.LivenessHandler(), 10) // 10 req/s
//	mux.Handle("/health", handler)
func RateLimitedHandler(handler http.HandlerFunc, requestsPerSecond int) http.HandlerFunc {
	if requestsPerSecond <= 0 {
		return handler
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)

	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		handler(w, r)
	}
}

// allowProbeMethod rejects anything but GET and HEAD.
func allowProbeMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(v)
	}
}
