package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"
)

// Rejection reasons reported to the RejectionRecorder.
const (
	ReasonNotAccepting  = "not_accepting"
	ReasonProviderError = "provider_error"
)

// AcceptanceChecker reports whether new requests should be admitted.
type AcceptanceChecker interface {
	IsAcceptingRequests() (bool, error)
}

// RejectionRecorder counts rejected requests.
type RejectionRecorder interface {
	RecordRejected(reason string)
}

// AdmissionOptions configures AdmissionMiddleware.
type AdmissionOptions struct {
	// RetryAfter is advertised in the Retry-After header, rounded up to
	// whole seconds. Zero omits the header.
	RetryAfter time.Duration

	// ExcludedPaths always pass, e.g. probe endpoints.
	ExcludedPaths []string

	// Recorder is optional.
	Recorder RejectionRecorder

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// AdmissionMiddleware rejects requests with 503 Service Unavailable while
// checker reports that the adapter is not accepting requests. A checker
// error also rejects the request and is logged. Rejected requests never
// reach next, so they are never counted as in progress when tracking sits
// inside this middleware.
//
// Example usage:
//
//	handler = AdmissionMiddleware(tracker, AdmissionOptions{RetryAfter: 5 * time.Second})(handler)
func AdmissionMiddleware(checker AcceptanceChecker, opts AdmissionOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "transport.admission")

	excluded := make(map[string]struct{}, len(opts.ExcludedPaths))
	for _, p := range opts.ExcludedPaths {
		excluded[p] = struct{}{}
	}

	retryAfter := ""
	if opts.RetryAfter > 0 {
		retryAfter = strconv.Itoa(int(math.Ceil(opts.RetryAfter.Seconds())))
	}

	reject := func(w http.ResponseWriter, reason string, resp *ErrorResponse) {
		if opts.Recorder != nil {
			opts.Recorder.RecordRejected(reason)
		}
		if retryAfter != "" {
			w.Header().Set("Retry-After", retryAfter)
		}
		WriteError(w, resp)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := excluded[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			accepting, err := checker.IsAcceptingRequests()
			if err != nil {
				logger.ErrorContext(r.Context(), "failed to read lifecycle status, rejecting request",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
				)
				reject(w, ReasonProviderError, NewServiceUnavailableError(
					"The service is temporarily unavailable.", CodeLifecycleUnavailable))
				return
			}

			if !accepting {
				logger.DebugContext(r.Context(), "request rejected, not accepting requests",
					"method", r.Method,
					"path", r.URL.Path,
				)
				reject(w, ReasonNotAccepting, NewServiceUnavailableError(
					"The service is not accepting requests. Please retry later.", CodeNotAccepting))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
