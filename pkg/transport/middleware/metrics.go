package middleware

import (
	"net/http"
	"time"
)

// RequestRecorder records completed requests.
type RequestRecorder interface {
	RecordRequest(method string, code int, duration time.Duration)
}

// MetricsMiddleware records the method, status code and duration of every
// request that completes. Requests that panic are not recorded.
//
// Example usage:
//
//	handler = MetricsMiddleware(collector)(handler)
func MetricsMiddleware(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			recorder.RecordRequest(r.Method, rw.statusCode, time.Since(start))
		})
	}
}
