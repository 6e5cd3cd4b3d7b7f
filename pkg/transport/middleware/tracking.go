package middleware

import "net/http"

// RequestTracker scopes a request's in-progress accounting.
type RequestTracker interface {
	// Track records a started request and returns its release.
	Track() func()
}

// TrackingMiddleware counts every request reaching next as in progress
// until next returns. The count is released on every exit path, including
// panics, which continue to propagate to outer middleware.
//
// Example usage:
//
//	handler = TrackingMiddleware(tracker)(handler)
func TrackingMiddleware(tracker RequestTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer tracker.Track()()

			next.ServeHTTP(w, r)
		})
	}
}
