// Package middleware provides the HTTP middleware that wraps the adapter's
// application routes.
//
// # Middleware Chain
//
// Application routes are wrapped outermost first:
//
//	RequestID → Recovery → Logging → Admission → Tracking → Metrics → handler
//
// Each layer:
//
//   - RequestIDMiddleware: reuse X-Request-ID or generate a UUID v4
//   - RecoveryMiddleware: turn panics into a JSON 500
//   - LoggingMiddleware: access log with status and latency
//   - AdmissionMiddleware: 503 with Retry-After while the adapter is not
//     accepting requests
//   - TrackingMiddleware: count the request as in progress until it returns
//   - MetricsMiddleware: request count and duration by method and code
//
// Tracking sits inside admission so rejected requests are never counted, and
// inside recovery so a panicking handler is released before the 500 is
// written.
//
// # Error Format
//
//	{
//	  "error": {
//	    "message": "The service is not accepting requests. Please retry later.",
//	    "type": "service_unavailable",
//	    "code": "not_accepting_requests"
//	  }
//	}
package middleware
