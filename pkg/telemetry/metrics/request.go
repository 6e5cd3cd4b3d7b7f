package metrics

import (
	"time"

	"cheddar-hq/adapter/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks metrics related to request processing.
//
// Metrics:
//   - cheddar_adapter_requests_total: Completed requests by method and status code
//   - cheddar_adapter_request_duration_seconds: Request duration histogram
//   - cheddar_adapter_requests_rejected_total: Requests rejected by admission control
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rejectedTotal   *prometheus.CounterVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method"},
		),

		rejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_rejected_total",
				Help:      "Total number of requests rejected because the adapter was not accepting requests",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.rejectedTotal,
	)

	return rm
}

// RecordRequest records a completed request.
func (rm *RequestMetrics) RecordRequest(method, code string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(method, code).Inc()
	rm.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordRejected records a rejected request.
func (rm *RequestMetrics) RecordRejected(reason string) {
	rm.rejectedTotal.WithLabelValues(reason).Inc()
}
