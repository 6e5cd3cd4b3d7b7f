package metrics

import (
	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/lifecycle"

	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleMetrics tracks the adapter's lifecycle and tracker state.
//
// Metrics:
//   - cheddar_adapter_lifecycle_status: 1 for the current status, 0 for the others
//   - cheddar_adapter_lifecycle_transitions_total: Status changes by from and to
//   - cheddar_adapter_requests_in_progress: Requests started but not finished
//   - cheddar_adapter_accepting_requests: 1 when accepting requests, 0 otherwise
type LifecycleMetrics struct {
	status      *prometheus.GaugeVec
	transitions *prometheus.CounterVec
}

// NewLifecycleMetrics creates and registers lifecycle metrics with the provided registry.
func NewLifecycleMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LifecycleMetrics {
	lm := &LifecycleMetrics{
		status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lifecycle_status",
				Help:      "Current lifecycle status (1=current, 0=other)",
			},
			[]string{"status"},
		),

		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lifecycle_transitions_total",
				Help:      "Total number of lifecycle status transitions",
			},
			[]string{"from", "to"},
		),
	}

	registry.MustRegister(lm.status, lm.transitions)

	// Pre-populate every known status so dashboards see a complete set.
	for _, s := range lifecycle.Statuses() {
		lm.status.WithLabelValues(s.String()).Set(0)
	}

	return lm
}

// SetStatus marks s as the current status.
func (lm *LifecycleMetrics) SetStatus(s lifecycle.Status) {
	for _, known := range lifecycle.Statuses() {
		lm.status.WithLabelValues(known.String()).Set(0)
	}
	lm.status.WithLabelValues(s.String()).Set(1)
}

// RecordTransition counts a transition and updates the current status.
func (lm *LifecycleMetrics) RecordTransition(from, to lifecycle.Status) {
	lm.transitions.WithLabelValues(from.String(), to.String()).Inc()
	lm.SetStatus(to)
}

func (lm *LifecycleMetrics) observeTracker(cfg *config.MetricsConfig, registry *prometheus.Registry, tracker TrackerSource) {
	registry.MustRegister(
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_in_progress",
				Help:      "Number of requests started but not yet finished",
			},
			func() float64 { return float64(tracker.RestRequestsInProgress()) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "accepting_requests",
				Help:      "Whether the adapter is accepting requests (1=yes, 0=no or unknown)",
			},
			func() float64 {
				accepting, err := tracker.IsAcceptingRequests()
				if err != nil || !accepting {
					return 0
				}
				return 1
			},
		),
	)
}
