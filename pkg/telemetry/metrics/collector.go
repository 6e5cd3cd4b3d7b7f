package metrics

import (
	"strconv"
	"sync"
	"time"

	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/lifecycle"

	"github.com/prometheus/client_golang/prometheus"
)

// maxMethodCardinality bounds the number of distinct method labels.
// Methods arrive from clients, so anything past the limit is folded into "other".
const maxMethodCardinality = 32

// TrackerSource is the read side of the request status tracker.
type TrackerSource interface {
	RestRequestsInProgress() int64
	IsAcceptingRequests() (bool, error)
}

// TransitionSource is a lifecycle provider that reports status changes.
type TransitionSource interface {
	lifecycle.Provider
	OnTransition(fn lifecycle.TransitionFunc)
}

// Collector owns the adapter's Prometheus registry and records request and
// lifecycle metrics. A disabled collector turns every record call into a no-op.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics   *RequestMetrics
	lifecycleMetrics *LifecycleMetrics

	// Cardinality tracking
	cardinalityLimiter *CardinalityLimiter

	observeOnce sync.Once
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.ObserveTracker(tracker)
//	collector.ObserveLifecycle(holder)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		config:             *cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(maxMethodCardinality),
	}

	// Set defaults if not specified
	if c.config.Namespace == "" {
		c.config.Namespace = config.DefaultMetricsNamespace
	}
	if c.config.Subsystem == "" {
		c.config.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(c.config.RequestDurationBuckets) == 0 {
		c.config.RequestDurationBuckets = config.DefaultRequestDurationBuckets
	}

	if c.config.Enabled {
		c.requestMetrics = NewRequestMetrics(&c.config, registry)
		c.lifecycleMetrics = NewLifecycleMetrics(&c.config, registry)
	}

	return c
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// ObserveTracker exposes the tracker's in-progress count and accepting flag
// as gauges read at scrape time. Only the first call has an effect.
func (c *Collector) ObserveTracker(tracker TrackerSource) {
	if !c.config.Enabled {
		return
	}

	c.observeOnce.Do(func() {
		c.lifecycleMetrics.observeTracker(&c.config, c.registry, tracker)
	})
}

// ObserveLifecycle sets the lifecycle status gauge from the source's current
// status and keeps it, and the transitions counter, up to date.
func (c *Collector) ObserveLifecycle(source TransitionSource) {
	if !c.config.Enabled {
		return
	}

	if current, err := source.LifecycleStatus(); err == nil {
		c.lifecycleMetrics.SetStatus(current)
	}
	source.OnTransition(c.RecordTransition)
}

// RecordTransition records a lifecycle status change.
func (c *Collector) RecordTransition(from, to lifecycle.Status) {
	if !c.config.Enabled {
		return
	}

	c.lifecycleMetrics.RecordTransition(from, to)
}

// RecordRequest records metrics for a completed request.
//
// Parameters:
//   - method: HTTP method of the request
//   - code: HTTP status code written to the client
//   - duration: Total request duration
func (c *Collector) RecordRequest(method string, code int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	// Check cardinality limit
	if !c.cardinalityLimiter.Allow(method) {
		// Aggregate into "other" to prevent cardinality explosion
		method = "other"
	}

	c.requestMetrics.RecordRequest(method, strconv.Itoa(code), duration)
}

// RecordRejected records a request turned away before it was processed.
//
// Parameters:
//   - reason: Why the request was rejected ("not_accepting", "provider_error")
func (c *Collector) RecordRejected(reason string) {
	if !c.config.Enabled {
		return
	}

	c.requestMetrics.RecordRejected(reason)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label value is allowed. Returns true if the value
// already exists or if the limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
