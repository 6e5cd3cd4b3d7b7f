package status

import (
	"sync"

	"go.uber.org/atomic"

	"cheddar-hq/adapter/pkg/lifecycle"
)

// Tracker counts REST requests in progress and reports whether the adapter
// should accept new ones.
//
// All methods are safe for concurrent use and never block.
type Tracker struct {
	inProgress atomic.Int64
	provider   lifecycle.Provider
}

// Snapshot is a point-in-time view of the adapter for monitoring callers.
type Snapshot struct {
	LifecycleStatus    lifecycle.Status `json:"lifecycle_status"`
	AcceptingRequests  bool             `json:"accepting_requests"`
	RequestsInProgress int64            `json:"requests_in_progress"`
}

// NewTracker creates a tracker that consults provider for the lifecycle
// status on every IsAcceptingRequests call.
func NewTracker(provider lifecycle.Provider) *Tracker {
	return &Tracker{provider: provider}
}

// RequestProcessingStarted records that a request has started.
func (t *Tracker) RequestProcessingStarted() {
	t.inProgress.Inc()
}

// RequestProcessingFinished records that a request has finished.
//
// Callers must pair every call with exactly one earlier
// RequestProcessingStarted. Pairing is not checked: extra calls drive the
// count below zero.
func (t *Tracker) RequestProcessingFinished() {
	t.inProgress.Dec()
}

// RestRequestsInProgress returns the number of requests started but not yet
// finished.
func (t *Tracker) RestRequestsInProgress() int64 {
	return t.inProgress.Load()
}

// IsAcceptingRequests reports whether the current lifecycle status admits
// new requests. Provider errors are returned unchanged.
func (t *Tracker) IsAcceptingRequests() (bool, error) {
	s, err := t.provider.LifecycleStatus()
	if err != nil {
		return false, err
	}
	return s.AcceptsRequests(), nil
}

// Track records the start of a request and returns the matching release.
// The release is safe to call more than once; only the first call counts.
//
//	defer tracker.Track()()
func (t *Tracker) Track() func() {
	t.RequestProcessingStarted()

	var once sync.Once
	return func() {
		once.Do(t.RequestProcessingFinished)
	}
}

// Snapshot reads the in-progress count and the lifecycle status.
// The two reads are not taken atomically with respect to each other.
func (t *Tracker) Snapshot() (Snapshot, error) {
	inProgress := t.RestRequestsInProgress()

	s, err := t.provider.LifecycleStatus()
	if err != nil {
		return Snapshot{RequestsInProgress: inProgress}, err
	}

	return Snapshot{
		LifecycleStatus:    s,
		AcceptingRequests:  s.AcceptsRequests(),
		RequestsInProgress: inProgress,
	}, nil
}
