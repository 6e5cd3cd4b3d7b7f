package lifecycle

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TransitionFunc is called after the holder moves from one status to another.
type TransitionFunc func(from, to Status)

// Holder is an in-memory, concurrency-safe lifecycle status owner.
// It implements Provider.
//
// The holder records transitions but does not police their order; whoever
// owns the holder decides when the service moves between phases.
type Holder struct {
	mu             sync.RWMutex
	status         Status
	lastTransition time.Time
	observers      []TransitionFunc
	logger         *slog.Logger
}

// NewHolder creates a holder starting in the given status.
// A nil logger falls back to slog.Default().
func NewHolder(initial Status, logger *slog.Logger) (*Holder, error) {
	if !initial.IsKnown() {
		return nil, fmt.Errorf("invalid initial status: %w: %q", ErrUnknownStatus, initial)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Holder{
		status:         initial,
		lastTransition: time.Now(),
		logger:         logger.With("component", "lifecycle"),
	}, nil
}

// LifecycleStatus returns the current status. It never fails.
func (h *Holder) LifecycleStatus() (Status, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status, nil
}

// SetLifecycleStatus moves the holder to s. Setting the current status again
// is a no-op and does not notify observers.
func (h *Holder) SetLifecycleStatus(s Status) error {
	if !s.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}

	h.mu.Lock()
	from := h.status
	if from == s {
		h.mu.Unlock()
		return nil
	}
	h.status = s
	h.lastTransition = time.Now()
	observers := make([]TransitionFunc, len(h.observers))
	copy(observers, h.observers)
	h.mu.Unlock()

	h.logger.Info("lifecycle status changed",
		"from", from.String(),
		"to", s.String(),
		"accepting_requests", s.AcceptsRequests(),
	)

	for _, fn := range observers {
		fn(from, s)
	}

	return nil
}

// OnTransition registers fn to be called after every status change.
// Observers run synchronously, outside the holder's lock, in registration
// order.
func (h *Holder) OnTransition(fn TransitionFunc) {
	if fn == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, fn)
}

// LastTransition returns when the current status was entered.
func (h *Holder) LastTransition() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastTransition
}
