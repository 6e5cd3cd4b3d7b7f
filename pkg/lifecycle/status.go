package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the operational phase of the service as reported by its
// lifecycle owner. Values outside the constants below are representable so
// that newer owners can report phases this package does not know yet.
type Status string

const (
	// Starting means the service is initializing and not yet serving.
	Starting Status = "STARTING"

	// Running means the service is fully operational.
	Running Status = "RUNNING"

	// Paused means background event processing is suspended while the REST
	// adapter keeps serving.
	Paused Status = "PAUSED"

	// HaltingLowPriorityEvents means shutdown has begun and low priority
	// event processing is being stopped.
	HaltingLowPriorityEvents Status = "HALTING_LOW_PRIORITY_EVENTS"

	// HaltingHighPriorityEvents means shutdown is draining high priority work.
	HaltingHighPriorityEvents Status = "HALTING_HIGH_PRIORITY_EVENTS"

	// Halted means the service has stopped.
	Halted Status = "HALTED"
)

// ErrUnknownStatus is returned when a status string does not name a known
// lifecycle phase.
var ErrUnknownStatus = errors.New("unknown lifecycle status")

// Statuses returns the known lifecycle phases in the order a service passes
// through them.
func Statuses() []Status {
	return []Status{
		Starting,
		Running,
		Paused,
		HaltingLowPriorityEvents,
		HaltingHighPriorityEvents,
		Halted,
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsKnown reports whether s is one of the phases returned by Statuses.
func (s Status) IsKnown() bool {
	switch s {
	case Starting, Running, Paused, HaltingLowPriorityEvents, HaltingHighPriorityEvents, Halted:
		return true
	}
	return false
}

// AcceptsRequests reports whether the REST adapter should admit new requests
// while the service is in phase s.
//
// This is an allow-list: RUNNING, PAUSED and HALTING_LOW_PRIORITY_EVENTS
// accept, everything else (including phases added after this was written)
// does not.
func (s Status) AcceptsRequests() bool {
	switch s {
	case Running, Paused, HaltingLowPriorityEvents:
		return true
	default:
		return false
	}
}

// ParseStatus converts a configuration or API value to a Status.
// Matching is case-insensitive and accepts '-' in place of '_'.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	s := Status(normalized)
	if !s.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ParseStatus it
// keeps unknown values verbatim, since a remote owner may report phases
// this build does not know.
func (s *Status) UnmarshalText(text []byte) error {
	*s = Status(strings.TrimSpace(string(text)))
	return nil
}
