package health

import (
	"context"
	"errors"
	"fmt"

	"cheddar-hq/adapter/pkg/status"
)

// ErrNotAccepting is returned by AdapterCheck while the adapter's lifecycle
// status does not admit requests.
var ErrNotAccepting = errors.New("adapter is not accepting requests")

// SnapshotSource provides the adapter status served on the status endpoint.
type SnapshotSource interface {
	Snapshot() (status.Snapshot, error)
}

// AdapterCheck returns a readiness check that fails while the adapter is not
// accepting requests or its lifecycle provider fails.
func AdapterCheck(source SnapshotSource) CheckFunc {
	return func(ctx context.Context) error {
		snap, err := source.Snapshot()
		if err != nil {
			return fmt.Errorf("lifecycle status unavailable: %w", err)
		}
		if !snap.AcceptingRequests {
			return fmt.Errorf("%w (lifecycle status %s)", ErrNotAccepting, snap.LifecycleStatus)
		}
		return nil
	}
}
