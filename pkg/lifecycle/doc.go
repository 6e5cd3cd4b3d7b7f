// Package lifecycle describes the operational phases of a Cheddar service
// and the collaborator that reports them.
//
// # Phases
//
// A service normally moves through:
//
//	STARTING -> RUNNING <-> PAUSED -> HALTING_LOW_PRIORITY_EVENTS
//	         -> HALTING_HIGH_PRIORITY_EVENTS -> HALTED
//
// Status.AcceptsRequests is the single place that decides which phases admit
// REST traffic. It is an allow-list, so an unrecognised phase never admits.
//
// # Providers
//
// Consumers depend on the one-method Provider interface. Holder is the
// in-process implementation used by the cheddar binary; tests usually use
// ProviderFunc or StaticProvider:
//
//	holder, err := lifecycle.NewHolder(lifecycle.Starting, logger)
//	if err != nil {
//	    return err
//	}
//	holder.OnTransition(func(from, to lifecycle.Status) {
//	    collector.RecordLifecycleTransition(from, to)
//	})
//	_ = holder.SetLifecycleStatus(lifecycle.Running)
package lifecycle
