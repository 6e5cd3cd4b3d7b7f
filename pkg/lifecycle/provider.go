package lifecycle

// Provider reports the current lifecycle status of the service.
//
// Implementations must be safe to call from any goroutine at any time and
// must not have side effects on the caller. A Provider that cannot determine
// the status returns an error, which callers propagate unchanged.
type Provider interface {
	LifecycleStatus() (Status, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func() (Status, error)

// LifecycleStatus calls f.
func (f ProviderFunc) LifecycleStatus() (Status, error) {
	return f()
}

// StaticProvider returns a Provider that always reports s.
func StaticProvider(s Status) Provider {
	return ProviderFunc(func() (Status, error) {
		return s, nil
	})
}
