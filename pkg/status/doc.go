// Package status tracks REST request admission for a Cheddar service adapter.
//
// A Tracker answers two questions while requests are being served:
//
//   - how many requests are in progress right now (RestRequestsInProgress)
//   - whether the adapter should accept new requests (IsAcceptingRequests)
//
// The count is an atomic integer mutated only by RequestProcessingStarted and
// RequestProcessingFinished. The acceptance answer is derived on every call
// from a lifecycle.Provider; the tracker never caches it, so a lifecycle
// transition is visible to the very next query.
//
// # Transport usage
//
// The transport brackets each request with Track so that the finish fires on
// every exit path, including panics:
//
//	func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    defer tracker.Track()()
//	    h.next.ServeHTTP(w, r)
//	}
//
// # Caller contract
//
// The tracker does not validate that starts and finishes are paired. A
// finish without a start makes the count negative. The tracker also never
// rejects work itself: acting on IsAcceptingRequests is the transport's job.
package status
