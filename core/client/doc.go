// Package client drives one chat request end to end: it asks an [ai.Provider]
// to build the vendor request, executes it on a shared HTTP transport, reads
// the response body line by line and turns the vendor's stream into a uniform
// sequence of events.
//
// Two delivery styles are offered over the same state machine. [Client.Stream]
// returns a [Stream] whose channel yields zero or more [EventMessage] events
// followed by exactly one [EventDone]; [Client.Ask] adapts that stream to a
// [Listener] with OnMessage, OnError and OnComplete callbacks. In both cases
// the network call and the decode loop run on a worker goroutine, never on
// the caller's.
//
// One malformed stream line never ends a stream: it is logged, counted and
// skipped. Build failures, transport failures, non-2xx responses and body
// read failures end it with an *ai.Error whose kind is ai.ErrBuild,
// ai.ErrNetwork, ai.ErrHTTP or ai.ErrData respectively.
package client
