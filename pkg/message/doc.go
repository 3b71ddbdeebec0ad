// Package message defers in-process event dispatch until the host
// application says it is ready.
//
// # Overview
//
// Components register listeners for named event types. Events triggered
// before Start are queued; Start flushes the queue through the listeners and
// from then on Trigger calls listeners synchronously. The typical use is a UI
// that builds many widgets, some of which raise events during construction:
// nothing is delivered until every widget exists.
//
//	bus := message.New()
//
//	bus.Register("theme.changed", "sidebar", func(params any) error {
//	    return sidebar.ApplyTheme(params.(Theme))
//	})
//
//	_ = bus.Trigger("theme.changed", dark) // queued
//
//	if err := bus.Start(); err != nil {    // sidebar receives dark now
//	    return err
//	}
//
//	_ = bus.Trigger("theme.changed", light) // delivered immediately
//
// # Listeners
//
// A listener is identified by (event type, id). Registering the same pair
// again replaces the callback without changing its position in the dispatch
// order, which is first-registration order. Listen generates the id.
// Unregistering something that was never registered does nothing, and
// triggering an event type nobody listens to is not an error.
//
// Params are handed to every listener as-is. Listeners share whatever the
// caller passed in.
//
// # Drain Order
//
// By default Start drains the backlog newest first (LIFO). Use
// WithDrainOrder(FIFO) to deliver in arrival order.
//
// # Listener Errors
//
// A listener returning an error stops the dispatch: later listeners for that
// event are skipped, a drain in progress stops, and Trigger or Start returns
// a *ListenerError. Undrained messages stay queued. WithFailurePolicy(Isolate)
// runs everything and returns the errors combined with go.uber.org/multierr.
// Panics are not recovered.
//
// # Forgotten Start
//
// If events are queued on a bus that has never been started, a warning is
// sent to the Warner after NotStartedWarningDelay. Only one timer is pending
// at a time and Start cancels it. Once a bus has been started it never warns
// again, even after Stop.
//
// # Default Bus
//
// Package-level Register, Trigger, Start and friends operate on Default(),
// a process-wide Bus. Libraries should take a *Bus instead.
package message
