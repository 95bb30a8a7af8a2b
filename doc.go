// Package fsmkit provides a generic, explicitly-defined finite state machine
// driven by discrete events, intended for embedding inside application code.
//
// The package revolves around two minimal interfaces – State and Event – that
// give you full freedom to model domain specific states and events while the
// library handles:
//  1. Transition lookup with declaration-order precedence
//  2. Optional Guard evaluation to accept or reject candidates
//  3. A fixed side-effect sequence (logger, exit hook, state change, enter
//     hook, transition callback, notification) on every transition
//  4. Concurrency-safe access to the current state
//
// Ready-made helpers such as StringState and StringEvent let you get started
// quickly for simple scenarios, while custom struct types can satisfy the
// interfaces when additional data is required.
//
// # Architecture
//
// Machine stores transitions in an in-memory nested map
// map[FromState][Event][]Transition for O(1) lookups and guards all access
// with a mutex; Fire runs its whole evaluation and side-effect sequence under
// exclusive access, so concurrent callers are serialized per instance.
// Configuration uses the functional options pattern; a fluent Builder is
// available as an alternative.
//
// # Usage
//
// Basic example using the options pattern:
//
//	const (
//	    Draft    = fsmkit.StringState("draft")
//	    InReview = fsmkit.StringState("in_review")
//	    Submit   = fsmkit.StringEvent("submit")
//	)
//
//	machine := fsmkit.MustNew(Draft,
//	    fsmkit.WithTransition(Draft, InReview, Submit),
//	)
//	defer machine.Close()
//
//	if machine.Fire(context.Background(), Submit) {
//	    // machine.Current() == InReview
//	}
//
// Fire reports whether the event caused a transition. An event with no
// configured transition from the current state, or one whose every candidate
// was rejected by its guard, returns false and leaves the machine untouched.
// Neither outcome is an error.
//
// # Guards
//
// When several transitions share a source state and event, the first declared
// candidate whose guard does not return false wins; later candidates are
// never evaluated. A transition without a guard always passes, so an
// unguarded candidate declared last acts as a fallback:
//
//	fsmkit.WithTransition(Water, Steam, Heat, fsmkit.WithGuard(hotEnough)),
//	fsmkit.WithTransition(Water, Water, Heat),
//
// # Hooks and callbacks
//
// WithOnEnter and WithOnExit bind hooks to states; WithCallback binds a
// callback to one transition. All of them run synchronously inside Fire, in
// the fixed order documented on Machine.Fire. Self-transitions run both the
// exit and the enter hook of their state. Panics in caller-supplied code
// propagate out of Fire without rolling back steps that already ran.
//
// # Notifications
//
// Subscribe returns a Subscription whose channel delivers one TransitionEvent
// per successful Fire. Delivery is asynchronous relative to Fire; a listener
// that subscribes after an event was emitted does not see that event, and a
// listener that stops draining its channel is dropped rather than blocking
// the machine. Close the machine when done to release all subscriptions.
//
// # Logging
//
// The machine depends only on the one-method TransitionLogger capability,
// invoked before any state mutation. The logger subpackage provides adapters
// for log/slog and plain console output.
package fsmkit
