package fsmkit

import (
	"context"
)

// State represents a state in the state machine.
type State interface {
	Name() string
}

// Event represents an event that can trigger a state transition.
type Event interface {
	Name() string
}

// Guard evaluates whether a candidate transition may fire. Only an explicit
// false blocks the candidate; a transition without a guard always passes.
type Guard func(ctx context.Context, from State, event Event) bool

// Callback executes side effects after a transition's state change has been
// applied. It runs synchronously inside Fire, after the onEnter hook of the
// new state.
type Callback func(ctx context.Context, from, to State, event Event)

// Hook executes side effects when the machine enters or leaves a specific
// state, independent of which transition caused it. Hooks are never invoked
// for the initial state at construction.
type Hook func(ctx context.Context, state State)

// TransitionLogger receives a synchronous record of every selected transition
// strictly before any state mutation or hook runs. Implementations live
// outside the core; see the logger subpackage for ready-made adapters.
type TransitionLogger interface {
	LogTransition(ctx context.Context, event, from, to string)
}

// Transition defines a state change triggered by an event, with an optional
// guard and an optional post-transition callback. Transitions are declared
// once at construction and never mutated afterwards.
type Transition struct {
	From     State
	To       State
	Event    Event
	Guard    Guard    // nil means the candidate always passes
	Callback Callback // nil means no post-transition side effect
}

// TransitionEvent describes one completed transition. It is delivered to
// every active subscription of the machine that produced it.
type TransitionEvent struct {
	From  State
	To    State
	Event Event
}

// StateMachine defines the core finite state machine operations.
type StateMachine interface {
	Current() State
	CanFire(ctx context.Context, event Event) bool
	Fire(ctx context.Context, event Event) bool
	Subscribe(ctx context.Context) *Subscription
	Close() error
}

// StringState provides a simple string-based state implementation for basic use cases.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent provides a simple string-based event implementation for basic use cases.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}
