package fsmkit

import (
	"fmt"
)

// defaultSubscriptionBuffer is the per-subscription channel capacity used
// when WithSubscriptionBuffer is not supplied.
const defaultSubscriptionBuffer = 16

// Option configures a state machine during construction.
type Option func(*Machine) error

// TransitionOption configures a single transition declaration.
type TransitionOption func(*Transition)

// New creates a state machine starting at the given initial state. The
// initial state is entered without invoking any hook. Everything — the
// transition table, hooks, logger — is supplied via options and immutable
// once New returns.
func New(initial State, opts ...Option) (*Machine, error) {
	if initial == nil {
		return nil, ErrNilInitialState
	}

	m := &Machine{
		current:     initial,
		transitions: make(map[string]map[string][]Transition),
		onEnter:     make(map[string]Hook),
		onExit:      make(map[string]Hook),
		buffer:      defaultSubscriptionBuffer,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.notifier = newNotifier(m.buffer)

	return m, nil
}

// MustNew creates a state machine and panics if construction fails,
// following the fail-fast pattern for machines declared at startup.
func MustNew(initial State, opts ...Option) *Machine {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithTransition declares a single transition.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *Machine) error {
		t := Transition{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return m.addTransition(t)
	}
}

// WithTransitions declares multiple transitions at once, preserving slice
// order as the precedence order among candidates sharing a from/event pair.
func WithTransitions(transitions ...Transition) Option {
	return func(m *Machine) error {
		for i, t := range transitions {
			if err := m.addTransition(t); err != nil {
				return fmt.Errorf("failed to add transition[%d] %s->%s on %s: %w",
					i, stateName(t.From), stateName(t.To), eventName(t.Event), err)
			}
		}
		return nil
	}
}

// WithGuard attaches a guard predicate to a transition. Nil guards are
// ignored; the transition then always passes.
func WithGuard(guard Guard) TransitionOption {
	return func(t *Transition) {
		if guard != nil {
			t.Guard = guard
		}
	}
}

// WithCallback attaches a post-transition callback to a transition. Nil
// callbacks are ignored.
func WithCallback(callback Callback) TransitionOption {
	return func(t *Transition) {
		if callback != nil {
			t.Callback = callback
		}
	}
}

// WithOnEnter registers a hook invoked whenever the machine enters the given
// state via Fire, including on self-transitions. Nil hooks are ignored.
func WithOnEnter(state State, hook Hook) Option {
	return func(m *Machine) error {
		if state == nil {
			return ErrInvalidHook
		}
		if hook != nil {
			m.onEnter[state.Name()] = hook
		}
		return nil
	}
}

// WithOnExit registers a hook invoked whenever the machine leaves the given
// state via Fire, including on self-transitions. Nil hooks are ignored.
func WithOnExit(state State, hook Hook) Option {
	return func(m *Machine) error {
		if state == nil {
			return ErrInvalidHook
		}
		if hook != nil {
			m.onExit[state.Name()] = hook
		}
		return nil
	}
}

// WithLogger supplies the transition logger capability. Nil loggers are
// ignored; without one the logging step is skipped entirely.
func WithLogger(logger TransitionLogger) Option {
	return func(m *Machine) error {
		if logger != nil {
			m.logger = logger
		}
		return nil
	}
}

// WithSubscriptionBuffer sets the per-subscription channel capacity of the
// notification channel. A minimum of 1 is enforced.
func WithSubscriptionBuffer(size int) Option {
	return func(m *Machine) error {
		m.buffer = max(size, 1)
		return nil
	}
}

// stateName and eventName render labels safely for error messages built
// from unvalidated declarations.
func stateName(s State) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name()
}

func eventName(e Event) string {
	if e == nil {
		return "<nil>"
	}
	return e.Name()
}
