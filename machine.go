package fsmkit

import (
	"context"
	"sync"
)

// Machine is a thread-safe in-memory state machine. The transition table is
// sealed once New returns; only the current state mutates afterwards, and
// only inside a successful Fire call.
//
// Transitions are stored in a nested map [fromState][event][]Transition for
// O(1) lookups. The per-key slice preserves declaration order, which is the
// precedence order among guarded alternatives.
type Machine struct {
	current     State
	transitions map[string]map[string][]Transition
	onEnter     map[string]Hook
	onExit      map[string]Hook
	logger      TransitionLogger
	notifier    *notifier
	buffer      int
	mu          sync.RWMutex
}

var _ StateMachine = (*Machine)(nil)

// Current returns the machine's current state without side effects.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire offers an event to the machine and reports whether it caused a
// transition. The whole evaluation and side-effect sequence runs under an
// internal mutex, so concurrent Fire calls on one instance are serialized
// and never observe a half-applied transition.
//
// On a selected candidate the side effects run synchronously in fixed order:
// transition logger, onExit hook of the previous state, state mutation,
// onEnter hook of the new state, the transition's own callback, and finally
// the notification emission. A target state equal to the source state is
// legal and still runs the full sequence.
//
// When no candidate matches or every matching candidate is rejected by its
// guard, Fire returns false and the machine is left untouched: no hooks, no
// callback, no notification.
//
// Panics raised by caller-supplied guards, hooks, callbacks, or the logger
// propagate to the caller of Fire. Steps already executed are not rolled
// back; in particular a panic in the onEnter hook or the callback leaves the
// machine in the new state.
func (m *Machine) Fire(ctx context.Context, event Event) bool {
	if event == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	selected := m.selectTransition(ctx, event)
	if selected == nil {
		return false
	}

	from := m.current
	to := selected.To

	if m.logger != nil {
		m.logger.LogTransition(ctx, event.Name(), from.Name(), to.Name())
	}
	if hook := m.onExit[from.Name()]; hook != nil {
		hook(ctx, from)
	}
	m.current = to
	if hook := m.onEnter[to.Name()]; hook != nil {
		hook(ctx, to)
	}
	if selected.Callback != nil {
		selected.Callback(ctx, from, to, event)
	}
	m.notifier.publish(TransitionEvent{From: from, To: to, Event: event})

	return true
}

// CanFire reports whether firing the event from the current state would
// select a transition. Guards are evaluated; no side effects run.
func (m *Machine) CanFire(ctx context.Context, event Event) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectTransition(ctx, event) != nil
}

// Subscribe registers a listener for transition events. The subscription
// receives every event emitted after it was created; earlier events are not
// replayed. Cancelling ctx unsubscribes automatically. Subscribing to a
// closed machine returns an already-closed subscription.
func (m *Machine) Subscribe(ctx context.Context) *Subscription {
	return m.notifier.subscribe(ctx)
}

// Close disposes the notification channel, closing all active subscriptions.
// The machine itself holds no other resources; Fire keeps working after
// Close but emits no notifications. Close is idempotent.
func (m *Machine) Close() error {
	return m.notifier.close()
}

// selectTransition scans the candidates for the current state in declaration
// order and returns the first one matching the event whose guard does not
// explicitly return false. Scanning stops at the first selected candidate;
// later guards are never evaluated. Callers must hold m.mu.
func (m *Machine) selectTransition(ctx context.Context, event Event) *Transition {
	candidates, ok := m.transitions[m.current.Name()][event.Name()]
	if !ok {
		return nil
	}

	for i := range candidates {
		t := &candidates[i]
		if t.Guard != nil && !t.Guard(ctx, m.current, event) {
			continue
		}
		return t
	}
	return nil
}

// addTransition appends a candidate to the table. Multiple transitions for
// the same from/event pair are allowed to support guard-based branching.
// Only construction code calls this; the table is sealed afterwards.
func (m *Machine) addTransition(t Transition) error {
	if t.From == nil || t.To == nil || t.Event == nil {
		return ErrInvalidTransition
	}

	fromName := t.From.Name()
	if _, ok := m.transitions[fromName]; !ok {
		m.transitions[fromName] = make(map[string][]Transition)
	}
	eventName := t.Event.Name()
	m.transitions[fromName][eventName] = append(m.transitions[fromName][eventName], t)
	return nil
}
