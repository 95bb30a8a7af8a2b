package fsmkit

// Builder provides a fluent API for declaring state machines. Declarations
// are validated when Build constructs the machine.
type Builder struct {
	initial State
	opts    []Option

	from     State
	event    Event
	to       State
	guard    Guard
	callback Callback
}

// NewBuilder creates a builder for a machine starting at the given state.
func NewBuilder(initial State) *Builder {
	return &Builder{initial: initial}
}

// From starts a new transition declaration from the given state.
func (b *Builder) From(state State) *Builder {
	b.reset()
	b.from = state
	return b
}

// On sets the event that triggers the current transition.
func (b *Builder) On(event Event) *Builder {
	b.event = event
	return b
}

// To sets the target state of the current transition.
func (b *Builder) To(state State) *Builder {
	b.to = state
	return b
}

// Guard attaches a guard predicate to the current transition.
func (b *Builder) Guard(guard Guard) *Builder {
	b.guard = guard
	return b
}

// Do attaches a post-transition callback to the current transition.
func (b *Builder) Do(callback Callback) *Builder {
	b.callback = callback
	return b
}

// Add finalizes the current transition declaration. Declaration order across
// Add calls is the precedence order among guarded alternatives.
func (b *Builder) Add() *Builder {
	b.opts = append(b.opts, WithTransition(b.from, b.to, b.event,
		WithGuard(b.guard), WithCallback(b.callback)))
	b.reset()
	return b
}

// OnEnter registers an enter hook for the given state.
func (b *Builder) OnEnter(state State, hook Hook) *Builder {
	b.opts = append(b.opts, WithOnEnter(state, hook))
	return b
}

// OnExit registers an exit hook for the given state.
func (b *Builder) OnExit(state State, hook Hook) *Builder {
	b.opts = append(b.opts, WithOnExit(state, hook))
	return b
}

// Logger supplies the transition logger capability.
func (b *Builder) Logger(logger TransitionLogger) *Builder {
	b.opts = append(b.opts, WithLogger(logger))
	return b
}

// Buffer sets the per-subscription capacity of the notification channel.
func (b *Builder) Buffer(size int) *Builder {
	b.opts = append(b.opts, WithSubscriptionBuffer(size))
	return b
}

// Build constructs the machine from the accumulated declarations.
func (b *Builder) Build() (*Machine, error) {
	return New(b.initial, b.opts...)
}

// MustBuild constructs the machine and panics if any declaration is invalid.
func (b *Builder) MustBuild() *Machine {
	return MustNew(b.initial, b.opts...)
}

func (b *Builder) reset() {
	b.from = nil
	b.event = nil
	b.to = nil
	b.guard = nil
	b.callback = nil
}
