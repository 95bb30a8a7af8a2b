package fsmkit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Subscription receives transition events from a single machine. Events are
// delivered on a buffered channel, asynchronously relative to the Fire call
// that produced them; a caller cannot rely on a listener having run by the
// time Fire returns.
type Subscription struct {
	id     uuid.UUID
	ch     chan TransitionEvent
	n      *notifier
	closed bool
	mu     sync.RWMutex
}

// Events returns the channel delivering transition events. The channel is
// closed when the subscription or the owning machine is closed.
func (s *Subscription) Events() <-chan TransitionEvent {
	return s.ch
}

// Close unsubscribes from the machine and closes the event channel. No more
// events will be delivered. Close is idempotent and safe to call multiple
// times.
func (s *Subscription) Close() error {
	if s.n != nil {
		s.n.unsubscribe(s)
	} else {
		s.shutdown()
	}
	return nil
}

// send delivers an event without blocking. A full buffer drops the event and
// reports failure so the notifier can remove the slow subscription.
func (s *Subscription) send(ev TransitionEvent) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

func (s *Subscription) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// notifier is the machine's broadcast channel for transition events. Publish
// never blocks: each subscription has its own buffered channel and slow
// consumers are dropped rather than stalling Fire. A failing listener only
// ever affects its own subscription.
type notifier struct {
	subs      map[uuid.UUID]*Subscription
	buffer    int
	closed    bool
	done      chan struct{}
	mu        sync.RWMutex
	cleanupWg sync.WaitGroup // tracks async unsubscribe goroutines
}

// newNotifier creates a notifier whose subscriptions buffer up to buffer
// events each. A minimum of 1 is enforced, otherwise every send would be
// blocking and defeat the non-blocking design.
func newNotifier(buffer int) *notifier {
	return &notifier{
		subs:   make(map[uuid.UUID]*Subscription),
		buffer: max(buffer, 1),
		done:   make(chan struct{}),
	}
}

func (n *notifier) subscribe(ctx context.Context) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	sub := &Subscription{
		id: uuid.New(),
		ch: make(chan TransitionEvent, n.buffer),
		n:  n,
	}

	if n.closed {
		sub.shutdown()
		return sub
	}

	n.subs[sub.id] = sub

	// Auto-cleanup on context cancellation
	if ctx.Done() != nil {
		n.cleanupWg.Add(1)
		go func() {
			defer n.cleanupWg.Done()
			select {
			case <-ctx.Done():
				n.unsubscribe(sub)
			case <-n.done:
			}
		}()
	}

	return sub
}

// publish sends one event to every active subscription. It runs inside the
// machine's Fire critical section, so events are emitted exactly once per
// successful transition and in transition order.
func (n *notifier) publish(ev TransitionEvent) {
	// Publishes are frequent, subscription changes are not; RLock keeps
	// concurrent readers cheap.
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}

	for _, sub := range n.subs {
		if !sub.send(ev) {
			// Remove slow or closed subscriptions asynchronously to avoid
			// write-lock contention inside the publish path.
			n.cleanupWg.Add(1)
			go func(s *Subscription) {
				defer n.cleanupWg.Done()
				n.unsubscribe(s)
			}(sub)
		}
	}
}

func (n *notifier) unsubscribe(sub *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.subs, sub.id)
	sub.shutdown()
}

func (n *notifier) close() error {
	n.mu.Lock()

	if n.closed {
		n.mu.Unlock()
		return nil
	}

	n.closed = true
	close(n.done)

	for _, sub := range n.subs {
		sub.shutdown()
	}
	clear(n.subs)
	n.mu.Unlock()

	// Wait for in-flight cleanup goroutines so no unsubscribe races with a
	// machine being discarded.
	n.cleanupWg.Wait()

	return nil
}
