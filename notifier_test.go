package fsmkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvEvent(t *testing.T, sub *Subscription) TransitionEvent {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "subscription closed before delivering an event")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for transition event")
		return TransitionEvent{}
	}
}

func assertNoEvent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		if ok {
			t.Fatalf("unexpected transition event %s: %s -> %s",
				ev.Event.Name(), ev.From.Name(), ev.To.Name())
		}
	default:
	}
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("one event per successful fire", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
		)
		defer m.Close()

		sub := m.Subscribe(ctx)
		defer sub.Close()

		require.True(t, m.Fire(ctx, eventStart))

		ev := recvEvent(t, sub)
		assert.Equal(t, stateIdle, ev.From)
		assert.Equal(t, stateRunning, ev.To)
		assert.Equal(t, eventStart, ev.Event)
		assertNoEvent(t, sub)
	})

	t.Run("failed fire emits nothing", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart,
				WithGuard(func(context.Context, State, Event) bool { return false })),
		)
		defer m.Close()

		sub := m.Subscribe(ctx)
		defer sub.Close()

		assert.False(t, m.Fire(ctx, eventStart))
		assert.False(t, m.Fire(ctx, eventStop))
		assertNoEvent(t, sub)
	})

	t.Run("broadcast reaches every subscriber", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
		)
		defer m.Close()

		first := m.Subscribe(ctx)
		defer first.Close()
		second := m.Subscribe(ctx)
		defer second.Close()

		require.True(t, m.Fire(ctx, eventStart))

		assert.Equal(t, stateRunning, recvEvent(t, first).To)
		assert.Equal(t, stateRunning, recvEvent(t, second).To)
	})

	t.Run("late subscriber misses earlier events", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
			WithTransition(stateRunning, stateStopped, eventStop),
		)
		defer m.Close()

		require.True(t, m.Fire(ctx, eventStart))

		sub := m.Subscribe(ctx)
		defer sub.Close()
		assertNoEvent(t, sub)

		require.True(t, m.Fire(ctx, eventStop))
		ev := recvEvent(t, sub)
		assert.Equal(t, stateRunning, ev.From)
		assert.Equal(t, stateStopped, ev.To)
	})

	t.Run("events preserve transition order", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
			WithTransition(stateRunning, stateIdle, eventStop),
		)
		defer m.Close()

		sub := m.Subscribe(ctx)
		defer sub.Close()

		require.True(t, m.Fire(ctx, eventStart))
		require.True(t, m.Fire(ctx, eventStop))
		require.True(t, m.Fire(ctx, eventStart))

		assert.Equal(t, stateRunning, recvEvent(t, sub).To)
		assert.Equal(t, stateIdle, recvEvent(t, sub).To)
		assert.Equal(t, stateRunning, recvEvent(t, sub).To)
	})
}

func TestSubscriptionClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("closed subscription receives nothing", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
		)
		defer m.Close()

		sub := m.Subscribe(ctx)
		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())

		require.True(t, m.Fire(ctx, eventStart))

		_, ok := <-sub.Events()
		assert.False(t, ok)
	})

	t.Run("closing one subscription leaves others working", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
		)
		defer m.Close()

		closed := m.Subscribe(ctx)
		open := m.Subscribe(ctx)
		defer open.Close()
		require.NoError(t, closed.Close())

		require.True(t, m.Fire(ctx, eventStart))
		assert.Equal(t, stateRunning, recvEvent(t, open).To)
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
		)
		defer m.Close()

		subCtx, cancel := context.WithCancel(ctx)
		sub := m.Subscribe(subCtx)
		cancel()

		require.Eventually(t, func() bool {
			select {
			case _, ok := <-sub.Events():
				return !ok
			default:
				return false
			}
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("slow subscriber is dropped not blocked on", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
			WithTransition(stateRunning, stateIdle, eventStop),
			WithSubscriptionBuffer(1),
		)
		defer m.Close()

		slow := m.Subscribe(ctx)
		fast := m.Subscribe(ctx)
		defer fast.Close()

		// Fill the slow subscriber's buffer, then keep firing without
		// draining it. The fast subscriber drains between fires.
		require.True(t, m.Fire(ctx, eventStart))
		assert.Equal(t, stateRunning, recvEvent(t, fast).To)
		require.True(t, m.Fire(ctx, eventStop))
		assert.Equal(t, stateIdle, recvEvent(t, fast).To)

		// The slow subscriber got the first event and was dropped on the
		// second; its channel ends after the buffered event.
		assert.Equal(t, stateRunning, recvEvent(t, slow).To)
		require.Eventually(t, func() bool {
			select {
			case _, ok := <-slow.Events():
				return !ok
			default:
				return false
			}
		}, time.Second, 10*time.Millisecond)
	})
}

func TestMachineClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle)
		require.NoError(t, m.Close())
		require.NoError(t, m.Close())
	})

	t.Run("close ends all subscriptions", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
		)

		first := m.Subscribe(ctx)
		second := m.Subscribe(ctx)
		require.NoError(t, m.Close())

		_, ok := <-first.Events()
		assert.False(t, ok)
		_, ok = <-second.Events()
		assert.False(t, ok)
	})

	t.Run("subscribe after close returns closed subscription", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle)
		require.NoError(t, m.Close())

		sub := m.Subscribe(ctx)
		_, ok := <-sub.Events()
		assert.False(t, ok)
	})

	t.Run("fire still works after close without notifications", func(t *testing.T) {
		t.Parallel()
		m := MustNew(stateIdle,
			WithTransition(stateIdle, stateRunning, eventStart),
		)
		require.NoError(t, m.Close())

		require.True(t, m.Fire(ctx, eventStart))
		assert.Equal(t, stateRunning, m.Current())
	})
}
