package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil/internal/shared/config"
	"vigil/internal/shared/logger"
)

func newTestNotifier(t *testing.T, subBuffer int) *Notifier {
	t.Helper()
	n := NewNotifier(&config.StreamConfig{SubscriberBuffer: subBuffer, QueueBuffer: 16}, logger.NewNop())
	t.Cleanup(n.Close)
	return n
}

func recvChange(t *testing.T, sub *Subscription) Change {
	t.Helper()
	select {
	case change, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestNotifierDeliversInOrder(t *testing.T) {
	n := newTestNotifier(t, 8)
	sub := n.Subscribe(1)
	defer sub.Close()

	n.Publish(1, "incident", 10)
	n.Publish(1, "field_report", 3)

	first := recvChange(t, sub)
	second := recvChange(t, sub)

	assert.Equal(t, "incident", first.Kind)
	assert.Equal(t, 10, first.Number)
	assert.Equal(t, "field_report", second.Kind)
	assert.Greater(t, second.ID, first.ID)
	assert.Greater(t, first.ID, sub.Cursor)
}

func TestNotifierScopesByEvent(t *testing.T) {
	n := newTestNotifier(t, 8)
	sub := n.Subscribe(1)
	defer sub.Close()

	n.Publish(2, "incident", 1)
	n.Publish(1, "incident", 7)

	change := recvChange(t, sub)
	assert.Equal(t, uint(1), change.EventID)
	assert.Equal(t, 7, change.Number)

	select {
	case extra := <-sub.C:
		t.Fatalf("unexpected change delivered: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifierDropsSlowSubscriber(t *testing.T) {
	n := newTestNotifier(t, 1)
	sub := n.Subscribe(1)

	// Fill the subscriber buffer, then overflow it.
	n.Publish(1, "incident", 1)
	n.Publish(1, "incident", 2)
	n.Publish(1, "incident", 3)

	deadline := time.After(2 * time.Second)
	var closed bool
	for !closed {
		select {
		case _, ok := <-sub.C:
			if !ok {
				closed = true
			}
		case <-deadline:
			t.Fatal("slow subscriber was never dropped")
		}
	}

	// A fresh subscription still works; the dropped client resyncs.
	fresh := n.Subscribe(1)
	defer fresh.Close()
	n.Publish(1, "incident", 4)
	change := recvChange(t, fresh)
	assert.Equal(t, 4, change.Number)
}

func TestNotifierCloseIdempotentSubscription(t *testing.T) {
	n := newTestNotifier(t, 8)
	sub := n.Subscribe(1)
	sub.Close()
	sub.Close()

	// Publishing after the only subscriber left must not block or panic.
	n.Publish(1, "incident", 1)
}

// relayBus is an in-memory stand-in for the Redis channel: every message
// reaches all other instances, like the relay's self-delivery filter.
type relayBus struct {
	mu       sync.Mutex
	handlers map[string]func(eventID uint, kind string, number int)
	messages int
}

func newRelayBus() *relayBus {
	return &relayBus{handlers: map[string]func(eventID uint, kind string, number int){}}
}

func (b *relayBus) publish(from string, eventID uint, kind string, number int) {
	b.mu.Lock()
	b.messages++
	var targets []func(eventID uint, kind string, number int)
	for name, h := range b.handlers {
		if name != from {
			targets = append(targets, h)
		}
	}
	b.mu.Unlock()
	for _, h := range targets {
		h(eventID, kind, number)
	}
}

func (b *relayBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.messages
}

func (b *relayBus) subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

type busRelay struct {
	bus  *relayBus
	name string
}

func (r *busRelay) PublishChange(ctx context.Context, eventID uint, kind string, number int) error {
	r.bus.publish(r.name, eventID, kind, number)
	return nil
}

func (r *busRelay) SubscribeChanges(ctx context.Context, handler func(eventID uint, kind string, number int)) error {
	r.bus.mu.Lock()
	r.bus.handlers[r.name] = handler
	r.bus.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func TestNotifierRelayNeverEchoesForeignChanges(t *testing.T) {
	bus := newRelayBus()
	a := newTestNotifier(t, 8)
	b := newTestNotifier(t, 8)
	a.SetRelay(&busRelay{bus: bus, name: "a"})
	b.SetRelay(&busRelay{bus: bus, name: "b"})
	require.Eventually(t, func() bool { return bus.subscribers() == 2 }, 2*time.Second, 10*time.Millisecond)

	subA := a.Subscribe(1)
	defer subA.Close()
	subB := b.Subscribe(1)
	defer subB.Close()

	a.Publish(1, "incident", 5)

	changeA := recvChange(t, subA)
	changeB := recvChange(t, subB)
	assert.Equal(t, 5, changeA.Number)
	assert.Equal(t, 5, changeB.Number)

	// A change received from the relay is folded into the local stream
	// only. Were it republished, the instances would bounce it between
	// each other and bury both subscribers in copies.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, bus.count())
	select {
	case extra := <-subA.C:
		t.Fatalf("duplicate change delivered to origin instance: %+v", extra)
	default:
	}
	select {
	case extra := <-subB.C:
		t.Fatalf("duplicate change delivered to peer instance: %+v", extra)
	default:
	}
}

func TestNotifierPublishRacingCloseDoesNotPanic(t *testing.T) {
	n := NewNotifier(&config.StreamConfig{SubscriberBuffer: 8, QueueBuffer: 4}, logger.NewNop())

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				n.Publish(1, "incident", j)
			}
		}()
	}

	close(start)
	n.Close()
	wg.Wait()

	// Publishing after close is a quiet no-op.
	n.Publish(1, "incident", 999)
}
