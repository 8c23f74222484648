// Package pubsub distributes change notifications. The in-process Notifier
// fans committed changes out to stream subscribers; an optional Redis relay
// carries them across instances.
package pubsub

import (
	"context"
	"sync"

	"vigil/internal/shared/config"
	"vigil/internal/shared/goroutine"
	"vigil/internal/shared/logger"
)

// Change announces that one entity in one event was created or modified.
// The payload names the entity; subscribers refetch it to see the change.
type Change struct {
	// ID is monotonically increasing within this process. A client that
	// observes a gap, or an ID from another process lifetime, must do a
	// full resync.
	ID      uint64 `json:"id"`
	EventID uint   `json:"event_id"`
	Kind    string `json:"kind"`
	Number  int    `json:"number"`
}

// Subscription is one stream consumer's view of an event's changes.
type Subscription struct {
	// C delivers changes in ID order. It is closed when the subscriber
	// falls too far behind or the notifier shuts down.
	C <-chan Change
	// Cursor is the last change ID assigned before the subscription
	// started. The first change delivered has an ID greater than it.
	Cursor uint64

	notifier *Notifier
	ch       chan Change
	eventID  uint
	once     sync.Once
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.notifier.unsubscribe(s)
	})
}

// Publisher is the side handed to the use cases.
type Publisher interface {
	Publish(eventID uint, kind string, number int)
}

// Relay carries changes between instances. Implemented by RedisRelay.
type Relay interface {
	PublishChange(ctx context.Context, eventID uint, kind string, number int) error
	SubscribeChanges(ctx context.Context, handler func(eventID uint, kind string, number int)) error
}

// Notifier assigns change IDs and fans changes out to per-event
// subscribers. Publishing never blocks the committing request: changes pass
// through a buffered queue, and a subscriber that cannot keep up is dropped
// so it resynchronizes on reconnect instead of stalling everyone else.
type Notifier struct {
	logger     logger.Interface
	subBuffer  int
	queue      chan Change
	relay      Relay
	relayCtx   context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	mu     sync.Mutex
	lastID uint64
	subs   map[uint]map[*Subscription]struct{}
	closed bool
}

func NewNotifier(cfg *config.StreamConfig, log logger.Interface) *Notifier {
	subBuffer := cfg.SubscriberBuffer
	if subBuffer <= 0 {
		subBuffer = 64
	}
	queueBuffer := cfg.QueueBuffer
	if queueBuffer <= 0 {
		queueBuffer = 1024
	}

	ctx, cancel := context.WithCancel(context.Background())
	n := &Notifier{
		logger:    log,
		subBuffer: subBuffer,
		queue:     make(chan Change, queueBuffer),
		relayCtx:  ctx,
		cancel:    cancel,
		subs:      make(map[uint]map[*Subscription]struct{}),
	}

	n.wg.Add(1)
	goroutine.SafeGo(log, "change-notifier-dispatch", func() {
		defer n.wg.Done()
		n.dispatch()
	})

	return n
}

// SetRelay attaches a cross-instance relay. Locally published changes are
// forwarded to it, and changes it receives are folded into the local
// stream with fresh local IDs.
func (n *Notifier) SetRelay(relay Relay) {
	n.relay = relay
	goroutine.SafeGo(n.logger, "change-notifier-relay", func() {
		err := relay.SubscribeChanges(n.relayCtx, func(eventID uint, kind string, number int) {
			n.enqueue(eventID, kind, number)
		})
		if err != nil && n.relayCtx.Err() == nil {
			n.logger.Errorw("change relay subscription ended", "error", err)
		}
	})
}

// Publish announces a committed change. Call only after the transaction
// that produced it has committed.
func (n *Notifier) Publish(eventID uint, kind string, number int) {
	n.enqueue(eventID, kind, number)

	if n.relay != nil {
		relay := n.relay
		goroutine.SafeGo(n.logger, "change-notifier-relay-publish", func() {
			if err := relay.PublishChange(context.Background(), eventID, kind, number); err != nil {
				n.logger.Warnw("failed to relay change",
					"event_id", eventID, "kind", kind, "number", number, "error", err)
			}
		})
	}
}

func (n *Notifier) enqueue(eventID uint, kind string, number int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.lastID++
	change := Change{ID: n.lastID, EventID: eventID, Kind: kind, Number: number}

	// The send stays under the lock: Close marks closed before it closes
	// the queue, so no send can race the close. The send itself never
	// blocks, overflow drops the change instead.
	select {
	case n.queue <- change:
	default:
		// Queue overflow loses the change for current subscribers; their
		// next reconnect resyncs. Committed data is never at risk.
		n.logger.Warnw("change queue full, dropping notification",
			"event_id", eventID, "kind", kind, "number", number)
	}
}

// Subscribe registers a consumer for one event's changes.
func (n *Notifier) Subscribe(eventID uint) *Subscription {
	ch := make(chan Change, n.subBuffer)
	sub := &Subscription{C: ch, ch: ch, eventID: eventID, notifier: n}

	n.mu.Lock()
	defer n.mu.Unlock()
	sub.Cursor = n.lastID
	if n.closed {
		close(ch)
		return sub
	}
	if n.subs[eventID] == nil {
		n.subs[eventID] = make(map[*Subscription]struct{})
	}
	n.subs[eventID][sub] = struct{}{}
	return sub
}

func (n *Notifier) unsubscribe(sub *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if set, ok := n.subs[sub.eventID]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.ch)
		}
		if len(set) == 0 {
			delete(n.subs, sub.eventID)
		}
	}
}

func (n *Notifier) dispatch() {
	for change := range n.queue {
		n.mu.Lock()
		var dropped []*Subscription
		for sub := range n.subs[change.EventID] {
			select {
			case sub.ch <- change:
			default:
				dropped = append(dropped, sub)
			}
		}
		for _, sub := range dropped {
			delete(n.subs[change.EventID], sub)
			close(sub.ch)
		}
		if len(dropped) > 0 {
			n.logger.Warnw("dropped slow change subscribers",
				"event_id", change.EventID, "count", len(dropped))
		}
		n.mu.Unlock()
	}
}

// Close stops the notifier and closes all subscriptions.
func (n *Notifier) Close() {
	n.cancel()

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	for eventID, set := range n.subs {
		for sub := range set {
			close(sub.ch)
		}
		delete(n.subs, eventID)
	}
	n.mu.Unlock()

	close(n.queue)
	n.wg.Wait()
}
