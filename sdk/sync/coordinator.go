package sync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultBackoff      = 2 * time.Second
	defaultSignalBuffer = 16
)

// Config tunes the coordinator. Zero values select the defaults.
type Config struct {
	// ReconnectBackoff is the fixed delay before redialing a dropped
	// subscription.
	ReconnectBackoff time.Duration
	// SignalBuffer is the per-view signal channel depth. A view that
	// stops draining has its backlog collapsed into one FullResync.
	SignalBuffer int
}

// Coordinator owns one browsing session's subscription state: the
// ownership arena, the set of open views and the last seen event id.
type Coordinator struct {
	arena   *SessionArena
	dial    Dialer
	backoff time.Duration
	buffer  int

	mu       sync.Mutex
	views    map[*View]struct{}
	lastSeen string
}

func NewCoordinator(dial Dialer, cfg Config) *Coordinator {
	backoff := cfg.ReconnectBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	buffer := cfg.SignalBuffer
	if buffer <= 0 {
		buffer = defaultSignalBuffer
	}
	return &Coordinator{
		arena:   NewSessionArena(),
		dial:    dial,
		backoff: backoff,
		buffer:  buffer,
		views:   make(map[*View]struct{}),
	}
}

// View is one open browsing view. Every view competes for subscription
// ownership; whichever holds it relays changes to all siblings.
type View struct {
	coord   *Coordinator
	signals chan Signal
	state   atomic.Int32
	cancel  context.CancelFunc
	done    chan struct{}

	pendingResync atomic.Bool
	closeOnce     sync.Once
}

// OpenView registers a new view and starts its ownership loop.
func (c *Coordinator) OpenView() *View {
	v := &View{
		coord:   c,
		signals: make(chan Signal, c.buffer),
		done:    make(chan struct{}),
	}
	v.state.Store(int32(StateIdle))

	c.mu.Lock()
	c.views[v] = struct{}{}
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	go v.run(ctx)

	return v
}

// Close shuts down every open view.
func (c *Coordinator) Close() {
	c.mu.Lock()
	open := make([]*View, 0, len(c.views))
	for v := range c.views {
		open = append(open, v)
	}
	c.mu.Unlock()

	for _, v := range open {
		v.Close()
	}
}

func (c *Coordinator) lastSeenID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

func (c *Coordinator) setLastSeenID(id string) {
	c.mu.Lock()
	c.lastSeen = id
	c.mu.Unlock()
}

// broadcast fans a signal out to every open view, the owner included.
func (c *Coordinator) broadcast(sig Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for v := range c.views {
		v.deliver(sig)
	}
}

// Signals delivers this view's reconciliation signals.
func (v *View) Signals() <-chan Signal {
	return v.signals
}

// State reports the view's position in the ownership state machine.
func (v *View) State() State {
	return State(v.state.Load())
}

// Close detaches the view. If it held the subscription, ownership hands
// off to a waiting sibling. Closing the last view releases the session's
// ownership slot entirely.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		v.coord.mu.Lock()
		delete(v.coord.views, v)
		v.coord.mu.Unlock()

		v.cancel()
		<-v.done
	})
}

func (v *View) setState(s State) {
	v.state.Store(int32(s))
}

// run cycles the view through the ownership state machine until it is
// closed. Ownership is released on every disconnect, so a waiting sibling
// can take over instead of the same view always winning the redial.
func (v *View) run(ctx context.Context) {
	defer close(v.done)
	defer v.setState(StateClosed)

	c := v.coord
	for ctx.Err() == nil {
		v.setState(StateAcquiring)
		if err := c.arena.Acquire(ctx); err != nil {
			return
		}

		v.own(ctx)
		c.arena.Release()
		if ctx.Err() != nil {
			return
		}

		v.setState(StateDisconnected)
		if !sleep(ctx, c.backoff) {
			return
		}
	}
}

// own holds the subscription for one connection cycle: dial, consume
// until the feed drops, hand the slot back.
func (v *View) own(ctx context.Context) {
	c := v.coord
	sub, resumed, err := c.dial(ctx, c.lastSeenID())
	if err != nil {
		return
	}
	defer sub.Close()

	v.setState(StateOwner)
	// First connection and broken resumes both mean any number of
	// changes may have been missed.
	if !resumed || c.lastSeenID() == "" {
		c.broadcast(Signal{FullResync: true})
	}

	v.consume(ctx, sub)
}

func (v *View) consume(ctx context.Context, sub Subscription) {
	c := v.coord
	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			// At-least-once delivery; drop the redelivered edge event.
			if ev.ID != "" && ev.ID == c.lastSeenID() {
				continue
			}
			c.setLastSeenID(ev.ID)
			c.broadcast(Signal{Kind: ev.Kind, Number: ev.Number})
		}
	}
}

// deliver enqueues a signal without ever blocking the owner. Overflow
// collapses the view's backlog into a single FullResync.
func (v *View) deliver(sig Signal) {
	if v.pendingResync.Load() {
		select {
		case v.signals <- Signal{FullResync: true}:
			v.pendingResync.Store(false)
		default:
			return
		}
		if sig.FullResync {
			return
		}
	}
	select {
	case v.signals <- sig:
	default:
		v.pendingResync.Store(true)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
