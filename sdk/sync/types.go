// Package sync coordinates live change subscriptions across the multiple
// open views of one browsing session. Exactly one view holds the server
// subscription at a time and fans received changes out to its siblings.
package sync

import "context"

// Event is one change delivered by a live subscription. The ID is opaque
// and comparable only for deduplication; it carries no ordering semantics
// across reconnects.
type Event struct {
	ID     string
	Kind   string
	Number int
}

// Signal is what a view receives from the coordinator. FullResync means
// the view must discard cached state and reload its working set; otherwise
// Kind and Number name the single changed entity.
type Signal struct {
	FullResync bool
	Kind       string
	Number     int
}

// Subscription is a live change feed held by the owning view. Events is
// closed when the feed drops.
type Subscription interface {
	Events() <-chan Event
	Close()
}

// Dialer opens a live subscription. lastSeenID is the remembered event id,
// empty on first connect. The resumed result reports whether the server
// accepted the id; false forces a full resync on the client side.
type Dialer func(ctx context.Context, lastSeenID string) (sub Subscription, resumed bool, err error)

// State is a view's position in the ownership state machine.
type State int32

const (
	StateIdle State = iota
	StateAcquiring
	StateOwner
	StateDisconnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateOwner:
		return "owner"
	case StateDisconnected:
		return "disconnected"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}
