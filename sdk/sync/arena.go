package sync

import "context"

// SessionArena is the session-wide mutual exclusion slot for subscription
// ownership. Any view may acquire it; it is not a leader election, just a
// lock that hands off to whoever is waiting when the holder releases.
type SessionArena struct {
	slot chan struct{}
}

func NewSessionArena() *SessionArena {
	return &SessionArena{slot: make(chan struct{}, 1)}
}

// Acquire blocks until the slot is free or the context is cancelled.
func (a *SessionArena) Acquire(ctx context.Context) error {
	select {
	case a.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes the slot if it is free.
func (a *SessionArena) TryAcquire() bool {
	select {
	case a.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees the slot. Must only be called by the current holder.
func (a *SessionArena) Release() {
	<-a.slot
}
