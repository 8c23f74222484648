package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaSingleHolder(t *testing.T) {
	arena := NewSessionArena()

	require.True(t, arena.TryAcquire())
	assert.False(t, arena.TryAcquire(), "slot must be exclusive")

	arena.Release()
	assert.True(t, arena.TryAcquire())
	arena.Release()
}

func TestArenaAcquireHandsOffToWaiter(t *testing.T) {
	arena := NewSessionArena()
	require.True(t, arena.TryAcquire())

	acquired := make(chan struct{})
	go func() {
		if err := arena.Acquire(context.Background()); err == nil {
			close(acquired)
		}
	}()

	select {
	case <-acquired:
		t.Fatal("waiter acquired while slot was held")
	case <-time.After(50 * time.Millisecond):
	}

	arena.Release()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never received the slot")
	}
	arena.Release()
}

func TestArenaAcquireRespectsCancellation(t *testing.T) {
	arena := NewSessionArena()
	require.True(t, arena.TryAcquire())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- arena.Acquire(ctx)
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled Acquire never returned")
	}
	arena.Release()
}
