package aggregate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_PeakNeverExceedsSize(t *testing.T) {
	l := NewLimiter(3)
	var running, maxSeen atomic.Int64

	for i := 0; i < 12; i++ {
		require.NoError(t, l.Schedule(context.Background(), func() {
			n := running.Add(1)
			for {
				m := maxSeen.Load()
				if n <= m || maxSeen.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
		}))
	}
	l.Wait()

	assert.LessOrEqual(t, maxSeen.Load(), int64(3))
	assert.LessOrEqual(t, l.Peak(), 3)
	assert.Equal(t, 0, l.InFlight())
}

func TestLimiter_StartsInSubmissionOrder(t *testing.T) {
	l := NewLimiter(1)
	var mu sync.Mutex
	var started []int

	for i := 0; i < 6; i++ {
		i := i
		require.NoError(t, l.Schedule(context.Background(), func() {
			mu.Lock()
			started = append(started, i)
			mu.Unlock()
			time.Sleep(time.Millisecond)
		}))
	}
	l.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, started)
}

func TestLimiter_ReleasesSlotOnPanic(t *testing.T) {
	l := NewLimiter(1)

	require.NoError(t, l.Schedule(context.Background(), func() {
		defer func() { _ = recover() }()
		panic("connector exploded")
	}))

	done := make(chan struct{})
	require.NoError(t, l.Schedule(context.Background(), func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second task never started")
	}
	l.Wait()
}

func TestLimiter_ScheduleHonorsContext(t *testing.T) {
	l := NewLimiter(1)
	block := make(chan struct{})
	require.NoError(t, l.Schedule(context.Background(), func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Schedule(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
	l.Wait()
}

func TestNewLimiter_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultConcurrency, NewLimiter(0).Size())
	assert.Equal(t, DefaultConcurrency, NewLimiter(-2).Size())
	assert.Equal(t, 7, NewLimiter(7).Size())
}
