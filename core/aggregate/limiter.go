// ABOUTME: Concurrency limiter bounding simultaneous connector calls
// ABOUTME: Slots are granted in FIFO submission order and always released on settle

package aggregate

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency is the in-flight cap used when none is configured.
const DefaultConcurrency = 5

// Limiter runs tasks with at most N executing at once. One Limiter is
// created per orchestration call so the cap spans the whole call.
type Limiter struct {
	sem      *semaphore.Weighted
	size     int
	inFlight atomic.Int64
	peak     atomic.Int64
	wg       sync.WaitGroup
}

// NewLimiter creates a limiter with n slots (DefaultConcurrency when n <= 0).
func NewLimiter(n int) *Limiter {
	if n <= 0 {
		n = DefaultConcurrency
	}
	return &Limiter{
		sem:  semaphore.NewWeighted(int64(n)),
		size: n,
	}
}

// Schedule blocks until a slot is free, then runs task on its own goroutine.
// Callers submitting from one goroutine are served in submission order.
// The slot is released when task returns, including by panic.
func (l *Limiter) Schedule(ctx context.Context, task func()) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	current := l.inFlight.Add(1)
	for {
		peak := l.peak.Load()
		if current <= peak || l.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer l.sem.Release(1)
		defer l.inFlight.Add(-1)
		task()
	}()
	return nil
}

// Wait blocks until every scheduled task has settled.
func (l *Limiter) Wait() {
	l.wg.Wait()
}

// Size returns the configured slot count.
func (l *Limiter) Size() int {
	return l.size
}

// InFlight returns the number of tasks currently executing.
func (l *Limiter) InFlight() int {
	return int(l.inFlight.Load())
}

// Peak returns the highest number of tasks observed executing at once.
func (l *Limiter) Peak() int {
	return int(l.peak.Load())
}
