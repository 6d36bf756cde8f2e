// File: pool/queue.go
// Author: momentics <momentics@gmail.com>
//
// Bounded FIFO with drop-oldest admission and timed blocking pop.
//
// Producers never block: pushing into a full queue evicts the oldest
// entry to admit the new one. Push and pop are safe for concurrent use
// without any outer lock. Storage rides on eapache/queue; the bound and
// eviction policy are enforced here.

package pool

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// BoundedQueue is a fixed-capacity FIFO of T with drop-oldest policy.
type BoundedQueue[T any] struct {
	mu    sync.Mutex
	q     *queue.Queue
	cap   int
	drops uint64

	// signal wakes at most one blocked consumer per push.
	signal chan struct{}
}

// NewBoundedQueue allocates a queue holding at most capacity entries.
func NewBoundedQueue[T any](capacity int) *BoundedQueue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &BoundedQueue[T]{
		q:      queue.New(),
		cap:    capacity,
		signal: make(chan struct{}, 1),
	}
}

// PushDropOldest enqueues v. If the queue is full the oldest entry is
// evicted first; the evicted entry is returned with dropped=true so the
// caller can release resources it holds.
func (b *BoundedQueue[T]) PushDropOldest(v T) (evicted T, dropped bool) {
	b.mu.Lock()
	if b.q.Length() >= b.cap {
		evicted = b.q.Remove().(T)
		dropped = true
		b.drops++
	}
	b.q.Add(v)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
	return evicted, dropped
}

// TryPop removes the head without waiting.
func (b *BoundedQueue[T]) TryPop() (v T, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.q.Length() == 0 {
		return v, false
	}
	return b.q.Remove().(T), true
}

// PopWait removes the head, waiting up to timeout for an entry to
// arrive. Returns ok=false on timeout. Spurious wakeups are absorbed
// internally and never surface to the caller.
func (b *BoundedQueue[T]) PopWait(timeout time.Duration) (v T, ok bool) {
	if v, ok = b.TryPop(); ok {
		return v, true
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case <-b.signal:
			if v, ok = b.TryPop(); ok {
				return v, true
			}
		case <-deadline.C:
			// Last chance: a push may have raced the timer.
			return b.TryPop()
		}
	}
}

// Len returns the current queue depth.
func (b *BoundedQueue[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Length()
}

// Cap returns the configured capacity.
func (b *BoundedQueue[T]) Cap() int { return b.cap }

// Drops returns the number of entries evicted by drop-oldest admission.
func (b *BoundedQueue[T]) Drops() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drops
}
