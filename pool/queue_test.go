// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// queue_test.go — Tests for the bounded drop-oldest FIFO.
package pool

import (
	"math/rand"
	"sync"
	"testing"
	"time"
)

// TestBoundedQueue_FIFO checks basic ordering.
func TestBoundedQueue_FIFO(t *testing.T) {
	q := NewBoundedQueue[int](8)
	for i := 0; i < 8; i++ {
		if _, dropped := q.PushDropOldest(i); dropped {
			t.Fatalf("unexpected drop at %d", i)
		}
	}
	for i := 0; i < 8; i++ {
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("expected %d, got %d (ok=%v)", i, v, ok)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Error("expected empty queue")
	}
}

// TestBoundedQueue_DropOldest verifies the eviction policy: exactly the
// oldest entry goes, the new one is retained, depth never exceeds cap.
func TestBoundedQueue_DropOldest(t *testing.T) {
	q := NewBoundedQueue[int](4)
	for i := 0; i < 4; i++ {
		q.PushDropOldest(i)
	}
	evicted, dropped := q.PushDropOldest(99)
	if !dropped || evicted != 0 {
		t.Fatalf("expected eviction of 0, got %d (dropped=%v)", evicted, dropped)
	}
	if q.Len() != 4 {
		t.Fatalf("depth %d exceeds capacity 4", q.Len())
	}
	want := []int{1, 2, 3, 99}
	for _, w := range want {
		v, ok := q.TryPop()
		if !ok || v != w {
			t.Fatalf("expected %d, got %d (ok=%v)", w, v, ok)
		}
	}
	if q.Drops() != 1 {
		t.Errorf("expected 1 recorded drop, got %d", q.Drops())
	}
}

// TestBoundedQueue_PopWaitTimeout checks the timed pop returns false
// after the budget and does not block indefinitely.
func TestBoundedQueue_PopWaitTimeout(t *testing.T) {
	q := NewBoundedQueue[int](4)
	start := time.Now()
	_, ok := q.PopWait(50 * time.Millisecond)
	if ok {
		t.Fatal("expected timeout")
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("returned before timeout: %v", elapsed)
	}
}

// TestBoundedQueue_PopWaitWakeup checks a pop blocked on an empty queue
// is woken by a concurrent push.
func TestBoundedQueue_PopWaitWakeup(t *testing.T) {
	q := NewBoundedQueue[int](4)
	done := make(chan int, 1)
	go func() {
		v, ok := q.PopWait(2 * time.Second)
		if !ok {
			done <- -1
			return
		}
		done <- v
	}()
	time.Sleep(10 * time.Millisecond)
	q.PushDropOldest(42)
	select {
	case v := <-done:
		if v != 42 {
			t.Fatalf("expected 42, got %d", v)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("consumer never woke up")
	}
}

// TestBoundedQueue_Concurrent exercises concurrent producer/consumer use.
func TestBoundedQueue_Concurrent(t *testing.T) {
	q := NewBoundedQueue[int](1024)
	const items = 2000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < items; i++ {
			q.PushDropOldest(i)
		}
	}()
	got := 0
	for {
		if _, ok := q.PopWait(200 * time.Millisecond); !ok {
			break
		}
		got++
	}
	wg.Wait()
	if uint64(got)+q.Drops() != items {
		t.Errorf("received %d + dropped %d != produced %d", got, q.Drops(), items)
	}
}

// TestBoundedQueuePropertyBased performs randomized operations to check
// the depth invariant against a model counter.
func TestBoundedQueuePropertyBased(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := NewBoundedQueue[int](32)
	size := 0
	for i := 0; i < 5000; i++ {
		switch rng.Intn(2) {
		case 0:
			if _, dropped := q.PushDropOldest(i); !dropped {
				size++
			}
		case 1:
			if _, ok := q.TryPop(); ok {
				size--
			}
		}
		if size != q.Len() {
			t.Fatalf("invariant failed: expected %d, got %d", size, q.Len())
		}
		if q.Len() < 0 || q.Len() > 32 {
			t.Fatalf("queue depth out of bounds: %d", q.Len())
		}
	}
}
