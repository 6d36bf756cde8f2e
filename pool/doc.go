// Package pool
// Author: momentics <momentics@gmail.com>
//
// Queueing primitives for the hioload-sdr I/O core.
// BoundedQueue is the drop-oldest FIFO backing the per-channel
// pending-buffer queues and the async event queue; RingBuffer is a
// lock-free ring used for off-datapath diagnostic sinks.
// See queue.go and ring.go for implementation details.
package pool
