// control/fastpath.go
// Author: momentics <momentics@gmail.com>
//
// Non-blocking fast-path marker sink.
// The async bridge pushes single-byte condition markers ('U' for
// underflow, 'S' for sequence error) here instead of logging, so the
// hot path never waits on I/O. Overflowing the ring loses markers;
// they are best-effort observability, not part of the data contract.

package control

import "github.com/momentics/hioload-sdr/pool"

// Fast-path marker bytes.
const (
	MarkerUnderflow = 'U'
	MarkerSeqError  = 'S'
	MarkerOverflow  = 'O'
)

// FastpathSink collects diagnostic markers off the data path.
type FastpathSink struct {
	ring *pool.RingBuffer[byte]
}

// NewFastpathSink allocates a sink holding up to capacity markers
// (rounded to a power of two by the ring).
func NewFastpathSink(capacity uint64) *FastpathSink {
	return &FastpathSink{ring: pool.NewRingBuffer[byte](capacity)}
}

// Mark records one marker. Never blocks; drops on overflow.
func (s *FastpathSink) Mark(c byte) {
	s.ring.Enqueue(c)
}

// Drain removes and returns all accumulated markers.
func (s *FastpathSink) Drain() []byte {
	out := make([]byte, 0, s.ring.Len())
	for {
		c, ok := s.ring.Dequeue()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}
