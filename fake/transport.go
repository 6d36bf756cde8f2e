// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations of the hardware-facing interfaces for testing.
// Provides predictable, controllable behavior: scripted receive frames,
// recorded send frames, fixed clock rates and inert DSP front-ends.

package fake

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/momentics/hioload-sdr/api"
)

// Transport is a scripted in-memory api.WireTransport.
type Transport struct {
	mu        sync.Mutex
	recv      chan []byte
	sent      [][]byte
	closed    bool
	released  int
	numFrames int
	frameSize int
}

// Compile-time interface compliance.
var _ api.WireTransport = (*Transport)(nil)

// NewTransport creates a fake transport with the given frame geometry.
func NewTransport(numFrames, frameSize int) *Transport {
	return &Transport{
		recv:      make(chan []byte, 1024),
		numFrames: numFrames,
		frameSize: frameSize,
	}
}

// PushFrame scripts one frame to be returned by a later GetRecvBuff.
func (t *Transport) PushFrame(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	t.recv <- cp
}

// PushPacket scripts a frame assembled from 32-bit words in
// little-endian wire order.
func (t *Transport) PushPacket(words []uint32) {
	t.recv <- FrameFromWords(words)
}

// GetRecvBuff implements api.WireTransport.
func (t *Transport) GetRecvBuff(timeout time.Duration) api.RecvBuffer {
	select {
	case data := <-t.recv:
		return &recvBuffer{data: data, owner: t}
	case <-time.After(timeout):
		return nil
	}
}

// GetSendBuff implements api.WireTransport.
func (t *Transport) GetSendBuff(timeout time.Duration) api.SendBuffer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	return &sendBuffer{data: make([]byte, t.frameSize), owner: t}
}

// NumRecvFrames implements api.WireTransport.
func (t *Transport) NumRecvFrames() int { return t.numFrames }

// NumSendFrames implements api.WireTransport.
func (t *Transport) NumSendFrames() int { return t.numFrames }

// RecvFrameSize implements api.WireTransport.
func (t *Transport) RecvFrameSize() int { return t.frameSize }

// SendFrameSize implements api.WireTransport.
func (t *Transport) SendFrameSize() int { return t.frameSize }

// Close implements api.WireTransport.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Sent returns all frames committed through send buffers.
func (t *Transport) Sent() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.sent))
	copy(out, t.sent)
	return out
}

// Released returns how many receive buffers have been released.
func (t *Transport) Released() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}

// recvBuffer is the fake receive-side buffer handle.
type recvBuffer struct {
	data     []byte
	owner    *Transport
	released bool
}

func (b *recvBuffer) Bytes() []byte {
	if b.released {
		return nil
	}
	return b.data
}

func (b *recvBuffer) Words32() []uint32 {
	if b.released {
		return nil
	}
	return WordsFromFrame(b.data)
}

func (b *recvBuffer) Size() int { return len(b.data) }

func (b *recvBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.owner.mu.Lock()
	b.owner.released++
	b.owner.mu.Unlock()
}

// sendBuffer is the fake send-side buffer handle.
type sendBuffer struct {
	data  []byte
	owner *Transport
	done  bool
}

func (b *sendBuffer) Bytes() []byte { return b.data }

func (b *sendBuffer) Commit(n int) error {
	if b.done {
		return api.ErrBufferReleased
	}
	b.done = true
	b.owner.mu.Lock()
	b.owner.sent = append(b.owner.sent, b.data[:n])
	b.owner.mu.Unlock()
	return nil
}

// FrameFromWords encodes 32-bit words into little-endian frame bytes.
func FrameFromWords(words []uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// WordsFromFrame decodes a little-endian frame into host-order words.
// Trailing bytes that do not fill a word are ignored.
func WordsFromFrame(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	return out
}
