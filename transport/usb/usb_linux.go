// File: transport/usb/usb_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux implementation over a USB character device. Receive pulls
// poll the fd with the caller's timeout; EINTR during the wait is a
// benign interruption and is retried, never surfaced to the data path.

//go:build linux

package usb

import (
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-sdr/api"
)

// Transport is a USB-backed api.WireTransport.
type Transport struct {
	fd     int
	cfg    Config
	closed atomic.Bool

	freeRecv chan []byte
	freeSend chan []byte

	log *zap.Logger
}

var _ api.WireTransport = (*Transport)(nil)

// Open opens the device node and preallocates frame slots.
func Open(cfg Config, log *zap.Logger) (*Transport, error) {
	cfg = cfg.WithDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	fd, err := unix.Open(cfg.Path, unix.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open usb device %s", cfg.Path)
	}
	t := &Transport{
		fd:       fd,
		cfg:      cfg,
		freeRecv: make(chan []byte, cfg.NumRecvFrames),
		freeSend: make(chan []byte, cfg.NumSendFrames),
		log:      log,
	}
	for i := 0; i < cfg.NumRecvFrames; i++ {
		t.freeRecv <- make([]byte, cfg.RecvFrameSize)
	}
	for i := 0; i < cfg.NumSendFrames; i++ {
		t.freeSend <- make([]byte, cfg.SendFrameSize)
	}
	return t, nil
}

// GetRecvBuff implements api.WireTransport.
func (t *Transport) GetRecvBuff(timeout time.Duration) api.RecvBuffer {
	if t.closed.Load() {
		return nil
	}
	var slot []byte
	select {
	case slot = <-t.freeRecv:
	case <-time.After(timeout):
		return nil
	}

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}
		fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(remaining.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			t.log.Error("usb poll failed", zap.Error(err))
			t.freeRecv <- slot
			return nil
		}
		if n == 0 {
			t.freeRecv <- slot
			return nil
		}
		break
	}

	n, err := unix.Read(t.fd, slot)
	if err != nil || n <= 0 {
		if err != nil && err != unix.EAGAIN {
			t.log.Error("usb read failed", zap.Error(err))
		}
		t.freeRecv <- slot
		return nil
	}
	return &recvBuffer{data: slot[:n], slot: slot, owner: t}
}

// GetSendBuff implements api.WireTransport.
func (t *Transport) GetSendBuff(timeout time.Duration) api.SendBuffer {
	if t.closed.Load() {
		return nil
	}
	select {
	case slot := <-t.freeSend:
		return &sendBuffer{slot: slot, owner: t}
	case <-time.After(timeout):
		return nil
	}
}

// NumRecvFrames implements api.WireTransport.
func (t *Transport) NumRecvFrames() int { return t.cfg.NumRecvFrames }

// NumSendFrames implements api.WireTransport.
func (t *Transport) NumSendFrames() int { return t.cfg.NumSendFrames }

// RecvFrameSize implements api.WireTransport.
func (t *Transport) RecvFrameSize() int { return t.cfg.RecvFrameSize }

// SendFrameSize implements api.WireTransport.
func (t *Transport) SendFrameSize() int { return t.cfg.SendFrameSize }

// Close implements api.WireTransport.
func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}
	return unix.Close(t.fd)
}

type recvBuffer struct {
	data  []byte
	slot  []byte
	owner *Transport
	done  bool
}

func (b *recvBuffer) Bytes() []byte {
	if b.done {
		return nil
	}
	return b.data
}

func (b *recvBuffer) Words32() []uint32 {
	if b.done {
		return nil
	}
	out := make([]uint32, len(b.data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b.data[4*i:])
	}
	return out
}

func (b *recvBuffer) Size() int { return len(b.data) }

func (b *recvBuffer) Release() {
	if b.done {
		return
	}
	b.done = true
	if !b.owner.closed.Load() {
		b.owner.freeRecv <- b.slot
	}
}

type sendBuffer struct {
	slot  []byte
	owner *Transport
	done  bool
}

func (b *sendBuffer) Bytes() []byte { return b.slot }

func (b *sendBuffer) Commit(n int) error {
	if b.done {
		return api.ErrBufferReleased
	}
	b.done = true
	defer func() {
		if !b.owner.closed.Load() {
			b.owner.freeSend <- b.slot
		}
	}()
	for written := 0; written < n; {
		w, err := unix.Write(b.owner.fd, b.slot[written:n])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "usb write")
		}
		written += w
	}
	return nil
}
