// File: core/stream/recv.go
// Author: momentics <momentics@gmail.com>
//
// Receive-side packet handler: drives the per-channel get-buffer
// callbacks, unpacks IF packet headers, converts wire samples to host
// int16 I/Q pairs and tracks sequence continuity per channel.

package stream

import (
	"encoding/binary"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/core/vrt"
)

type recvChan struct {
	getBuff  GetRecvBuffFn
	overflow OverflowFn
	lastSeq  int
	seenSeq  bool
}

// RecvHandler depacketizes frames for all active receive channels.
type RecvHandler struct {
	mu       sync.Mutex
	chans    []recvChan
	tickRate float64
	sampRate float64
	format   api.SampleFormat
	log      *zap.Logger
}

// NewRecvHandler creates an empty handler; channels appear on Resize.
func NewRecvHandler(log *zap.Logger) *RecvHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecvHandler{log: log}
}

// Lock acquires the receive-side exclusive lock.
func (h *RecvHandler) Lock() { h.mu.Lock() }

// Unlock releases the receive-side exclusive lock.
func (h *RecvHandler) Unlock() { h.mu.Unlock() }

// Resize sets the active channel count. Existing bindings inside the
// new occupancy are preserved. Caller must hold the lock.
func (h *RecvHandler) Resize(n int) {
	if n <= len(h.chans) {
		h.chans = h.chans[:n]
		return
	}
	h.chans = append(h.chans, make([]recvChan, n-len(h.chans))...)
}

// Size returns the active channel count. Caller must hold the lock.
func (h *RecvHandler) Size() int { return len(h.chans) }

// SetChanGetBuff binds channel i's frame supplier. Caller must hold
// the lock.
func (h *RecvHandler) SetChanGetBuff(i int, fn GetRecvBuffFn) {
	h.chans[i].getBuff = fn
	h.chans[i].seenSeq = false
}

// SetOverflowHandler binds channel i's overflow notification. Caller
// must hold the lock.
func (h *RecvHandler) SetOverflowHandler(i int, fn OverflowFn) {
	h.chans[i].overflow = fn
}

// SetTickRate updates the FPGA tick rate used for timestamp scaling.
// Caller must hold the lock.
func (h *RecvHandler) SetTickRate(rate float64) { h.tickRate = rate }

// SetSampRate updates the sample rate. Caller must hold the lock.
func (h *RecvHandler) SetSampRate(rate float64) { h.sampRate = rate }

// SetSampleFormat sets the over-the-wire sample format. Caller must
// hold the lock.
func (h *RecvHandler) SetSampleFormat(f api.SampleFormat) { h.format = f }

// Recv fills one destination slice per active channel with up to
// nsamps complex samples (2*nsamps int16 values, I/Q interleaved) and
// returns the number of samples delivered, 0 on timeout. Metadata is
// taken from channel 0's packet header.
func (h *RecvHandler) Recv(dst [][]int16, nsamps int, md *api.RxMetadata, timeout time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	*md = api.RxMetadata{}
	if len(h.chans) == 0 {
		return 0
	}
	delivered := nsamps
	for i := range h.chans {
		n := h.recvChanOne(i, dst[i], nsamps, md, i == 0, timeout)
		if n == 0 {
			return 0
		}
		if n < delivered {
			delivered = n
		}
	}
	return delivered
}

func (h *RecvHandler) recvChanOne(i int, dst []int16, nsamps int, md *api.RxMetadata, fillMD bool, timeout time.Duration) int {
	c := &h.chans[i]
	buf := c.getBuff(timeout)
	if buf == nil {
		return 0
	}
	defer buf.Release()

	var info vrt.PacketInfo
	info.PacketWords = buf.Size() / vrt.WordSize
	words := buf.Words32()
	if err := vrt.UnpackLE(words, &info); err != nil {
		h.log.Error("recv header unpack failed", zap.Int("chan", i), zap.Error(err))
		return 0
	}

	if c.seenSeq && info.SeqCount != (c.lastSeq+1)&0xf {
		h.log.Warn("receive sequence discontinuity",
			zap.Int("chan", i), zap.Int("got", info.SeqCount), zap.Int("want", (c.lastSeq+1)&0xf))
		if c.overflow != nil {
			c.overflow()
		}
	}
	c.lastSeq = info.SeqCount
	c.seenSeq = true

	if fillMD {
		md.HasTimeSpec = info.HasTSI && info.HasTSF
		if md.HasTimeSpec && h.tickRate > 0 {
			secs := float64(info.TSI) + float64(info.TSF)/h.tickRate
			md.TimeSpec = time.Duration(secs * float64(time.Second))
		}
		md.MoreFragments = info.PayloadWords > nsamps
	}

	n := info.PayloadWords
	if n > nsamps {
		n = nsamps
	}
	raw := buf.Bytes()[info.HeaderWords*vrt.WordSize:]
	for s := 0; s < n; s++ {
		w := binary.LittleEndian.Uint32(raw[s*bytesPerWireSample:])
		dst[2*s] = int16(w & 0xffff)
		dst[2*s+1] = int16(w >> 16)
	}
	return n
}
