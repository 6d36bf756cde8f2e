// File: core/stream/send.go
// Author: momentics <momentics@gmail.com>
//
// Send-side packet handler: packs IF packet headers and host samples
// into transport frames obtained from the bound per-channel suppliers.

package stream

import (
	"encoding/binary"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/core/vrt"
)

type sendChan struct {
	getBuff GetSendBuffFn
}

// SendHandler packetizes samples for all active send channels.
type SendHandler struct {
	mu        sync.Mutex
	chans     []sendChan
	tickRate  float64
	sampRate  float64
	format    api.SampleFormat
	maxNsamps int
	seq       int
	log       *zap.Logger
}

// NewSendHandler creates an empty handler; channels appear on Resize.
func NewSendHandler(log *zap.Logger) *SendHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SendHandler{log: log}
}

// Lock acquires the send-side exclusive lock.
func (h *SendHandler) Lock() { h.mu.Lock() }

// Unlock releases the send-side exclusive lock.
func (h *SendHandler) Unlock() { h.mu.Unlock() }

// Resize sets the active channel count. Caller must hold the lock.
func (h *SendHandler) Resize(n int) {
	if n <= len(h.chans) {
		h.chans = h.chans[:n]
		return
	}
	h.chans = append(h.chans, make([]sendChan, n-len(h.chans))...)
}

// Size returns the active channel count. Caller must hold the lock.
func (h *SendHandler) Size() int { return len(h.chans) }

// SetChanGetBuff binds channel i's frame supplier. Caller must hold
// the lock.
func (h *SendHandler) SetChanGetBuff(i int, fn GetSendBuffFn) {
	h.chans[i].getBuff = fn
}

// SetTickRate updates the FPGA tick rate. Caller must hold the lock.
func (h *SendHandler) SetTickRate(rate float64) { h.tickRate = rate }

// SetSampRate updates the sample rate. Caller must hold the lock.
func (h *SendHandler) SetSampRate(rate float64) { h.sampRate = rate }

// SetSampleFormat sets the over-the-wire sample format. Caller must
// hold the lock.
func (h *SendHandler) SetSampleFormat(f api.SampleFormat) { h.format = f }

// SetMaxSampsPerPacket caps the payload of a single packet. Caller
// must hold the lock.
func (h *SendHandler) SetMaxSampsPerPacket(n int) { h.maxNsamps = n }

// Send packetizes up to nsamps complex samples per channel (src holds
// 2*nsamps int16 values per channel, I/Q interleaved) and returns the
// number of samples accepted, 0 on timeout.
func (h *SendHandler) Send(src [][]int16, nsamps int, md api.TxMetadata, timeout time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.chans) == 0 {
		return 0
	}
	if h.maxNsamps > 0 && nsamps > h.maxNsamps {
		nsamps = h.maxNsamps
	}
	sid := uint32(0)
	for i := range h.chans {
		if !h.sendChanOne(i, src[i], nsamps, md, sid, timeout) {
			return 0
		}
	}
	h.seq = (h.seq + 1) & 0xf
	return nsamps
}

func (h *SendHandler) sendChanOne(i int, src []int16, nsamps int, md api.TxMetadata, sid uint32, timeout time.Duration) bool {
	c := &h.chans[i]
	sb := c.getBuff(timeout)
	if sb == nil {
		return false
	}

	info := vrt.PacketInfo{
		Type:         vrt.PacketTypeData,
		SID:          sid,
		SeqCount:     h.seq,
		PayloadWords: nsamps,
		HasTSI:       md.HasTimeSpec,
		HasTSF:       md.HasTimeSpec,
	}
	if md.HasTimeSpec && h.tickRate > 0 {
		secs := md.TimeSpec.Seconds()
		info.TSI = uint32(secs)
		info.TSF = uint64((secs - float64(info.TSI)) * h.tickRate)
	}

	scratch := make([]uint32, vrt.MaxHeaderWords)
	hdrWords, err := vrt.PackLE(&info, scratch)
	if err != nil {
		h.log.Error("send header pack failed", zap.Int("chan", i), zap.Error(err))
		return false
	}

	out := sb.Bytes()
	for w := 0; w < hdrWords; w++ {
		binary.LittleEndian.PutUint32(out[w*vrt.WordSize:], scratch[w])
	}
	body := out[hdrWords*vrt.WordSize:]
	for s := 0; s < nsamps; s++ {
		w := uint32(uint16(src[2*s])) | uint32(uint16(src[2*s+1]))<<16
		binary.LittleEndian.PutUint32(body[s*bytesPerWireSample:], w)
	}

	total := (hdrWords + nsamps) * vrt.WordSize
	if err := sb.Commit(total); err != nil {
		h.log.Error("send commit failed", zap.Int("chan", i), zap.Error(err))
		return false
	}
	return true
}
