// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// stream_test.go — Tests for the recv/send packet handlers.
package stream_test

import (
	"testing"
	"time"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/core/stream"
	"github.com/momentics/hioload-sdr/core/vrt"
	"github.com/momentics/hioload-sdr/fake"
)

const frameSize = 2048

func bindRecv(t *testing.T, h *stream.RecvHandler, xport *fake.Transport, n int) {
	t.Helper()
	h.Lock()
	h.Resize(n)
	for i := 0; i < n; i++ {
		h.SetChanGetBuff(i, func(timeout time.Duration) api.RecvBuffer {
			return xport.GetRecvBuff(timeout)
		})
	}
	h.SetTickRate(64e6)
	h.Unlock()
}

// dataPacket builds a timestamped data packet with ramp samples.
func dataPacket(t *testing.T, seq, nsamps int) []uint32 {
	t.Helper()
	info := vrt.PacketInfo{
		Type:         vrt.PacketTypeData,
		SID:          2,
		SeqCount:     seq,
		PayloadWords: nsamps,
		HasTSI:       true,
		HasTSF:       true,
		TSI:          1,
		TSF:          0,
	}
	words := make([]uint32, vrt.MaxHeaderWords+nsamps)
	hdr, err := vrt.PackLE(&info, words)
	if err != nil {
		t.Fatal(err)
	}
	for s := 0; s < nsamps; s++ {
		i16 := uint32(uint16(int16(s)))
		q16 := uint32(uint16(int16(-s)))
		words[hdr+s] = i16 | q16<<16
	}
	return words[:info.PacketWords]
}

// TestRecvSamples checks samples and metadata come through intact.
func TestRecvSamples(t *testing.T) {
	xport := fake.NewTransport(4, frameSize)
	h := stream.NewRecvHandler(nil)
	bindRecv(t, h, xport, 1)

	xport.PushPacket(dataPacket(t, 0, 16))

	dst := [][]int16{make([]int16, 32)}
	var md api.RxMetadata
	n := h.Recv(dst, 16, &md, 100*time.Millisecond)
	if n != 16 {
		t.Fatalf("expected 16 samples, got %d", n)
	}
	for s := 0; s < 16; s++ {
		if dst[0][2*s] != int16(s) || dst[0][2*s+1] != int16(-s) {
			t.Fatalf("sample %d mangled: I=%d Q=%d", s, dst[0][2*s], dst[0][2*s+1])
		}
	}
	if !md.HasTimeSpec || md.TimeSpec != time.Second {
		t.Errorf("bad metadata: %+v", md)
	}
}

// TestRecvTimeout checks an idle transport yields zero samples.
func TestRecvTimeout(t *testing.T) {
	xport := fake.NewTransport(4, frameSize)
	h := stream.NewRecvHandler(nil)
	bindRecv(t, h, xport, 1)

	dst := [][]int16{make([]int16, 8)}
	var md api.RxMetadata
	if n := h.Recv(dst, 4, &md, 30*time.Millisecond); n != 0 {
		t.Fatalf("expected 0 on timeout, got %d", n)
	}
}

// TestRecvSeqGapOverflow checks a sequence discontinuity fires the
// bound overflow handler.
func TestRecvSeqGapOverflow(t *testing.T) {
	xport := fake.NewTransport(4, frameSize)
	h := stream.NewRecvHandler(nil)
	bindRecv(t, h, xport, 1)

	overflows := 0
	h.Lock()
	h.SetOverflowHandler(0, func() { overflows++ })
	h.Unlock()

	xport.PushPacket(dataPacket(t, 0, 4))
	xport.PushPacket(dataPacket(t, 3, 4)) // gap: 1 and 2 lost

	dst := [][]int16{make([]int16, 8)}
	var md api.RxMetadata
	h.Recv(dst, 4, &md, 100*time.Millisecond)
	h.Recv(dst, 4, &md, 100*time.Millisecond)
	if overflows != 1 {
		t.Errorf("expected 1 overflow notification, got %d", overflows)
	}
}

// TestSendRoundTrip packs samples and decodes the committed frame.
func TestSendRoundTrip(t *testing.T) {
	xport := fake.NewTransport(4, frameSize)
	h := stream.NewSendHandler(nil)
	h.Lock()
	h.Resize(1)
	h.SetChanGetBuff(0, func(timeout time.Duration) api.SendBuffer {
		return xport.GetSendBuff(timeout)
	})
	h.SetTickRate(64e6)
	h.Unlock()

	src := [][]int16{make([]int16, 16)}
	for s := 0; s < 8; s++ {
		src[0][2*s] = int16(100 + s)
		src[0][2*s+1] = int16(-100 - s)
	}
	md := api.TxMetadata{HasTimeSpec: true, TimeSpec: 2 * time.Second}
	if n := h.Send(src, 8, md, 100*time.Millisecond); n != 8 {
		t.Fatalf("expected 8 samples sent, got %d", n)
	}

	sent := xport.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(sent))
	}
	words := fake.WordsFromFrame(sent[0])
	var info vrt.PacketInfo
	info.PacketWords = len(words)
	if err := vrt.UnpackLE(words, &info); err != nil {
		t.Fatal(err)
	}
	if info.Type != vrt.PacketTypeData || info.PayloadWords != 8 {
		t.Fatalf("bad packet: %+v", info)
	}
	if !info.HasTSI || info.TSI != 2 {
		t.Errorf("timestamp not packed: %+v", info)
	}
	for s := 0; s < 8; s++ {
		w := words[info.HeaderWords+s]
		if int16(w&0xffff) != int16(100+s) || int16(w>>16) != int16(-100-s) {
			t.Fatalf("sample %d mangled on wire", s)
		}
	}
}

// TestSendMaxSampsClamp checks the per-packet budget is honored.
func TestSendMaxSampsClamp(t *testing.T) {
	xport := fake.NewTransport(4, frameSize)
	h := stream.NewSendHandler(nil)
	h.Lock()
	h.Resize(1)
	h.SetChanGetBuff(0, func(timeout time.Duration) api.SendBuffer {
		return xport.GetSendBuff(timeout)
	})
	h.SetMaxSampsPerPacket(4)
	h.Unlock()

	src := [][]int16{make([]int16, 32)}
	if n := h.Send(src, 16, api.TxMetadata{}, 100*time.Millisecond); n != 4 {
		t.Fatalf("expected clamp to 4 samples, got %d", n)
	}
}
