// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// demux_test.go — Tests for the receive channel demultiplexer.
package demux_test

import (
	"testing"
	"time"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/core/demux"
	"github.com/momentics/hioload-sdr/fake"
)

const (
	sidBase   = 2
	numFrames = 4
	frameSize = 2048
)

// dataFrame builds a minimal data packet for the given channel with a
// marker word identifying the packet.
func dataFrame(ch int, marker uint32) []uint32 {
	return []uint32{3, uint32(sidBase + ch), marker}
}

func marker(buf api.RecvBuffer) uint32 {
	return buf.Words32()[2]
}

// TestPerChannelFIFO interleaves two channels' packets on the wire and
// checks each channel observes its own packets in arrival order.
func TestPerChannelFIFO(t *testing.T) {
	xport := fake.NewTransport(numFrames, frameSize)
	d := demux.New(xport, 2, sidBase)

	// Wire order: A0 B0 A1 B1 B2 A2.
	xport.PushPacket(dataFrame(0, 0xa0))
	xport.PushPacket(dataFrame(1, 0xb0))
	xport.PushPacket(dataFrame(0, 0xa1))
	xport.PushPacket(dataFrame(1, 0xb1))
	xport.PushPacket(dataFrame(1, 0xb2))
	xport.PushPacket(dataFrame(0, 0xa2))

	for _, want := range []uint32{0xa0, 0xa1, 0xa2} {
		buf := d.GetRecvBuff(0, 100*time.Millisecond)
		if buf == nil {
			t.Fatalf("timeout waiting for %#x", want)
		}
		if got := marker(buf); got != want {
			t.Fatalf("channel 0: expected %#x, got %#x", want, got)
		}
		buf.Release()
	}
	for _, want := range []uint32{0xb0, 0xb1, 0xb2} {
		buf := d.GetRecvBuff(1, 100*time.Millisecond)
		if buf == nil {
			t.Fatalf("timeout waiting for %#x", want)
		}
		if got := marker(buf); got != want {
			t.Fatalf("channel 1: expected %#x, got %#x", want, got)
		}
		buf.Release()
	}
}

// TestCrossChannelParking verifies a packet pulled while servicing the
// wrong channel is delivered later to its own channel.
func TestCrossChannelParking(t *testing.T) {
	xport := fake.NewTransport(numFrames, frameSize)
	d := demux.New(xport, 2, sidBase)

	xport.PushPacket(dataFrame(1, 0xb0))
	xport.PushPacket(dataFrame(0, 0xa0))

	buf := d.GetRecvBuff(0, 100*time.Millisecond)
	if buf == nil || marker(buf) != 0xa0 {
		t.Fatal("channel 0 did not get its packet")
	}
	buf.Release()

	if d.PendingDepth(1) != 1 {
		t.Fatalf("expected 1 parked packet, got %d", d.PendingDepth(1))
	}
	buf = d.GetRecvBuff(1, 100*time.Millisecond)
	if buf == nil || marker(buf) != 0xb0 {
		t.Fatal("parked packet not delivered to channel 1")
	}
	buf.Release()
}

// TestPendingDropOldest floods channel 1's pending queue past the frame
// depth while servicing channel 0 and checks the oldest entries are
// evicted and released, never exceeding capacity.
func TestPendingDropOldest(t *testing.T) {
	xport := fake.NewTransport(numFrames, frameSize)
	d := demux.New(xport, 2, sidBase)

	for i := 0; i < numFrames+2; i++ {
		xport.PushPacket(dataFrame(1, uint32(0xb0+i)))
	}
	xport.PushPacket(dataFrame(0, 0xa0))

	if buf := d.GetRecvBuff(0, 100*time.Millisecond); buf == nil {
		t.Fatal("channel 0 starved")
	} else {
		buf.Release()
	}

	if d.PendingDepth(1) != numFrames {
		t.Fatalf("pending depth %d, want %d", d.PendingDepth(1), numFrames)
	}
	if xport.Released() < 2 {
		t.Errorf("evicted buffers not released: %d", xport.Released())
	}
	// Survivors are the newest numFrames packets, still in order.
	for i := 2; i < numFrames+2; i++ {
		buf := d.GetRecvBuff(1, 100*time.Millisecond)
		if buf == nil {
			t.Fatalf("missing survivor %d", i)
		}
		if got := marker(buf); got != uint32(0xb0+i) {
			t.Fatalf("expected %#x, got %#x", 0xb0+i, got)
		}
		buf.Release()
	}
}

// TestTimeout checks the demultiplexer signals nothing-available after
// the pull budget instead of blocking.
func TestTimeout(t *testing.T) {
	xport := fake.NewTransport(numFrames, frameSize)
	d := demux.New(xport, 1, sidBase)

	start := time.Now()
	if buf := d.GetRecvBuff(0, 50*time.Millisecond); buf != nil {
		t.Fatal("expected nil on idle transport")
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Error("returned before timeout")
	}
}

// TestUnknownSID verifies out-of-range stream ids are dropped, released
// and never parked.
func TestUnknownSID(t *testing.T) {
	xport := fake.NewTransport(numFrames, frameSize)
	d := demux.New(xport, 2, sidBase)

	xport.PushPacket(dataFrame(7, 0xdead)) // beyond the 2 slots
	xport.PushPacket([]uint32{3, 0})       // below the SID base
	xport.PushPacket(dataFrame(0, 0xa0))

	buf := d.GetRecvBuff(0, 100*time.Millisecond)
	if buf == nil || marker(buf) != 0xa0 {
		t.Fatal("valid packet lost behind anomalies")
	}
	buf.Release()

	if d.PendingDepth(0) != 0 || d.PendingDepth(1) != 0 {
		t.Error("anomalous packets were parked")
	}
	if xport.Released() < 2 {
		t.Errorf("anomalous packets not released: %d", xport.Released())
	}
}

// TestShortFrame verifies a frame too small to carry a stream id is
// discarded without disturbing the loop.
func TestShortFrame(t *testing.T) {
	xport := fake.NewTransport(numFrames, frameSize)
	d := demux.New(xport, 1, sidBase)

	xport.PushFrame([]byte{0x01, 0x02})
	xport.PushPacket(dataFrame(0, 0xa0))

	buf := d.GetRecvBuff(0, 100*time.Millisecond)
	if buf == nil || marker(buf) != 0xa0 {
		t.Fatal("valid packet lost behind short frame")
	}
	buf.Release()
}
