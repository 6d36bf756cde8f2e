// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// header_test.go — Tests for the IF packet header codec.
package vrt

import "testing"

// TestHeaderRoundTrip packs a timestamped data packet and unpacks it.
func TestHeaderRoundTrip(t *testing.T) {
	in := PacketInfo{
		Type:         PacketTypeData,
		SeqCount:     5,
		SID:          0x12,
		HasTSI:       true,
		HasTSF:       true,
		HasTrailer:   true,
		TSI:          100,
		TSF:          0x1_0000_0042,
		PayloadWords: 3,
	}
	words := make([]uint32, 16)
	n, err := PackLE(&in, words)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("expected 5 header words, got %d", n)
	}

	var out PacketInfo
	out.PacketWords = in.PacketWords
	if err := UnpackLE(words, &out); err != nil {
		t.Fatal(err)
	}
	if out.Type != PacketTypeData || out.SID != 0x12 || out.SeqCount != 5 {
		t.Errorf("header fields mangled: %+v", out)
	}
	if !out.HasTSI || !out.HasTSF || !out.HasTrailer {
		t.Errorf("presence flags mangled: %+v", out)
	}
	if out.TSI != 100 || out.TSF != 0x1_0000_0042 {
		t.Errorf("timestamp mangled: tsi=%d tsf=%#x", out.TSI, out.TSF)
	}
	if out.PayloadWords != 3 {
		t.Errorf("expected 3 payload words, got %d", out.PayloadWords)
	}
}

// TestUnpackTooShort verifies truncated packets fail cleanly.
func TestUnpackTooShort(t *testing.T) {
	var info PacketInfo
	info.PacketWords = 1
	if err := UnpackLE([]uint32{0}, &info); err == nil {
		t.Error("expected error for 1-word packet")
	}
	// Header claims a timestamp the buffer cannot hold.
	hdr := uint32(PacketTypeData)<<28 | 1<<22 | 3
	info = PacketInfo{PacketWords: 2}
	if err := UnpackLE([]uint32{hdr, 7}, &info); err == nil {
		t.Error("expected error for truncated timestamp")
	}
}

// TestUnpackBadSize rejects a size field larger than the buffer.
func TestUnpackBadSize(t *testing.T) {
	hdr := uint32(PacketTypeData)<<28 | 100
	info := PacketInfo{PacketWords: 4}
	if err := UnpackLE([]uint32{hdr, 7, 0, 0}, &info); err == nil {
		t.Error("expected fragment error")
	}
}

// TestContextCode extracts the event code from a context packet.
func TestContextCode(t *testing.T) {
	in := PacketInfo{
		Type:         PacketTypeContext,
		SID:          1,
		PayloadWords: 1,
	}
	words := make([]uint32, 8)
	if _, err := PackLE(&in, words); err != nil {
		t.Fatal(err)
	}
	words[in.HeaderWords] = 0xffffff02 // code in low byte only

	var out PacketInfo
	out.PacketWords = in.PacketWords
	if err := UnpackLE(words, &out); err != nil {
		t.Fatal(err)
	}
	code, err := ContextCode(words, &out)
	if err != nil {
		t.Fatal(err)
	}
	if code != 0x02 {
		t.Errorf("expected code 0x02, got %#x", code)
	}
}
