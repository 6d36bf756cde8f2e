// File: core/vrt/header.go
// Package vrt implements the IF packet header codec.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Word slices passed in are host-order values decoded from the
// little-endian wire (api.RecvBuffer.Words32 performs that
// conversion); the LE suffix records the wire convention.

package vrt

import "errors"

// PacketInfo is the decoded (or to-be-encoded) header of one packet.
type PacketInfo struct {
	Type         PacketType
	PacketWords  int // total 32-bit words in the packet, set by the caller before Unpack
	HeaderWords  int // words consumed by the header, set by Unpack/Pack
	PayloadWords int

	SeqCount int
	SID      uint32

	HasCID     bool
	HasTSI     bool
	HasTSF     bool
	HasTrailer bool

	TSI uint32 // integer seconds
	TSF uint64 // fractional ticks
}

// UnpackLE decodes the header at the start of words into info.
// info.PacketWords must already hold the packet length in words.
func UnpackLE(words []uint32, info *PacketInfo) error {
	if len(words) < 2 || info.PacketWords < 2 {
		return errors.New("packet too short for header")
	}
	hdr := words[0]

	info.Type = PacketType((hdr >> typeShift) & typeMask)
	switch info.Type {
	case PacketTypeData, PacketTypeExtension, PacketTypeContext:
	default:
		return errors.New("unsupported packet type")
	}

	if size := int(hdr & sizeMask); size > info.PacketWords {
		return errors.New("bad header or packet fragment")
	}
	info.SeqCount = int((hdr >> seqShift) & seqMask)
	info.HasCID = hdr&cidBit != 0
	info.HasTrailer = hdr&trailerBit != 0
	info.HasTSI = (hdr>>tsiShift)&tsiMask != 0
	info.HasTSF = (hdr>>tsfShift)&tsfMask != 0

	n := 1
	info.SID = words[n]
	n++
	if info.HasCID {
		n += ClassIDWords
	}
	if info.HasTSI {
		if len(words) < n+1 {
			return errors.New("packet too short for integer timestamp")
		}
		info.TSI = words[n]
		n++
	}
	if info.HasTSF {
		if len(words) < n+2 {
			return errors.New("packet too short for fractional timestamp")
		}
		info.TSF = uint64(words[n])<<32 | uint64(words[n+1])
		n += 2
	}
	info.HeaderWords = n

	payload := info.PacketWords - n
	if info.HasTrailer {
		payload -= TrailerWords
	}
	if payload < 0 {
		return errors.New("header overruns packet")
	}
	info.PayloadWords = payload
	return nil
}

// PackLE encodes info into words and returns the header word count.
// info.PayloadWords and the flag fields must be populated; PacketWords
// and HeaderWords are written back.
func PackLE(info *PacketInfo, words []uint32) (int, error) {
	n := 2
	if info.HasCID {
		return 0, errors.New("class id not supported on this link")
	}
	if info.HasTSI {
		n++
	}
	if info.HasTSF {
		n += 2
	}
	if len(words) < n {
		return 0, errors.New("destination too short for header")
	}

	info.HeaderWords = n
	info.PacketWords = n + info.PayloadWords
	if info.HasTrailer {
		info.PacketWords += TrailerWords
	}

	hdr := uint32(info.Type)<<typeShift |
		uint32(info.SeqCount&seqMask)<<seqShift |
		uint32(info.PacketWords&sizeMask)
	if info.HasTrailer {
		hdr |= trailerBit
	}
	if info.HasTSI {
		hdr |= 1 << tsiShift
	}
	if info.HasTSF {
		hdr |= 1 << tsfShift
	}

	words[0] = hdr
	words[1] = info.SID
	i := 2
	if info.HasTSI {
		words[i] = info.TSI
		i++
	}
	if info.HasTSF {
		words[i] = uint32(info.TSF >> 32)
		words[i+1] = uint32(info.TSF)
	}
	return n, nil
}

// ContextCode extracts the event/context code carried in the first
// payload word of a context packet.
func ContextCode(words []uint32, info *PacketInfo) (uint32, error) {
	if info.PayloadWords < 1 || len(words) < info.HeaderWords+1 {
		return 0, errors.New("context packet has no payload")
	}
	return words[info.HeaderWords] & 0xff, nil
}
