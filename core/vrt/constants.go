// Package vrt
// Author: momentics <momentics@gmail.com>
//
// Wire header layout constants.

package vrt

// PacketType is the header's packet-type nibble.
type PacketType uint32

const (
	PacketTypeData      PacketType = 0x0
	PacketTypeExtension PacketType = 0x1
	PacketTypeContext   PacketType = 0x4
)

const (
	// WordSize is the header word size in bytes.
	WordSize = 4

	// MaxHeaderWords is the largest possible header:
	// hdr + sid + cid(2) + tsi + tsf(2).
	MaxHeaderWords = 7

	// ClassIDWords is the optional class-id field length. This device
	// never emits or consumes a class id.
	ClassIDWords = 2

	// TrailerWords is the trailer length when the trailer bit is set.
	TrailerWords = 1
)

// Header word bit layout.
const (
	typeShift  = 28
	typeMask   = 0xf
	cidBit     = 1 << 27
	trailerBit = 1 << 26
	tsiShift   = 22
	tsiMask    = 0x3
	tsfShift   = 20
	tsfMask    = 0x3
	seqShift   = 16
	seqMask    = 0xf
	sizeMask   = 0xffff
)
