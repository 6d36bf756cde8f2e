// File: api/events.go
// Package api defines out-of-band event types for hioload-sdr.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "time"

// EventCode is a bitmask describing an asynchronous hardware condition
// reported by a context/status packet on the transmit side.
type EventCode uint32

const (
	EventCodeBurstAck          EventCode = 0x1
	EventCodeUnderflow         EventCode = 0x2
	EventCodeSeqError          EventCode = 0x4
	EventCodeTimeError         EventCode = 0x8
	EventCodeUnderflowInPacket EventCode = 0x10
	EventCodeSeqErrorInBurst   EventCode = 0x20
	EventCodeUserPayload       EventCode = 0x40
)

// AsyncMetadata is one entry of the asynchronous event queue.
type AsyncMetadata struct {
	// Channel is the transmit channel the event refers to.
	Channel int

	// HasTimeSpec reports whether TimeSpec carries a valid hardware
	// timestamp. It is set only when the source packet flagged both
	// the integer and the fractional timestamp field present.
	HasTimeSpec bool

	// TimeSpec is the hardware time of the event, converted from raw
	// ticks using the FPGA clock rate current at parse time.
	TimeSpec time.Duration

	// EventCode holds the condition bitmask extracted from the packet.
	EventCode EventCode
}
