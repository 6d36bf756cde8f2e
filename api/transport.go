// File: api/transport.go
// Author: momentics <momentics@gmail.com>
//
// Physical transport abstraction for the shared host/FPGA packet link.
// Exactly one WireTransport instance backs a device session; all
// logical channels are multiplexed over it.

package api

import "time"

// WireTransport is the single shared packet link between host and
// hardware. It is not re-entrant across channels: receive-side pulls
// must be serialized by the caller (the stream handler's receive lock).
type WireTransport interface {
	// GetRecvBuff pulls the next received frame, waiting up to timeout.
	// Returns nil if nothing arrived in time.
	GetRecvBuff(timeout time.Duration) RecvBuffer

	// GetSendBuff acquires a writable frame slot, waiting up to timeout.
	// Returns nil if no slot freed up in time.
	GetSendBuff(timeout time.Duration) SendBuffer

	// NumRecvFrames reports the configured receive frame depth.
	NumRecvFrames() int

	// NumSendFrames reports the configured send frame depth.
	NumSendFrames() int

	// RecvFrameSize reports the fixed receive frame size in bytes.
	RecvFrameSize() int

	// SendFrameSize reports the fixed send frame size in bytes.
	SendFrameSize() int

	// Close shuts the link down. Outstanding buffer handles become
	// invalid.
	Close() error
}
