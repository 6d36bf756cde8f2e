// File: core/stream/handler.go
// Package stream implements the per-direction packet handlers that turn
// transport frames into sample arrays and back.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Each handler owns the exclusive lock for its direction. The data
// path (Recv/Send) and every reconfiguration touching the same
// direction serialize on it: channel resize, callback rebinding and
// rate updates must run with the lock held, so no transfer can overlap
// a reconfiguration.

package stream

import (
	"time"

	"github.com/momentics/hioload-sdr/api"
)

// GetRecvBuffFn supplies the next frame for one receive channel.
type GetRecvBuffFn func(timeout time.Duration) api.RecvBuffer

// GetSendBuffFn supplies the next writable frame for one send channel.
type GetSendBuffFn func(timeout time.Duration) api.SendBuffer

// OverflowFn notifies a DSP core that its channel overflowed.
type OverflowFn func()

// Wire sample layout: one 32-bit word per complex sample, I component
// in the low 16 bits, Q in the high 16, little-endian on the wire.
const bytesPerWireSample = 4
