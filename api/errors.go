// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared across the hioload-sdr library.
// Timeouts on the data path are signalled by nil/zero results, not by
// these errors; see the demux and stream handler contracts.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrTransportClosed    = fmt.Errorf("transport is closed")
	ErrBufferReleased     = fmt.Errorf("buffer used after release")
	ErrInvalidRoutingSpec = fmt.Errorf("invalid routing spec")
	ErrChannelRange       = fmt.Errorf("channel index out of range")
	ErrNotSupported       = fmt.Errorf("operation not supported")
)
