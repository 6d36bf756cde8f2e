// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fixed-rate fake FPGA clock.

package fake

import "github.com/momentics/hioload-sdr/api"

// Clock reports a fixed tick rate.
type Clock struct {
	Rate float64
}

var _ api.ClockSource = (*Clock)(nil)

// TickRate implements api.ClockSource.
func (c *Clock) TickRate() float64 { return c.Rate }
