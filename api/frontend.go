// File: api/frontend.go
// Author: momentics <momentics@gmail.com>
//
// Collaborator contracts consumed by the I/O core: DSP front-ends and
// the hardware clock. Implementations live in the register/control
// layer; the core only programs muxes and reads the tick rate.

package api

// RxFrontend is one receive DSP core.
type RxFrontend interface {
	// SetMux programs the frontend mux from a connection string
	// resolved out of the routing tree.
	SetMux(conn string) error

	// SetNsampsPerPacket configures the per-packet sample count the
	// DSP emits.
	SetNsampsPerPacket(n int)

	// HandleOverflow is invoked by the stream handler when the host
	// side detects an overflow condition on this frontend's channel.
	HandleOverflow()
}

// TxFrontend is the single transmit DSP front end.
type TxFrontend interface {
	SetMux(conn string) error
}

// ClockSource reports the FPGA clock rate used to scale raw timestamp
// ticks into time values.
type ClockSource interface {
	TickRate() float64
}
