// Package api
// Author: momentics <momentics@gmail.com>
//
// Scoped-ownership buffer handles for the USB/FPGA packet link.
//
// A buffer handle grants exclusive use of one transport frame slot.
// There is no explicit free call: Release (receive) or Commit (send)
// ends the handle's lifetime and returns the slot to the transport.

package api

// RecvBuffer is a handle on one received transport frame.
type RecvBuffer interface {
	// Bytes returns the frame payload as received from the link.
	// The slice is valid only until Release.
	Bytes() []byte

	// Words32 returns the frame viewed as little-endian 32-bit words,
	// the unit the wire packet header is expressed in.
	Words32() []uint32

	// Size returns the received frame length in bytes.
	Size() int

	// Release returns the underlying slot to the transport.
	// The handle must not be used afterwards.
	Release()
}

// SendBuffer is a handle on one writable transport frame slot.
// Wire words are encoded little-endian directly into Bytes.
type SendBuffer interface {
	// Bytes returns the writable frame region.
	Bytes() []byte

	// Commit submits the first n bytes to the link and returns the
	// slot to the transport. The handle must not be used afterwards.
	Commit(n int) error
}
