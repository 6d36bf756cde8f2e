// File: device/io.go
// Author: momentics <momentics@gmail.com>
//
// Data-path surface of the device: sample transfers, async event
// consumption and per-packet payload budgets.

package device

import (
	"time"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/core/vrt"
)

// Recv transfers up to nsamps complex samples per active receive
// channel into dst and fills md. Returns 0 on timeout.
func (d *Device) Recv(dst [][]int16, nsamps int, md *api.RxMetadata, timeout time.Duration) int {
	return d.recv.Recv(dst, nsamps, md, timeout)
}

// Send transfers up to nsamps complex samples per active send channel.
// Returns the number of samples accepted, 0 on timeout.
func (d *Device) Send(src [][]int16, nsamps int, md api.TxMetadata, timeout time.Duration) int {
	return d.send.Send(src, nsamps, md, timeout)
}

// RecvAsyncMsg pops the next asynchronous hardware event, waiting up
// to timeout.
func (d *Device) RecvAsyncMsg(timeout time.Duration) (api.AsyncMetadata, bool) {
	return d.bridge.RecvAsyncMsg(timeout)
}

// MaxRecvSampsPerPacket returns the receive payload budget of one
// FPGA frame: frame size minus the maximum header (the unused class-id
// words excluded) and the forced trailer, divided by the wire sample
// size. Recomputed from the current sample format.
func (d *Device) MaxRecvSampsPerPacket() int {
	hdr := vrt.MaxHeaderWords*vrt.WordSize +
		vrt.TrailerWords*vrt.WordSize -
		vrt.ClassIDWords*vrt.WordSize
	bpp := d.xport.RecvFrameSize() - hdr
	return bpp / d.rxFormat.BytesPerSample()
}

// MaxSendSampsPerPacket returns the transmit payload budget of one
// FPGA frame: frame size minus the maximum header, class-id words
// excluded, no trailer on transmit.
func (d *Device) MaxSendSampsPerPacket() int {
	hdr := vrt.MaxHeaderWords*vrt.WordSize -
		vrt.ClassIDWords*vrt.WordSize
	bpp := d.xport.SendFrameSize() - hdr
	return bpp / d.txFormat.BytesPerSample()
}
