// File: device/rates.go
// Author: momentics <momentics@gmail.com>
//
// Rate updates share the locking discipline of the reconfiguration
// path: each takes the relevant stream handler lock so the update is
// never reordered relative to an in-flight transfer.

package device

// UpdateTickRate forwards a new FPGA tick rate to both directions.
func (d *Device) UpdateTickRate(rate float64) {
	d.recv.Lock()
	d.recv.SetTickRate(rate)
	d.recv.Unlock()
	d.send.Lock()
	d.send.SetTickRate(rate)
	d.send.Unlock()
}

// UpdateRxSampRate forwards a new receive sample rate.
func (d *Device) UpdateRxSampRate(rate float64) {
	d.recv.Lock()
	d.recv.SetSampRate(rate)
	d.recv.Unlock()
}

// UpdateTxSampRate forwards a new transmit sample rate.
func (d *Device) UpdateTxSampRate(rate float64) {
	d.send.Lock()
	d.send.SetSampRate(rate)
	d.send.Unlock()
}
