// File: device/routing.go
// Author: momentics <momentics@gmail.com>
//
// Reconfiguration controller: applies receive/transmit routing specs
// under the corresponding stream handler lock. Validation and
// connection-string resolution both complete before any handler state
// changes, so a failing spec leaves the session untouched.

package device

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/momentics/hioload-sdr/api"
)

func connPath(dir string, e api.RouteEntry) string {
	return fmt.Sprintf("dboards/%s/%s_frontends/%s/connection", e.Db, dir, e.Fe)
}

// validateSpec checks a routing spec against the hardware capability
// set: every named frontend must exist in the tree, and on receive the
// channel count must fit the queue slots allocated at session start
// (width <= 0 disables the slot bound).
func (d *Device) validateSpec(dir string, spec api.RouteSpec, width int) error {
	if len(spec) == 0 {
		return errors.Wrap(api.ErrInvalidRoutingSpec, "empty routing spec")
	}
	if width > 0 && len(spec) > width {
		return errors.Wrapf(api.ErrInvalidRoutingSpec,
			"%d channels requested, %d slots allocated at session start", len(spec), width)
	}
	for _, e := range spec {
		if !d.tree.Exists(connPath(dir, e)) {
			return errors.Wrapf(api.ErrInvalidRoutingSpec, "no %s frontend %v", dir, e)
		}
	}
	return nil
}

// UpdateRxRouting applies a receive routing spec: programs each DSP
// frontend mux from the resolved connection string, resizes the
// receive handler and rebinds every channel's frame supplier and
// overflow handler. Runs under the receive lock; no recv can overlap.
func (d *Device) UpdateRxRouting(spec api.RouteSpec) error {
	d.recv.Lock()
	defer d.recv.Unlock()

	if err := d.validateSpec("rx", spec, len(d.rxFes)); err != nil {
		return err
	}
	conns := make([]string, len(spec))
	for i, e := range spec {
		conn, err := d.tree.Resolve(connPath("rx", e))
		if err != nil {
			return errors.Wrap(err, "resolve rx routing")
		}
		conns[i] = conn
	}

	// Mux programming is best-effort from the core's point of view;
	// frontend failures belong to the DSP layer.
	for i, conn := range conns {
		if err := d.rxFes[i].SetMux(conn); err != nil {
			d.log.Warn("rx mux programming failed",
				zap.Int("chan", i), zap.Error(err))
		}
	}

	d.recv.Resize(len(spec))
	nsamps := d.MaxRecvSampsPerPacket()
	for i := 0; i < d.recv.Size(); i++ {
		d.rxFes[i].SetNsampsPerPacket(nsamps)
		dm, ch := d.demux, i
		d.recv.SetChanGetBuff(i, func(timeout time.Duration) api.RecvBuffer {
			return dm.GetRecvBuff(ch, timeout)
		})
		fe := d.rxFes[i]
		d.recv.SetOverflowHandler(i, fe.HandleOverflow)
	}
	return nil
}

// UpdateTxRouting applies a transmit routing spec. Transmit has a
// single physical front end regardless of channel count, so only
// spec[0] programs a mux; send-side suppliers bind straight to the
// transport, no demultiplexing on transmit.
func (d *Device) UpdateTxRouting(spec api.RouteSpec) error {
	d.send.Lock()
	defer d.send.Unlock()

	if err := d.validateSpec("tx", spec, 0); err != nil {
		return err
	}
	conn, err := d.tree.Resolve(connPath("tx", spec[0]))
	if err != nil {
		return errors.Wrap(err, "resolve tx routing")
	}

	if err := d.txFe.SetMux(conn); err != nil {
		d.log.Warn("tx mux programming failed", zap.Error(err))
	}

	d.send.Resize(len(spec))
	for i := 0; i < d.send.Size(); i++ {
		d.send.SetChanGetBuff(i, d.xport.GetSendBuff)
	}
	return nil
}
