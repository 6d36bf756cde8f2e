// File: device/device.go
// Package device composes the I/O core of the USB/FPGA SDR link:
// transport, receive demultiplexer, async event bridge, stream
// handlers, DSP front-ends and the routing tree.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package device

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/control"
	"github.com/momentics/hioload-sdr/core/async"
	"github.com/momentics/hioload-sdr/core/demux"
	"github.com/momentics/hioload-sdr/core/stream"
)

// Stream identifier map of the FPGA framing.
const (
	// TxAsyncSID is reserved for transmit-status packets.
	TxAsyncSID uint32 = 1

	// RxSIDBase is the stream id of receive channel 0; channel i uses
	// RxSIDBase+i.
	RxSIDBase uint32 = 2
)

// Device is one USB/FPGA link session.
type Device struct {
	xport api.WireTransport
	clock api.ClockSource
	tree  *control.RoutingTree
	rxFes []api.RxFrontend
	txFe  api.TxFrontend

	demux  *demux.Demux
	bridge *async.Bridge
	recv   *stream.RecvHandler
	send   *stream.SendHandler

	rxFormat api.SampleFormat
	txFormat api.SampleFormat

	log     *zap.Logger
	metrics *control.MetricsRegistry
	sink    *control.FastpathSink
	probes  *control.DebugProbes
}

// Option customizes device construction.
type Option func(*Device)

// WithLogger attaches a structured logger to the device and every
// component under it.
func WithLogger(l *zap.Logger) Option {
	return func(d *Device) { d.log = l }
}

// WithMetrics attaches a metrics registry shared by all components.
func WithMetrics(m *control.MetricsRegistry) Option {
	return func(d *Device) { d.metrics = m }
}

// WithFastpathSink overrides the default diagnostic marker sink.
func WithFastpathSink(s *control.FastpathSink) Option {
	return func(d *Device) { d.sink = s }
}

// New opens a device session over xport. The receive width (number of
// pending-queue slots) is fixed at len(rxFes) for the session's life;
// routing changes may activate fewer channels, never more.
func New(xport api.WireTransport, clock api.ClockSource, tree *control.RoutingTree,
	rxFes []api.RxFrontend, txFe api.TxFrontend, opts ...Option) *Device {

	d := &Device{
		xport:    xport,
		clock:    clock,
		tree:     tree,
		rxFes:    rxFes,
		txFe:     txFe,
		rxFormat: api.SampleFormat{Width: 16, LittleEndian: true},
		txFormat: api.SampleFormat{Width: 16, LittleEndian: true},
		log:      zap.NewNop(),
		metrics:  control.NewMetricsRegistry(),
		sink:     control.NewFastpathSink(256),
		probes:   control.NewDebugProbes(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.demux = demux.New(xport, len(rxFes), RxSIDBase,
		demux.WithLogger(d.log.Named("demux")),
		demux.WithMetrics(d.metrics))
	d.bridge = async.NewBridge(clock, TxAsyncSID, 0,
		async.WithLogger(d.log.Named("async")),
		async.WithMetrics(d.metrics),
		async.WithFastpathSink(d.sink))

	d.recv = stream.NewRecvHandler(d.log.Named("recv"))
	d.send = stream.NewSendHandler(d.log.Named("send"))

	d.recv.Lock()
	d.recv.SetSampleFormat(d.rxFormat)
	d.recv.Unlock()
	d.send.Lock()
	d.send.SetSampleFormat(d.txFormat)
	d.send.SetMaxSampsPerPacket(d.MaxSendSampsPerPacket())
	d.send.Unlock()

	d.probes.RegisterProbe("async.depth", func() any { return d.bridge.QueueDepth() })
	for i := range rxFes {
		i := i
		d.probes.RegisterProbe(fmt.Sprintf("demux.pending.%d", i), func() any {
			return d.demux.PendingDepth(i)
		})
	}
	return d
}

// HandleAsyncPacket is the hardware-callback entry for out-of-band
// status packets. Safe to call from the callback thread.
func (d *Device) HandleAsyncPacket(buf api.RecvBuffer) {
	d.bridge.OnAsyncPacket(buf)
}

// Probes returns the debug probe registry.
func (d *Device) Probes() *control.DebugProbes { return d.probes }

// Metrics returns the shared metrics registry.
func (d *Device) Metrics() *control.MetricsRegistry { return d.metrics }

// Fastpath returns the diagnostic marker sink.
func (d *Device) Fastpath() *control.FastpathSink { return d.sink }

// NumRxChans returns the active receive channel count.
func (d *Device) NumRxChans() int {
	d.recv.Lock()
	defer d.recv.Unlock()
	return d.recv.Size()
}

// NumTxChans returns the active transmit channel count.
func (d *Device) NumTxChans() int {
	d.send.Lock()
	defer d.send.Unlock()
	return d.send.Size()
}

// Close shuts the session down.
func (d *Device) Close() error {
	return d.xport.Close()
}
