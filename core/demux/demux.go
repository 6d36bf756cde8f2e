// File: core/demux/demux.go
// Package demux implements the receive-side channel demultiplexer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One physical link carries every receive channel's packets
// interleaved. The demultiplexer resolves "next buffer for channel i"
// requests: packets for other channels encountered on the way are
// parked in that channel's bounded pending queue, so per-channel FIFO
// order is preserved without a reader goroutine per channel.
//
// The demultiplexer is driven only from within the stream handler's
// receive lock; the pending queues themselves are safe without it.

package demux

import (
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/control"
	"github.com/momentics/hioload-sdr/pool"
)

// Metric keys published by the demultiplexer.
const (
	MetricTimeouts     = "demux.timeouts"
	MetricUnknownSID   = "demux.unknown_sid"
	MetricShortPacket  = "demux.short_packet"
	MetricPendingDrops = "demux.pending_drops"
)

// Demux routes received frames to logical channels by stream id.
type Demux struct {
	xport   api.WireTransport
	queues  []*pool.BoundedQueue[api.RecvBuffer]
	sidBase uint32

	log     *zap.Logger
	metrics *control.MetricsRegistry
}

// Option customizes demultiplexer construction.
type Option func(*Demux)

// WithLogger attaches a structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Demux) { d.log = l }
}

// WithMetrics attaches a metrics registry for drop/anomaly counters.
func WithMetrics(m *control.MetricsRegistry) Option {
	return func(d *Demux) { d.metrics = m }
}

// New creates a demultiplexer over xport with recvWidth channel slots.
// Each pending queue is bounded by the transport's receive frame depth.
// recvWidth is fixed for the life of the session: routing changes may
// activate fewer channels, never more.
func New(xport api.WireTransport, recvWidth int, sidBase uint32, opts ...Option) *Demux {
	d := &Demux{
		xport:   xport,
		queues:  make([]*pool.BoundedQueue[api.RecvBuffer], recvWidth),
		sidBase: sidBase,
		log:     zap.NewNop(),
		metrics: control.NewMetricsRegistry(),
	}
	for i := range d.queues {
		d.queues[i] = pool.NewBoundedQueue[api.RecvBuffer](xport.NumRecvFrames())
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GetRecvBuff returns the next frame destined for channel index, or nil
// if nothing arrived within the timeout.
//
// The timeout bounds each individual transport pull, not the call as a
// whole: when traffic for other channels keeps arriving, the loop
// parks it and pulls again with a fresh budget, so total wall time can
// exceed the nominal timeout under heavy cross-channel load.
func (d *Demux) GetRecvBuff(index int, timeout time.Duration) api.RecvBuffer {
	if index < 0 || index >= len(d.queues) {
		d.log.Error("get_recv_buff on out-of-range channel", zap.Int("chan", index))
		return nil
	}

	// Previously parked traffic is always served first so delivery
	// order matches wire arrival order.
	if buf, ok := d.queues[index].TryPop(); ok {
		return buf
	}

	for {
		buf := d.xport.GetRecvBuff(timeout)
		if buf == nil {
			d.metrics.Inc(MetricTimeouts)
			return nil
		}

		words := buf.Words32()
		if len(words) < 2 {
			d.metrics.Inc(MetricShortPacket)
			d.log.Warn("frame too short for stream id", zap.Int("bytes", buf.Size()))
			buf.Release()
			continue
		}

		// Only the SID word is needed to route; the full header is
		// decoded later by the depacketizer.
		sid := words[1]
		target := int(sid) - int(d.sidBase)
		if target == index {
			return buf
		}
		if target >= 0 && target < len(d.queues) {
			if evicted, dropped := d.queues[target].PushDropOldest(buf); dropped {
				evicted.Release()
				d.metrics.Inc(MetricPendingDrops)
			}
			continue
		}

		d.metrics.Inc(MetricUnknownSID)
		d.log.Error("data packet with unknown stream id", zap.Uint32("sid", sid))
		buf.Release()
	}
}

// Width returns the number of allocated channel slots.
func (d *Demux) Width() int { return len(d.queues) }

// PendingDepth reports the pending-queue depth for channel index, for
// debug probes and tests.
func (d *Demux) PendingDepth(index int) int {
	if index < 0 || index >= len(d.queues) {
		return 0
	}
	return d.queues[index].Len()
}
