// File: core/async/bridge.go
// Package async bridges out-of-band hardware status packets into an
// application-visible event queue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The control path hands every non-data status packet to OnAsyncPacket
// from the hardware callback thread; consumers poll RecvAsyncMsg from
// their own thread. The queue between them is bounded and drop-oldest,
// so a slow consumer loses the oldest events, never stalls the
// callback.

package async

import (
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/control"
	"github.com/momentics/hioload-sdr/core/vrt"
	"github.com/momentics/hioload-sdr/pool"
)

// DefaultQueueDepth is the async event queue capacity. It is fixed per
// session, independent of the channel count.
const DefaultQueueDepth = 100

// Metric keys published by the bridge.
const (
	MetricMalformed    = "async.malformed"
	MetricUnrecognized = "async.unrecognized"
	MetricDrops        = "async.drops"
)

// Bridge parses transmit-status packets and queues async metadata.
type Bridge struct {
	queue     *pool.BoundedQueue[api.AsyncMetadata]
	clock     api.ClockSource
	sink      *control.FastpathSink
	log       *zap.Logger
	metrics   *control.MetricsRegistry
	asyncSID  uint32
	txChannel int
}

// Option customizes bridge construction.
type Option func(*Bridge)

// WithLogger attaches a structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// WithMetrics attaches a metrics registry.
func WithMetrics(m *control.MetricsRegistry) Option {
	return func(b *Bridge) { b.metrics = m }
}

// WithFastpathSink routes condition markers to sink.
func WithFastpathSink(s *control.FastpathSink) Option {
	return func(b *Bridge) { b.sink = s }
}

// WithQueueDepth overrides the event queue capacity.
func WithQueueDepth(n int) Option {
	return func(b *Bridge) { b.queue = pool.NewBoundedQueue[api.AsyncMetadata](n) }
}

// NewBridge creates a bridge recognizing asyncSID as the reserved
// transmit-status stream id. Events are attributed to txChannel.
func NewBridge(clock api.ClockSource, asyncSID uint32, txChannel int, opts ...Option) *Bridge {
	b := &Bridge{
		queue:     pool.NewBoundedQueue[api.AsyncMetadata](DefaultQueueDepth),
		clock:     clock,
		sink:      control.NewFastpathSink(256),
		log:       zap.NewNop(),
		metrics:   control.NewMetricsRegistry(),
		asyncSID:  asyncSID,
		txChannel: txChannel,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// OnAsyncPacket consumes one status packet from the hardware callback.
// The buffer is always released before return.
func (b *Bridge) OnAsyncPacket(buf api.RecvBuffer) {
	defer buf.Release()

	var info vrt.PacketInfo
	info.PacketWords = buf.Size() / vrt.WordSize
	words := buf.Words32()
	if err := vrt.UnpackLE(words, &info); err != nil {
		b.metrics.Inc(MetricMalformed)
		b.log.Error("async packet header unpack failed", zap.Error(err))
		return
	}

	if info.SID != b.asyncSID || info.Type == vrt.PacketTypeData {
		b.metrics.Inc(MetricUnrecognized)
		b.log.Error("unknown async packet",
			zap.Uint32("sid", info.SID), zap.Uint32("type", uint32(info.Type)))
		return
	}

	code, err := vrt.ContextCode(words, &info)
	if err != nil {
		b.metrics.Inc(MetricMalformed)
		b.log.Error("async packet has no context code", zap.Error(err))
		return
	}

	md := api.AsyncMetadata{
		Channel:   b.txChannel,
		EventCode: api.EventCode(code),
	}
	if info.HasTSI && info.HasTSF {
		md.HasTimeSpec = true
		md.TimeSpec = timeSpec(info.TSI, info.TSF, b.clock.TickRate())
	}

	if _, dropped := b.queue.PushDropOldest(md); dropped {
		b.metrics.Inc(MetricDrops)
	}

	switch {
	case md.EventCode&(api.EventCodeUnderflow|api.EventCodeUnderflowInPacket) != 0:
		b.sink.Mark(control.MarkerUnderflow)
	case md.EventCode&(api.EventCodeSeqError|api.EventCodeSeqErrorInBurst) != 0:
		b.sink.Mark(control.MarkerSeqError)
	}
}

// RecvAsyncMsg pops the next event, waiting up to timeout. ok=false
// means nothing arrived in time; benign wakeups inside the wait are
// retried internally and never surface.
func (b *Bridge) RecvAsyncMsg(timeout time.Duration) (api.AsyncMetadata, bool) {
	return b.queue.PopWait(timeout)
}

// QueueDepth reports the current event queue depth, for debug probes.
func (b *Bridge) QueueDepth() int { return b.queue.Len() }

// timeSpec converts an integer-seconds + fractional-ticks pair into a
// duration using the tick rate current at parse time.
func timeSpec(tsi uint32, tsf uint64, rate float64) time.Duration {
	secs := float64(tsi) + float64(tsf)/rate
	return time.Duration(secs * float64(time.Second))
}
