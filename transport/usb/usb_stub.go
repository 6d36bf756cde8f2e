// File: transport/usb/usb_stub.go
// Author: momentics <momentics@gmail.com>
//
// Non-Linux stub.

//go:build !linux

package usb

import (
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-sdr/api"
)

// Transport is unavailable on this platform.
type Transport struct{ cfg Config }

var _ api.WireTransport = (*Transport)(nil)

// Open always fails on non-Linux platforms.
func Open(cfg Config, log *zap.Logger) (*Transport, error) {
	return nil, api.ErrNotSupported
}

func (t *Transport) GetRecvBuff(time.Duration) api.RecvBuffer { return nil }
func (t *Transport) GetSendBuff(time.Duration) api.SendBuffer { return nil }
func (t *Transport) NumRecvFrames() int                       { return t.cfg.NumRecvFrames }
func (t *Transport) NumSendFrames() int                       { return t.cfg.NumSendFrames }
func (t *Transport) RecvFrameSize() int                       { return t.cfg.RecvFrameSize }
func (t *Transport) SendFrameSize() int                       { return t.cfg.SendFrameSize }
func (t *Transport) Close() error                             { return nil }
