// Package fake
// Author: momentics <momentics@gmail.com>
//
// Recording fake DSP front-ends for reconfiguration tests.

package fake

import (
	"sync"

	"github.com/momentics/hioload-sdr/api"
)

// RxFrontend records mux programming and overflow callbacks.
type RxFrontend struct {
	mu        sync.Mutex
	MuxConn   string
	Nsamps    int
	Overflows int
	MuxErr    error
}

var _ api.RxFrontend = (*RxFrontend)(nil)

// SetMux implements api.RxFrontend.
func (f *RxFrontend) SetMux(conn string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MuxErr != nil {
		return f.MuxErr
	}
	f.MuxConn = conn
	return nil
}

// SetNsampsPerPacket implements api.RxFrontend.
func (f *RxFrontend) SetNsampsPerPacket(n int) {
	f.mu.Lock()
	f.Nsamps = n
	f.mu.Unlock()
}

// HandleOverflow implements api.RxFrontend.
func (f *RxFrontend) HandleOverflow() {
	f.mu.Lock()
	f.Overflows++
	f.mu.Unlock()
}

// TxFrontend records transmit mux programming.
type TxFrontend struct {
	mu      sync.Mutex
	MuxConn string
	MuxErr  error
}

var _ api.TxFrontend = (*TxFrontend)(nil)

// SetMux implements api.TxFrontend.
func (f *TxFrontend) SetMux(conn string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MuxErr != nil {
		return f.MuxErr
	}
	f.MuxConn = conn
	return nil
}
