// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations for the sample data path.

package api

import (
	"fmt"
	"time"
)

// SampleFormat describes the over-the-wire sample representation.
type SampleFormat struct {
	Width        int  // bits per component
	Shift        int  // right shift applied by hardware
	LittleEndian bool // wire byte order
}

// BytesPerSample returns the size of one complex sample on the wire.
func (f SampleFormat) BytesPerSample() int {
	return 2 * f.Width / 8
}

// RxMetadata describes one completed receive call.
type RxMetadata struct {
	HasTimeSpec   bool
	TimeSpec      time.Duration
	MoreFragments bool
	EndOfBurst    bool
}

// TxMetadata describes one send call.
type TxMetadata struct {
	HasTimeSpec  bool
	TimeSpec     time.Duration
	StartOfBurst bool
	EndOfBurst   bool
}

// RouteEntry names one daughterboard/frontend pair backing a logical
// channel.
type RouteEntry struct {
	Db string // daughterboard slot name
	Fe string // frontend name within the slot
}

func (e RouteEntry) String() string {
	return fmt.Sprintf("%s:%s", e.Db, e.Fe)
}

// RouteSpec is an ordered routing specification: entry i backs logical
// channel i.
type RouteSpec []RouteEntry
