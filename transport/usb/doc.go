// Package usb
// Author: momentics <momentics@gmail.com>
//
// USB character-device transport for the FPGA packet link.
// Frames live in slots preallocated at open time and recycled through
// free lists; a buffer handle's Release/Commit returns its slot, so no
// allocation happens on the data path. Linux only; other platforms get
// a stub that reports ErrNotSupported.
package usb
