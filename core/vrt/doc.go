// Package vrt
// Author: momentics <momentics@gmail.com>
//
// VITA-49-style IF packet header codec for the FPGA link framing.
// Pure functions over 32-bit word slices; no I/O, no allocation on the
// unpack path. The link always carries a stream identifier word, so
// every packet type here includes the SID.
package vrt
