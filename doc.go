// Package hioloadsdr is the receive/transmit I/O core of a USB-attached
// FPGA software-defined-radio link.
// Author: momentics <momentics@gmail.com>
//
// One physical packet transport carries every logical sample stream;
// the core demultiplexes interleaved, self-describing packets into
// per-channel bounded queues with FIFO ordering, bridges out-of-band
// hardware status packets into an application-visible event queue, and
// rebuilds per-channel routing under mutual exclusion with in-flight
// transfers.
//
// Package layout follows the hardware boundaries: api holds the
// contracts, core/vrt the wire header codec, core/demux the receive
// demultiplexer, core/async the event bridge, core/stream the
// packetizers, transport/usb the Linux link driver, device the
// composed session, and control the routing tree plus observability.
package hioloadsdr
