// Package control
// Author: momentics <momentics@gmail.com>
//
// Control-plane support for the I/O core: the routing tree the
// reconfiguration path resolves connection strings from, runtime
// metrics counters, debug probes, and the non-blocking fast-path
// marker sink for hot-loop diagnostics.
package control
