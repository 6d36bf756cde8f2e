// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for the I/O core.
// Counters cover queue drops, demux anomalies and timeouts; exposed as
// a thread-safe snapshot for external monitoring.

package control

import (
	"sync"
	"time"
)

// MetricsRegistry holds named counters and gauges.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]uint64
	gauges   map[string]any
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]uint64),
		gauges:   make(map[string]any),
	}
}

// Inc adds one to the named counter.
func (mr *MetricsRegistry) Inc(key string) {
	mr.mu.Lock()
	mr.counters[key]++
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Counter reads the named counter.
func (mr *MetricsRegistry) Counter(key string) uint64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.counters[key]
}

// Set sets or updates a gauge key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.gauges[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics, counters and gauges merged.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.counters)+len(mr.gauges))
	for k, v := range mr.counters {
		out[k] = v
	}
	for k, v := range mr.gauges {
		out[k] = v
	}
	return out
}
