// control/routing.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe routing/configuration tree. The register/control layer
// populates it at enumeration time; the reconfiguration path resolves
// frontend connection strings from it.

package control

import (
	"sync"

	"github.com/pkg/errors"
)

// RoutingTree is a path-keyed store of configuration strings.
// Paths follow the "dboards/<db>/<dir>_frontends/<fe>/connection"
// convention used by the device layer.
type RoutingTree struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewRoutingTree initializes an empty tree.
func NewRoutingTree() *RoutingTree {
	return &RoutingTree{entries: make(map[string]string)}
}

// Set stores or replaces the value at path.
func (t *RoutingTree) Set(path, value string) {
	t.mu.Lock()
	t.entries[path] = value
	t.mu.Unlock()
}

// Resolve returns the value at path, failing if it is not present.
func (t *RoutingTree) Resolve(path string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[path]
	if !ok {
		return "", errors.Errorf("routing tree: no entry at %q", path)
	}
	return v, nil
}

// Exists reports whether path is present in the tree.
func (t *RoutingTree) Exists(path string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[path]
	return ok
}

// Snapshot returns a copy of all entries, for debug probes.
func (t *RoutingTree) Snapshot() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
