// Package status collects pipeline counters readable from any goroutine.
package status

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
)

// Registry maps names to counters
// Registration takes a lock; writers cache the returned pointers and update
// them lock-free
type Registry struct {
	mu     sync.RWMutex
	ints   map[string]*atomic.Int64
	floats map[string]*AtomicFloat
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		ints:   make(map[string]*atomic.Int64),
		floats: make(map[string]*AtomicFloat),
	}
}

// Int returns the integer counter for name, creating it on first use
func (r *Registry) Int(name string) *atomic.Int64 {
	return lookup(&r.mu, r.ints, name)
}

// Float returns the float counter for name, creating it on first use
func (r *Registry) Float(name string) *AtomicFloat {
	return lookup(&r.mu, r.floats, name)
}

func lookup[T any](mu *sync.RWMutex, m map[string]*T, name string) *T {
	mu.RLock()
	if ptr, ok := m[name]; ok {
		mu.RUnlock()
		return ptr
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	// Double-check after acquiring write lock
	if ptr, ok := m[name]; ok {
		return ptr
	}
	ptr := new(T)
	m[name] = ptr
	return ptr
}

// Snapshot returns every counter formatted as text, keyed by name
func (r *Registry) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.ints)+len(r.floats))
	for k, v := range r.ints {
		out[k] = strconv.FormatInt(v.Load(), 10)
	}
	for k, v := range r.floats {
		out[k] = strconv.FormatFloat(v.Get(), 'f', 4, 64)
	}
	return out
}

// Report writes "name=value" lines in sorted name order
func (r *Registry) Report(w io.Writer) error {
	snap := r.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, snap[k]); err != nil {
			return err
		}
	}
	return nil
}
