// Package registry selects the block kernel used by biquad sections.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BlockKernel filters buf in-place with one section and returns the updated
// delay-line state.
type BlockKernel func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// Entry is one registered kernel implementation.
type Entry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Kernel    BlockKernel
}

// Registry stores available kernels ordered by priority.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// Global is the default kernel registry.
var Global = &Registry{}

// Register adds an entry, keeping entries sorted by descending priority.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := len(r.entries)
	r.entries = append(r.entries, entry)
	for i > 0 && r.entries[i-1].Priority < entry.Priority {
		r.entries[i] = r.entries[i-1]
		i--
	}
	r.entries[i] = entry
}

// Lookup returns the highest-priority kernel supported by features, or nil.
func (r *Registry) Lookup(features cpu.Features) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			entry := r.entries[i]
			return &entry
		}
	}

	return nil
}

// Names lists registered kernel names in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i := range r.entries {
		names[i] = r.entries[i].Name
	}
	return names
}
