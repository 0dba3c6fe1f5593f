package eq

import "sync/atomic"

// Gate coalesces change notifications: any number of MarkDirty calls between
// two ConsumeIfDirty calls are observed exactly once.
type Gate struct {
	dirty atomic.Bool
}

// MarkDirty records a change. Safe from any goroutine.
func (g *Gate) MarkDirty() {
	g.dirty.Store(true)
}

// ConsumeIfDirty clears the flag and reports whether it was set.
func (g *Gate) ConsumeIfDirty() bool {
	return g.dirty.CompareAndSwap(true, false)
}
