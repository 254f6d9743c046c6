package application

import "sync/atomic"

// CycleGuard enforces that at most one execution cycle is active at a time.
// A cycle requested while another is running is skipped, not queued; the
// compare-and-swap makes the guarantee hold under concurrent triggers.
type CycleGuard struct {
	executing atomic.Bool
}

// TryAcquire claims the guard. It returns false when a cycle already holds it.
func (g *CycleGuard) TryAcquire() bool {
	return g.executing.CompareAndSwap(false, true)
}

// Release frees the guard for the next cycle.
func (g *CycleGuard) Release() {
	g.executing.Store(false)
}

// IsExecuting reports whether a cycle currently holds the guard.
func (g *CycleGuard) IsExecuting() bool {
	return g.executing.Load()
}
