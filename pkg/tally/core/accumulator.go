package core

import "sync"

// Accumulator is the total shared by all workers of one run. Every Add is a
// single read-modify-write under mu; nothing else is ever held under it.
type Accumulator struct {
	mu            sync.Mutex
	total         uint64
	contributions int
	sealed        bool
}

// Add folds one worker's local count into the total.
// It panics if the accumulator was already sealed.
func (a *Accumulator) Add(n uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sealed {
		panic("core: Add on sealed accumulator")
	}
	a.total += n
	a.contributions++
}

// Seal finalizes the accumulator and returns the total and the number of
// Add calls that produced it. Seal may be called more than once.
func (a *Accumulator) Seal() (total uint64, contributions int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.sealed = true
	return a.total, a.contributions
}
