package engine

import "sync/atomic"

// State is the per-variant record: the owned working array, the busy
// guard, and the frame counter. The array is exclusively owned by the
// running sort while the guard is set; outside a run it is only touched
// by Reset. States are created once at startup and never destroyed.
type State struct {
	variant Variant
	arr     []int

	sorting atomic.Bool
	steps   atomic.Uint64
}

// begin claims the busy guard. It returns false if a run is already
// active, giving single-flight semantics per variant.
func (s *State) begin() bool {
	return s.sorting.CompareAndSwap(false, true)
}

// end releases the busy guard.
func (s *State) end() {
	s.sorting.Store(false)
}

// Sorting reports whether a run is active.
func (s *State) Sorting() bool {
	return s.sorting.Load()
}

// Steps returns the number of frames emitted since the last reset.
func (s *State) Steps() uint64 {
	return s.steps.Load()
}

// Size returns the current array length.
func (s *State) Size() int {
	return len(s.arr)
}
