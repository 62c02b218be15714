package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/sortviz/config"
)

// recordedFrame is one sink call with deep-copied arguments.
type recordedFrame struct {
	arr       []int
	highlight []int
}

// recordingSink captures frames per variant for assertions.
type recordingSink struct {
	mu     sync.Mutex
	frames map[Variant][]recordedFrame
}

func newRecordingSink() *recordingSink {
	return &recordingSink{frames: make(map[Variant][]recordedFrame)}
}

func (s *recordingSink) Frame(v Variant, arr []int, highlight ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[v] = append(s.frames[v], recordedFrame{
		arr:       append([]int(nil), arr...),
		highlight: append([]int(nil), highlight...),
	})
}

func (s *recordingSink) count(v Variant) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames[v])
}

func (s *recordingSink) get(v Variant) []recordedFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedFrame(nil), s.frames[v]...)
}

func newTestEngine() (*Engine, *recordingSink) {
	sink := newRecordingSink()
	e := New(config.NewStore(config.Default()), sink, func(time.Duration) {})
	return e, sink
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isSorted(arr []int) bool {
	for i := 1; i < len(arr); i++ {
		if arr[i-1] > arr[i] {
			return false
		}
	}
	return true
}

func sameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int]int)
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// waitFor polls cond with a deadline, failing the test on timeout.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func TestAllVariantsSortAndPermute(t *testing.T) {
	input := []int{42, 7, 93, 5, 61, 28, 70, 7, 15, 84}

	for _, v := range Variants() {
		e, _ := newTestEngine()
		st := e.State(v)
		st.arr = append([]int(nil), input...)

		if !e.Sort(v) {
			t.Fatalf("%s: sort rejected on idle state", v)
		}
		if !isSorted(st.arr) {
			t.Errorf("%s: output not sorted: %v", v, st.arr)
		}
		if !sameMultiset(input, st.arr) {
			t.Errorf("%s: output not a permutation of input: %v", v, st.arr)
		}
		if st.Sorting() {
			t.Errorf("%s: busy guard still set after completion", v)
		}
	}
}

func TestSortedInputEmitsNoFrames(t *testing.T) {
	sorted := []int{5, 12, 12, 30, 47, 58, 66, 71, 89, 95}

	for _, v := range Variants() {
		e, sink := newTestEngine()
		e.State(v).arr = append([]int(nil), sorted...)

		e.Sort(v)
		if n := sink.count(v); n != 0 {
			t.Errorf("%s: sorted input produced %d frames, want 0", v, n)
		}
	}
}

func TestEmptyAndSingleElementEmitNothing(t *testing.T) {
	for _, input := range [][]int{{}, {7}} {
		for _, v := range Variants() {
			e, sink := newTestEngine()
			e.State(v).arr = append([]int(nil), input...)

			if !e.Sort(v) {
				t.Fatalf("%s: sort rejected", v)
			}
			if n := sink.count(v); n != 0 {
				t.Errorf("%s: input %v produced %d frames, want 0", v, input, n)
			}
		}
	}
}

func TestBubbleTwoElements(t *testing.T) {
	e, sink := newTestEngine()
	st := e.State(VariantBubble)
	st.arr = []int{2, 1}

	e.Sort(VariantBubble)

	frames := sink.get(VariantBubble)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want exactly 1", len(frames))
	}
	if !equalInts(frames[0].highlight, []int{0, 1}) {
		t.Errorf("highlight = %v, want [0 1]", frames[0].highlight)
	}
	if !equalInts(frames[0].arr, []int{1, 2}) {
		t.Errorf("frame state = %v, want [1 2]", frames[0].arr)
	}
	if !equalInts(st.arr, []int{1, 2}) {
		t.Errorf("final state = %v, want [1 2]", st.arr)
	}
}

func TestInsertionFrameSequence(t *testing.T) {
	e, sink := newTestEngine()
	st := e.State(VariantInsertion)
	st.arr = []int{5, 3, 8, 1}

	e.Sort(VariantInsertion)

	want := []recordedFrame{
		// key 3: one shift, then the settle placing it
		{arr: []int{5, 5, 8, 1}, highlight: []int{0, 1}},
		{arr: []int{3, 5, 8, 1}, highlight: []int{0}},
		// key 8: already in place, no frames
		// key 1: three shifts, then the settle placing it at index 0
		{arr: []int{3, 5, 8, 8}, highlight: []int{2, 3}},
		{arr: []int{3, 5, 5, 8}, highlight: []int{1, 2}},
		{arr: []int{3, 3, 5, 8}, highlight: []int{0, 1}},
		{arr: []int{1, 3, 5, 8}, highlight: []int{0}},
	}

	frames := sink.get(VariantInsertion)
	if len(frames) != len(want) {
		t.Fatalf("got %d frames, want %d: %+v", len(frames), len(want), frames)
	}
	for i := range want {
		if !equalInts(frames[i].arr, want[i].arr) {
			t.Errorf("frame %d state = %v, want %v", i, frames[i].arr, want[i].arr)
		}
		if !equalInts(frames[i].highlight, want[i].highlight) {
			t.Errorf("frame %d highlight = %v, want %v", i, frames[i].highlight, want[i].highlight)
		}
	}
}

func TestStepCounterMatchesFrames(t *testing.T) {
	e, sink := newTestEngine()
	st := e.State(VariantQuick)
	st.arr = []int{9, 4, 8, 2, 7, 1}

	e.Sort(VariantQuick)
	if got, want := st.Steps(), uint64(sink.count(VariantQuick)); got != want {
		t.Errorf("steps = %d, frames = %d", got, want)
	}
}

func TestResetReplacesArrayAndRenders(t *testing.T) {
	e, sink := newTestEngine()
	st := e.State(VariantMerge)
	st.arr = []int{3, 1, 2}
	st.steps.Store(7)

	if !e.Reset(VariantMerge) {
		t.Fatal("reset rejected on idle state")
	}
	if st.Steps() != 0 {
		t.Errorf("steps = %d after reset, want 0", st.Steps())
	}
	if len(st.arr) != config.Default().ArraySize {
		t.Errorf("array length = %d, want %d", len(st.arr), config.Default().ArraySize)
	}
	frames := sink.get(VariantMerge)
	if len(frames) != 1 {
		t.Fatalf("got %d frames from reset, want 1", len(frames))
	}
	if len(frames[0].highlight) != 0 {
		t.Errorf("reset frame has highlights: %v", frames[0].highlight)
	}
}

func TestBusyGuardRejectsStartAndReset(t *testing.T) {
	sink := newRecordingSink()
	gate := make(chan struct{})
	e := New(config.NewStore(config.Default()), sink, func(time.Duration) { <-gate })

	st := e.State(VariantBubble)
	st.arr = []int{3, 2, 1}

	done := make(chan bool, 1)
	go func() { done <- e.Sort(VariantBubble) }()
	// After the first frame the run is parked on the gated delay, so the
	// step counter cannot move until the gate opens
	waitFor(t, func() bool { return st.Sorting() && sink.count(VariantBubble) > 0 }, "sort to begin")

	stepsBefore := st.Steps()
	if e.Sort(VariantBubble) {
		t.Error("re-entrant start accepted while sorting")
	}
	if e.Reset(VariantBubble) {
		t.Error("reset accepted while sorting")
	}
	if st.Steps() != stepsBefore {
		t.Error("rejected requests mutated the step counter")
	}

	close(gate)
	if !<-done {
		t.Fatal("original run did not complete")
	}
	if !isSorted(st.arr) {
		t.Errorf("final state not sorted: %v", st.arr)
	}

	// Back to idle, reset is accepted again
	if !e.Reset(VariantBubble) {
		t.Error("reset rejected after run completed")
	}
}

func TestVariantsAreIndependent(t *testing.T) {
	sink := newRecordingSink()
	gate := make(chan struct{})
	e := New(config.NewStore(config.Default()), sink, func(time.Duration) { <-gate })

	bubble := e.State(VariantBubble)
	bubble.arr = []int{2, 1}

	done := make(chan bool, 1)
	go func() { done <- e.Sort(VariantBubble) }()
	waitFor(t, bubble.Sorting, "bubble to begin")

	// A paused bubble run must not block the other variants
	quick := e.State(VariantQuick)
	quick.arr = []int{3, 1, 2}
	eQuickDone := make(chan bool, 1)
	go func() { eQuickDone <- e.Sort(VariantQuick) }()

	waitFor(t, func() bool { return quick.Sorting() || sink.count(VariantQuick) > 0 }, "quick to make progress")

	close(gate)
	if !<-done {
		t.Fatal("bubble run did not complete")
	}
	if !<-eQuickDone {
		t.Fatal("quick run did not complete")
	}
	if !isSorted(quick.arr) || !isSorted(bubble.arr) {
		t.Error("independent runs did not both sort")
	}
}

func TestStartClaimsGuardBeforeReturning(t *testing.T) {
	sink := newRecordingSink()
	gate := make(chan struct{})
	e := New(config.NewStore(config.Default()), sink, func(time.Duration) { <-gate })

	st := e.State(VariantBubble)
	st.arr = []int{3, 2, 1}

	// The busy guard must be visible the instant Start returns, so a
	// follow-up reset on the control goroutine can never slip into the
	// window before the run begins and replace the array mid-sort
	e.Start(VariantBubble)
	if !st.Sorting() {
		t.Fatal("busy guard not set when Start returned")
	}
	if e.Reset(VariantBubble) {
		t.Error("reset accepted right after start")
	}
	if e.Sort(VariantBubble) {
		t.Error("re-entrant start accepted right after start")
	}

	close(gate)
	waitFor(t, func() bool { return !st.Sorting() }, "run to complete")
	if !isSorted(st.arr) {
		t.Errorf("final state not sorted: %v", st.arr)
	}
}

func TestRedrawSkipsBusyVariants(t *testing.T) {
	sink := newRecordingSink()
	gate := make(chan struct{})
	e := New(config.NewStore(config.Default()), sink, func(time.Duration) { <-gate })

	bubble := e.State(VariantBubble)
	bubble.arr = []int{2, 1}

	e.Start(VariantBubble)
	waitFor(t, func() bool { return sink.count(VariantBubble) > 0 }, "first frame")

	// A redraw must not read the array a parked run owns; the run's own
	// emits repaint that lane
	framesBefore := sink.count(VariantBubble)
	e.Redraw()
	if got := sink.count(VariantBubble); got != framesBefore {
		t.Errorf("redraw emitted %d frames for a busy variant", got-framesBefore)
	}
	for _, v := range Variants() {
		if v == VariantBubble {
			continue
		}
		if got := sink.count(v); got != 1 {
			t.Errorf("%s: got %d redraw frames, want 1", v, got)
		}
	}

	close(gate)
	waitFor(t, func() bool { return !bubble.Sorting() }, "run to complete")

	// Idle again, the lane is redrawn like the others
	e.Redraw()
	if got := sink.count(VariantBubble); got != framesBefore+1 {
		t.Errorf("idle lane not redrawn, frame count %d", got)
	}
}

func TestEmitAndResetReadConfigFresh(t *testing.T) {
	store := config.NewStore(config.Default())
	sink := newRecordingSink()

	var delays []time.Duration
	e := New(store, sink, func(d time.Duration) {
		delays = append(delays, d)
		store.Update(func(c *config.Config) { c.AnimationSpeedMs = 30 })
	})

	st := e.State(VariantBubble)
	st.arr = []int{3, 2, 1}
	e.Sort(VariantBubble)

	if len(delays) < 2 {
		t.Fatalf("got %d delays, want at least 2", len(delays))
	}
	if delays[0] != 100*time.Millisecond {
		t.Errorf("first delay = %v, want the configured 100ms", delays[0])
	}
	for i, d := range delays[1:] {
		if d != 30*time.Millisecond {
			t.Errorf("delay %d = %v, want the updated 30ms", i+1, d)
		}
	}

	// Generator bounds are likewise re-read at reset time
	store.Update(func(c *config.Config) {
		c.ArraySize = 7
		c.MinValue = 1
		c.MaxValue = 3
	})
	e.Reset(VariantBubble)
	if st.Size() != 7 {
		t.Fatalf("array length = %d after reset, want 7", st.Size())
	}
	for _, v := range st.arr {
		if v < 1 || v > 3 {
			t.Errorf("value %d outside updated bounds [1,3]", v)
		}
	}
}

func TestRedrawEmitsHighlightFreeFramePerVariant(t *testing.T) {
	e, sink := newTestEngine()
	e.Redraw()
	for _, v := range Variants() {
		frames := sink.get(v)
		if len(frames) != 1 {
			t.Fatalf("%s: got %d frames, want 1", v, len(frames))
		}
		if len(frames[0].highlight) != 0 {
			t.Errorf("%s: redraw frame has highlights", v)
		}
	}
}
