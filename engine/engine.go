package engine

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/sortviz/config"
)

// Sink receives one render frame per order-changing mutation: the
// variant, its full array, and the indices just touched. A reset frame
// carries no highlight indices. Calls never return errors; any display
// failure is the sink's own concern.
type Sink interface {
	Frame(v Variant, arr []int, highlight ...int)
}

// DelayFunc suspends the calling run for at least d. Injected so tests
// can run without real pacing.
type DelayFunc func(d time.Duration)

// Chime plays one audible blip for a touched element value. May be nil.
type Chime interface {
	Blip(value int)
}

// Engine drives the five sorting variants. Each accepted start runs the
// algorithm to completion on the variant's own array, emitting a frame
// plus a pacing delay after every order-changing mutation. Variants are
// fully independent; the busy guard only prevents re-entrant starts and
// conflicting resets, never cancellation.
type Engine struct {
	cfg    *config.Store
	sink   Sink
	delay  DelayFunc
	chime  Chime
	log    *slog.Logger
	states [VariantCount]*State
}

// New creates an engine with a freshly generated array per variant. No
// frames are emitted until Redraw or an operation is invoked.
func New(cfg *config.Store, sink Sink, delay DelayFunc) *Engine {
	e := &Engine{
		cfg:   cfg,
		sink:  sink,
		delay: delay,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	snap := cfg.Snapshot()
	for _, v := range Variants() {
		e.states[v] = &State{
			variant: v,
			arr:     Generate(snap.ArraySize, snap.MinValue, snap.MaxValue),
		}
	}
	return e
}

// SetChime installs the sonifier.
func (e *Engine) SetChime(c Chime) {
	e.chime = c
}

// SetLogger installs the structured logger.
func (e *Engine) SetLogger(log *slog.Logger) {
	e.log = log
}

// State returns the record for v.
func (e *Engine) State(v Variant) *State {
	return e.states[v]
}

// Redraw emits one highlight-free frame per idle variant. Used for the
// initial paint and after a resize. Busy variants are skipped: their
// arrays must not be read while the run mutates them, and their own
// emits repaint the lane within one animation interval anyway.
func (e *Engine) Redraw() {
	for _, v := range Variants() {
		st := e.states[v]
		if st.Sorting() {
			continue
		}
		e.sink.Frame(v, st.arr)
	}
}

// Start launches the run in its own goroutine. A request for a busy
// variant is silently dropped, per the control contract. The guard is
// claimed before Start returns, so a Reset issued right afterward on
// the control goroutine deterministically sees the variant busy.
func (e *Engine) Start(v Variant) {
	st := e.states[v]
	if !st.begin() {
		e.log.Debug("start dropped, already sorting", "variant", v.String())
		return
	}
	go func() {
		defer st.end()
		e.run(v, st)
	}()
}

// Sort runs variant v to completion. It returns false without touching
// anything if a run is already active.
func (e *Engine) Sort(v Variant) bool {
	st := e.states[v]
	if !st.begin() {
		e.log.Debug("start dropped, already sorting", "variant", v.String())
		return false
	}
	defer st.end()
	e.run(v, st)
	return true
}

// run executes the algorithm body. The caller holds the busy guard.
func (e *Engine) run(v Variant, st *State) {
	runID := uuid.NewString()
	began := time.Now()
	before := st.steps.Load()
	e.log.Info("sort started", "variant", v.String(), "run_id", runID, "size", len(st.arr))

	switch v {
	case VariantBubble:
		e.bubbleSort(st)
	case VariantSelection:
		e.selectionSort(st)
	case VariantInsertion:
		e.insertionSort(st)
	case VariantQuick:
		e.quickSort(st, 0, len(st.arr)-1)
	case VariantMerge:
		e.mergeSort(st, 0, len(st.arr)-1)
	}

	e.log.Info("sort finished", "variant", v.String(), "run_id", runID,
		"frames", st.steps.Load()-before, "took", time.Since(began))
}

// Reset replaces the variant's array with a fresh one, zeroes the frame
// counter, and emits a highlight-free frame. While a run is active it is
// a no-op, not an error: the array must never be replaced mid-sort.
// Like Start, it is expected to be called from the control goroutine.
func (e *Engine) Reset(v Variant) bool {
	st := e.states[v]
	if st.sorting.Load() {
		e.log.Debug("reset dropped, sorting in progress", "variant", v.String())
		return false
	}
	snap := e.cfg.Snapshot()
	st.arr = Generate(snap.ArraySize, snap.MinValue, snap.MaxValue)
	st.steps.Store(0)
	e.sink.Frame(v, st.arr)
	return true
}

// emit publishes one frame for a mutation that just touched the given
// indices, then suspends for the configured interval. The interval is
// read fresh each time so runtime speed changes apply on the next frame.
func (e *Engine) emit(st *State, highlight ...int) {
	st.steps.Add(1)
	e.sink.Frame(st.variant, st.arr, highlight...)
	if e.chime != nil && len(highlight) > 0 {
		e.chime.Blip(st.arr[highlight[0]])
	}
	e.delay(e.cfg.Snapshot().AnimationInterval())
}
