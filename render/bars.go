package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/sortviz/config"
	"github.com/lixenwraith/sortviz/engine"
)

// barChars provides 8-level sub-cell resolution for the fractional top
// of a bar column.
var barChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// BarRenderer draws one lane of value bars per variant on a tcell
// screen. Frames arrive from the run goroutines, chrome updates from the
// UI loop; a mutex serializes all screen access. The renderer holds no
// sorting state and never feeds back into the engine.
type BarRenderer struct {
	mu            sync.Mutex
	screen        tcell.Screen
	cfg           *config.Store
	width, height int
}

// NewBarRenderer wraps screen. The config store supplies the value range
// used for bar scaling.
func NewBarRenderer(screen tcell.Screen, cfg *config.Store) *BarRenderer {
	r := &BarRenderer{screen: screen, cfg: cfg}
	r.width, r.height = screen.Size()
	return r
}

// Resize re-reads the screen dimensions and clears for a full repaint.
func (r *BarRenderer) Resize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = r.screen.Size()
	r.screen.Clear()
}

// laneHeight is the rows available per lane: the screen minus the title
// and help rows, split evenly. Row one of each lane is its label; the
// rest is bar area.
func (r *BarRenderer) laneHeight() int {
	return (r.height - 2) / int(engine.VariantCount)
}

// laneTop returns the label row of variant v's lane.
func (r *BarRenderer) laneTop(v engine.Variant) int {
	return 1 + int(v)*r.laneHeight()
}

// Frame implements engine.Sink: it redraws the bar area of v's lane with
// the given array, coloring highlighted indices distinctly.
func (r *BarRenderer) Frame(v engine.Variant, arr []int, highlight ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	laneH := r.laneHeight()
	barRows := laneH - 1
	if barRows < 1 {
		return
	}

	snap := r.cfg.Snapshot()
	top := r.laneTop(v) + 1
	bottom := top + barRows - 1

	hi := make(map[int]bool, len(highlight))
	for _, idx := range highlight {
		hi[idx] = true
	}

	for x := 0; x < r.width-2; x++ {
		col := x + 1
		if x >= len(arr) {
			// Clear beyond the array (it may have shrunk on reset)
			for y := top; y <= bottom; y++ {
				r.screen.SetContent(col, y, ' ', nil, tcell.StyleDefault)
			}
			continue
		}

		norm := normalize(arr[x], snap.MinValue, snap.MaxValue)
		eighths := int(norm * float64(barRows*8))
		if eighths < 1 {
			eighths = 1
		}
		full := eighths / 8
		frac := eighths % 8

		style := barStyle(norm, hi[x])
		for y := bottom; y >= top; y-- {
			rows := bottom - y
			switch {
			case rows < full:
				r.screen.SetContent(col, y, '█', nil, style)
			case rows == full && frac > 0:
				r.screen.SetContent(col, y, barChars[frac-1], nil, style)
			default:
				r.screen.SetContent(col, y, ' ', nil, tcell.StyleDefault)
			}
		}
	}

	r.screen.Show()
}

// normalize maps value into [0,1] within the configured range.
func normalize(value, min, max int) float64 {
	span := max - min
	if span <= 0 {
		return 1
	}
	norm := float64(value-min) / float64(span)
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}

// barStyle maps a normalized value onto a cold-to-hot hue; highlighted
// bars render white and bold so a touched pair reads at a glance.
func barStyle(norm float64, highlighted bool) tcell.Style {
	if highlighted {
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	}
	c := colorful.Hsv(210-180*norm, 0.7, 0.9)
	cr, cg, cb := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
}
