package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sortviz/engine"
)

// LaneInfo is the display data for one lane's label row. It is plain
// values gathered by the caller; the renderer does not read engine
// state itself.
type LaneInfo struct {
	Variant engine.Variant
	Steps   uint64
	Running bool
}

var (
	titleStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	labelStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	runningStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	helpStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const helpText = "1-5/j/k select  enter/s start  a start all  r reset  R reset all  +/- speed  m mute  q quit"

// Chrome repaints the title row, the lane labels, and the help bar.
func (r *BarRenderer) Chrome(lanes []LaneInfo, selected engine.Variant, speed time.Duration, muted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := fmt.Sprintf("speed %dms", speed.Milliseconds())
	if muted {
		status += "  muted"
	}
	r.putText(1, 0, "sortviz", titleStyle)
	r.putText(r.width-len(status)-1, 0, status, labelStyle)

	for _, lane := range lanes {
		style := labelStyle
		marker := "  "
		if lane.Variant == selected {
			style = selectedStyle
			marker = "▸ "
		}
		label := fmt.Sprintf("%s%d %-9s  steps %d", marker, int(lane.Variant)+1, lane.Variant.String(), lane.Steps)
		y := r.laneTop(lane.Variant)
		r.clearRow(y)
		r.putText(1, y, label, style)
		if lane.Running {
			r.putText(1+len([]rune(label))+2, y, "sorting", runningStyle)
		}
	}

	r.clearRow(r.height - 1)
	r.putText(1, r.height-1, helpText, helpStyle)

	r.screen.Show()
}

func (r *BarRenderer) putText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		if x+i < 0 || x+i >= r.width {
			continue
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *BarRenderer) clearRow(y int) {
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}
