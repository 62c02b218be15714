package app

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sortviz/config"
	"github.com/lixenwraith/sortviz/constant"
	"github.com/lixenwraith/sortviz/engine"
	"github.com/lixenwraith/sortviz/render"
)

// App owns the UI loop: it dispatches key events to engine operations
// and redraws the chrome on a fixed tick. All start/reset requests pass
// through here, so control traffic is single-threaded; busy rejections
// inside the engine are silent and nothing is queued.
type App struct {
	screen   tcell.Screen
	engine   *engine.Engine
	renderer *render.BarRenderer
	cfg      *config.Store
	log      *slog.Logger
	selected engine.Variant
}

// New wires the app together.
func New(screen tcell.Screen, eng *engine.Engine, renderer *render.BarRenderer, cfg *config.Store, log *slog.Logger) *App {
	return &App{
		screen:   screen,
		engine:   eng,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
	}
}

// Run paints the initial state and blocks until quit.
func (a *App) Run() {
	a.engine.Redraw()
	a.drawChrome()

	ticker := time.NewTicker(constant.ChromeTickInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.drawChrome()
		}
	}
}

// handleEvent returns false when the app should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			a.engine.Start(a.selected)
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		a.screen.Sync()
		a.renderer.Resize()
		a.engine.Redraw()
		a.drawChrome()
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false

	case '1', '2', '3', '4', '5':
		a.selected = engine.Variant(r - '1')

	case 'j':
		if a.selected < engine.VariantCount-1 {
			a.selected++
		}
	case 'k':
		if a.selected > 0 {
			a.selected--
		}

	case 's':
		a.engine.Start(a.selected)
	case 'a':
		for _, v := range engine.Variants() {
			a.engine.Start(v)
		}

	case 'r':
		a.engine.Reset(a.selected)
	case 'R':
		for _, v := range engine.Variants() {
			a.engine.Reset(v)
		}

	case '+', '=':
		a.adjustSpeed(-constant.AnimationIntervalStep)
	case '-', '_':
		a.adjustSpeed(constant.AnimationIntervalStep)

	case 'm':
		a.cfg.Update(func(c *config.Config) {
			c.Muted = !c.Muted
		})
	}
	return true
}

// adjustSpeed shifts the animation interval by delta, clamped to the
// supported range. Running sorts pick the new value up on their next
// frame.
func (a *App) adjustSpeed(delta time.Duration) {
	a.cfg.Update(func(c *config.Config) {
		d := time.Duration(c.AnimationSpeedMs)*time.Millisecond + delta
		if d < constant.MinAnimationInterval {
			d = constant.MinAnimationInterval
		}
		if d > constant.MaxAnimationInterval {
			d = constant.MaxAnimationInterval
		}
		c.AnimationSpeedMs = int(d / time.Millisecond)
	})
}

func (a *App) drawChrome() {
	lanes := make([]render.LaneInfo, 0, engine.VariantCount)
	for _, v := range engine.Variants() {
		st := a.engine.State(v)
		lanes = append(lanes, render.LaneInfo{
			Variant: v,
			Steps:   st.Steps(),
			Running: st.Sorting(),
		})
	}
	snap := a.cfg.Snapshot()
	a.renderer.Chrome(lanes, a.selected, snap.AnimationInterval(), snap.Muted)
}
