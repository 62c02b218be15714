package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sortviz/app"
	"github.com/lixenwraith/sortviz/audio"
	"github.com/lixenwraith/sortviz/config"
	"github.com/lixenwraith/sortviz/engine"
	"github.com/lixenwraith/sortviz/render"
)

var (
	configFlag = flag.String("config", "sortviz.yaml", "Config file path (YAML, hot-reloaded)")
	sizeFlag   = flag.Int("size", 0, "Array size override")
	minFlag    = flag.Int("min", 0, "Minimum value override")
	maxFlag    = flag.Int("max", 0, "Maximum value override")
	speedFlag  = flag.Int("speed", 0, "Animation interval override in milliseconds")
	muteFlag   = flag.Bool("mute", false, "Start muted")
	logFlag    = flag.String("log", "", "Debug log file path")
)

func main() {
	flag.Parse()

	logger, closeLog, err := newLogger(*logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}
	store := config.NewStore(cfg)

	watcher, err := config.Watch(*configFlag, store, logger)
	if err != nil {
		// Hot reload is a convenience, run without it
		logger.Warn("config watch unavailable", "error", err)
	} else {
		defer watcher.Stop()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Restore the terminal before printing a crash, or the stack trace
	// is unreadable in the alternate screen
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nSORTVIZ CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	renderer := render.NewBarRenderer(screen, store)
	eng := engine.New(store, renderer, time.Sleep)
	eng.SetLogger(logger)

	sonifier := audio.NewSonifier(store)
	if err := sonifier.Initialize(); err != nil {
		// Non-fatal, the visualizer runs silently
		logger.Warn("audio initialization failed", "error", err)
	} else {
		eng.SetChime(sonifier)
		defer sonifier.Close()
	}

	app.New(screen, eng, renderer, store, logger).Run()
}

// applyFlagOverrides copies explicitly set flags over the file config.
func applyFlagOverrides(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.ArraySize = *sizeFlag
		case "min":
			cfg.MinValue = *minFlag
		case "max":
			cfg.MaxValue = *maxFlag
		case "speed":
			cfg.AnimationSpeedMs = *speedFlag
		case "mute":
			cfg.Muted = *muteFlag
		}
	})
}

// newLogger builds a file-backed slog logger, or a discard logger when
// no path is given. A fullscreen TUI cannot log to stdout.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
