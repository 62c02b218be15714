package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/sortviz/constant"
)

// Watcher reloads a config file into a Store when it changes on disk.
// Rapid successive writes are debounced so a file mid-save is not parsed.
// An invalid file keeps the previous snapshot. File keys are applied
// over the current snapshot, so runtime mutations of keys the file does
// not set (speed, mute) survive a reload.
type Watcher struct {
	path     string
	store    *Store
	log      *slog.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Watch starts watching path and applying reloads to store.
func Watch(path string, store *Store, log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors and atomic writers
	// replace the file, which drops a direct watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		store:    store,
		log:      log,
		fsw:      fsw,
		debounce: constant.ConfigReloadDebounce,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Stop ends the watch. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watch error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := loadOver(w.store.Snapshot(), w.path)
	if err != nil {
		w.log.Warn("config reload rejected", "path", w.path, "error", err)
		return
	}
	w.store.Replace(cfg)
	w.log.Info("config reloaded", "path", w.path,
		"array_size", cfg.ArraySize, "animation_speed_ms", cfg.AnimationSpeedMs)
}
