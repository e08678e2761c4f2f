package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/multicursor/internal/log"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc receives the settings after a reload, or the error that kept
// the previous settings in place.
type ChangeFunc func(Settings, error)

// Watcher reloads a Config when its settings file changes.
//
// The file's directory is watched rather than the file itself so that
// editors which save by rename are seen.
type Watcher struct {
	cfg      *Config
	onChange ChangeFunc
	delay    time.Duration
}

// NewWatcher creates a watcher for cfg. delay <= 0 uses DefaultDebounce.
func NewWatcher(cfg *Config, delay time.Duration, onChange ChangeFunc) *Watcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Watcher{cfg: cfg, onChange: onChange, delay: delay}
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	path := w.cfg.Path()
	if path == "" {
		return ErrNoPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(w.delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			// Coalesce bursts of writes into one reload.
			timer.Reset(w.delay)

		case <-timer.C:
			w.reload(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.ErrorErr(log.CatConfig, "watcher error", err, "path", abs)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	err := w.cfg.Load(ctx)
	if err == nil {
		log.Info(log.CatConfig, "settings reloaded", "path", w.cfg.Path())
	}
	if w.onChange != nil {
		w.onChange(w.cfg.Settings(), err)
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
