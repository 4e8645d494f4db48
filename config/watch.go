package config

import (
	"log/slog"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration when its file changes and publishes the
// current snapshot through an atomic pointer. Readers call Current on every
// access and never see a partially-applied configuration.
type Watcher struct {
	path     string
	cur      atomic.Pointer[Config]
	fw       *fsnotify.Watcher
	onReload func(*Config)
	logger   *slog.Logger
	done     chan struct{}
}

// Watch starts watching path. initial becomes the first snapshot; onReload
// (optional) runs after every successful reload. A reload that fails to
// parse or validate keeps the previous snapshot and logs a warning.
func Watch(path string, initial *Config, logger *slog.Logger, onReload func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		fw:       fw,
		onReload: onReload,
		logger:   logger,
		done:     make(chan struct{}),
	}
	w.cur.Store(initial)
	go w.loop()
	return w, nil
}

// Current returns the latest configuration snapshot.
func (w *Watcher) Current() *Config {
	return w.cur.Load()
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				if w.logger != nil {
					w.logger.Warn("config reload failed, keeping previous",
						slog.String("path", w.path), slog.Any("error", err))
				}
				continue
			}
			w.cur.Store(cfg)
			if w.logger != nil {
				w.logger.Info("config reloaded", slog.String("path", w.path))
			}
			if w.onReload != nil {
				w.onReload(cfg)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("config watcher error", slog.Any("error", err))
			}
		case <-w.done:
			return
		}
	}
}
