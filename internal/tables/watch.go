package tables

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 400 * time.Millisecond

// Watcher reloads a Store when its table files change. Rapid successive
// writes collapse into one reload.
type Watcher struct {
	store  *Store
	logger *zap.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	started bool
	done    chan struct{}
}

// NewWatcher creates a watcher over the store's tables directory.
func NewWatcher(store *Store, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{store: store, logger: logger, done: make(chan struct{})}
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
// Starting a store without a tables directory is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	if w.store.dir == "" {
		return nil
	}
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := fsw.Add(w.store.dir); err != nil {
		_ = fsw.Close()
		w.mu.Unlock()
		return err
	}
	w.watcher = fsw
	w.started = true
	w.mu.Unlock()

	w.logger.Debug("table watcher started", zap.String("dir", w.store.dir))
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("table watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Remove) {
		return
	}
	name := filepath.Base(ev.Name)
	if name != TaxonomyFile && name != LocationsFile {
		return
	}
	w.logger.Debug("table file changed", zap.String("op", ev.Op.String()), zap.String("file", name))

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, func() {
		if err := w.store.Reload(); err != nil {
			w.logger.Warn("table reload failed, keeping previous tables", zap.Error(err))
			return
		}
		w.logger.Info("tables reloaded")
	})
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started || w.watcher == nil {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	close(w.done)
}
