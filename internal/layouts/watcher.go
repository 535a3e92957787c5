package layouts

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/dpswitch/internal/model"
)

// ReloadCallback receives the result of reloading the layout file.
// On error cfg is nil and the caller should keep its previous layouts.
type ReloadCallback func(cfg *model.Config, err error)

// Watcher reloads the layout file when it changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	logger   *slog.Logger
	delay    time.Duration

	mu       sync.Mutex
	onReload ReloadCallback
	timer    *time.Timer
	done     chan struct{}
	running  bool
	stopped  bool
}

// NewWatcher creates a watcher for the layout file at path.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  watcher,
		filePath: path,
		logger:   logger,
		delay:    150 * time.Millisecond,
		done:     make(chan struct{}),
	}, nil
}

// SetReloadCallback sets the callback invoked after every reload attempt.
func (w *Watcher) SetReloadCallback(cb ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = cb
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return errors.New("layout watcher already stopped")
	}
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Editors often replace the file, so watch the directory.
	if err := w.watcher.Add(filepath.Dir(w.filePath)); err != nil {
		return err
	}

	go w.watch()
	w.logger.Debug("layout watcher started", "path", w.filePath)
	return nil
}

func (w *Watcher) watch() {
	filename := filepath.Base(w.filePath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if reloadOn(event.Op) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("layout watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// reloadOn reports whether an event on the layout file triggers a reload.
// Renaming the file away is followed by a Create when an editor saves via a
// temp file; the debounce folds both into one reload.
func reloadOn(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

// schedule coalesces bursts of events into a single reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Reset(w.delay)
		return
	}
	w.timer = time.AfterFunc(w.delay, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	cb := w.onReload
	running := w.running
	w.mu.Unlock()

	if !running {
		return
	}

	cfg, err := Load(w.filePath)
	if err != nil {
		w.logger.Warn("layout file changed but failed to load", "path", w.filePath, "error", err)
	} else {
		w.logger.Info("layout file reloaded", "path", w.filePath, "layouts", len(cfg.Layouts))
	}

	if cb != nil {
		cb(cfg, err)
	}
}

// Stop stops watching and releases the underlying watcher. It is safe to call
// after a failed Start or without Start.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.stopped = true
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.watcher.Close()
}
