package manifest

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/log"
)

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reapplies a manifest whenever its file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   domain.Logger
	apply    func() error
}

// NewWatcher returns a watcher that calls Apply(target, path, handlers) on
// every settled change.
func NewWatcher(target Target, path string, handlers Handlers, logger domain.Logger) *Watcher {
	if logger == nil {
		logger = log.NopLogger{}
	}
	w := &Watcher{path: filepath.Clean(path), debounce: DefaultDebounce, logger: logger}
	w.apply = func() error {
		n, err := Apply(target, w.path, handlers)
		if err == nil {
			w.logger.Info("manifest %s: loaded %d command(s)", w.path, n)
		}
		return err
	}
	return w
}

// SetDebounce changes the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches the manifest's directory until ctx is done. The directory is
// watched rather than the file so editors that replace the file on save
// keep triggering reloads. A failed reload is logged and the previous
// commands stay active.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("manifest watcher: %v", err)

		case <-timer.C:
			if err := w.apply(); err != nil {
				w.logger.Error("manifest reload failed: %v", err)
			}
		}
	}
}
