package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a single templates file for changes and triggers
// debounced reloads.
//
// The watch is registered on the file's parent directory rather than
// the file itself: editors and config tooling typically replace files
// by rename, which drops an inode-level watch. Events are filtered to
// the target file name.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	file     string
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewFileWatcher creates a watcher for the given templates file.
func NewFileWatcher(path string, debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve templates path: %w", err)
	}

	return &FileWatcher{
		watcher:  w,
		dir:      filepath.Dir(abs),
		file:     filepath.Base(abs),
		debounce: NewDebouncer(debounce),
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks processing file events until ctx is cancelled or Stop
// is called, invoking onReload after each debounced change to the
// target file. Reload errors are logged and watching continues with
// the previous template set active.
func (fw *FileWatcher) Watch(ctx context.Context, onReload func() error) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		close(fw.doneCh)
	}()

	if err := fw.watcher.Add(fw.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fw.dir, err)
	}

	fw.logger.Info("templates watcher started",
		"file", filepath.Join(fw.dir, fw.file),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("templates watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("templates watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("templates file event",
				"path", event.Name,
				"op", event.Op.String(),
			)

			fw.debounce.Trigger(func() {
				if err := onReload(); err != nil {
					fw.logger.Error("template reload failed, previous set stays active",
						"error", err,
					)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("templates watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and cancels any pending reload.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		return fw.watcher.Close()
	}
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh

	fw.debounce.Stop()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// shouldProcessEvent filters directory events down to writes, creates,
// and renames of the target file.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != fw.file {
		return false
	}
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// Debouncer collapses rapid file events into one callback after a
// quiet period, preventing reload storms from editors that write in
// several bursts.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Trigger schedules the callback after the quiet period, replacing any
// pending callback.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
		}

		d.mu.Lock()
		cb := d.callback
		d.mu.Unlock()

		if cb != nil {
			cb()
		}
	})
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
