// Package watch reports writes to the notes database made by other
// processes, such as "stickies add" run while the board is open.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay coalesces the burst of events a single sqlite commit produces.
const DefaultDelay = 100 * time.Millisecond

// sqlite writes to the main file, the WAL or the rollback journal.
var fileSuffixes = []string{"", "-wal", "-journal"}

// Watcher calls onChange after writes to one file settle.
type Watcher struct {
	path     string
	delay    time.Duration
	onChange func()
	logger   *slog.Logger

	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a Watcher for path. Call Start to begin watching.
func New(path string, delay time.Duration, onChange func(), logger *slog.Logger) *Watcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Watcher{
		path:     filepath.Clean(path),
		delay:    delay,
		onChange: onChange,
		logger:   logger,
	}
}

// Start watches the file's directory until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	if w.watcher != nil {
		return fmt.Errorf("watcher already started")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.watcher = watcher
	w.debouncer = newDebouncer(w.delay)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(runCtx)
	return nil
}

// Close stops watching and waits for the event loop and any running
// callback to return. No callback runs after Close returns, so onChange
// must not block on anything Close's caller holds.
func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	w.cancel()
	<-w.done
	w.debouncer.stopAndWait()
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debug("store changed", "name", event.Name, "op", event.Op.String())
			w.debouncer.trigger(w.onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Error("fsnotify error", "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Clean(event.Name)
	for _, suffix := range fileSuffixes {
		if name == w.path+suffix {
			return true
		}
	}
	return false
}

func (w *Watcher) debug(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Debug(msg, args...)
	}
}

// debouncer runs the last triggered func once no trigger arrived for delay.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
	running sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()
		fn()
	})
}

// stopAndWait cancels a pending call and waits for one already running.
func (d *debouncer) stopAndWait() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.running.Wait()
}
