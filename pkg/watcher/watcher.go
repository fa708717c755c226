// Package watcher monitors the walkthrough steps overlay file so edits show
// up in a running dv without a restart. fsnotify when available, with a
// polling fallback for filesystems that don't deliver events (network
// mounts, some containers).
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mboersen/divvy/pkg/debug"
)

// Defaults for debounce and the polling fallback.
const (
	DefaultDebounce     = 250 * time.Millisecond
	DefaultPollInterval = 2 * time.Second
)

// ErrAlreadyStarted is returned by Start on a running watcher.
var ErrAlreadyStarted = errors.New("watcher already started")

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period collapsing bursts of write events
// (editors often write a file several times per save).
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// Watcher monitors one file for changes.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool

	mu        sync.Mutex
	started   bool
	polling   bool
	fsWatcher *fsnotify.Watcher
	cancel    context.CancelFunc
	lastMtime time.Time
	lastSize  int64

	// changeCh carries one signal per debounced change. Capacity 1 and
	// non-blocking sends: a slow consumer coalesces further changes.
	changeCh chan struct{}
}

// New creates a watcher for path. The file does not have to exist yet;
// creation counts as a change.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:         abs,
		debounce:     DefaultDebounce,
		pollInterval: DefaultPollInterval,
		changeCh:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Changed returns the channel that receives after each debounced change.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// IsPolling reports whether the watcher runs in polling fallback mode.
func (w *Watcher) IsPolling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.snapshotStat()

	w.polling = w.forcePoll
	if !w.polling {
		// Watch the parent directory, not the file: atomic-rename saves
		// (vim, goland) replace the inode and a file watch goes stale.
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			if err := fsw.Add(filepath.Dir(w.path)); err != nil {
				fsw.Close()
				w.polling = true
			} else {
				w.fsWatcher = fsw
				go w.runFsnotify(ctx)
			}
		} else {
			w.polling = true
		}
	}
	if w.polling {
		debug.Log("watcher: polling %s every %v", w.path, w.pollInterval)
		go w.runPolling(ctx)
	}

	w.started = true
	return nil
}

// Stop stops watching. The change channel stays open so a consumer blocked
// on it is not woken with a spurious zero value.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.cancel()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}
	w.started = false
}

func (w *Watcher) runFsnotify(ctx context.Context) {
	// Capture channel references to avoid a race with Stop() setting
	// fsWatcher to nil.
	w.mu.Lock()
	if w.fsWatcher == nil {
		w.mu.Unlock()
		return
	}
	events := w.fsWatcher.Events
	errs := w.fsWatcher.Errors
	w.mu.Unlock()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			// Debounce: restart the quiet-period timer on every event.
			if timer == nil {
				timer = time.AfterFunc(w.debounce, w.notify)
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			debug.Log("watcher: fsnotify error on %s: %v", w.path, err)
		}
	}
}

func (w *Watcher) runPolling(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.statChanged() {
				w.notify()
			}
		}
	}
}

func (w *Watcher) notify() {
	debug.Log("watcher: %s changed", w.path)
	w.snapshotStat()
	select {
	case w.changeCh <- struct{}{}:
	default: // consumer hasn't drained the previous signal; coalesce
	}
}

func (w *Watcher) snapshotStat() {
	info, err := os.Stat(w.path)
	if err != nil {
		w.lastMtime, w.lastSize = time.Time{}, 0
		return
	}
	w.lastMtime, w.lastSize = info.ModTime(), info.Size()
}

func (w *Watcher) statChanged() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return !w.lastMtime.IsZero() || w.lastSize != 0
	}
	return !info.ModTime().Equal(w.lastMtime) || info.Size() != w.lastSize
}
