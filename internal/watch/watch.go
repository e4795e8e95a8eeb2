// Package watch reruns work when input files change.
//
// Editors tend to save a file as a burst of write, chmod and rename events.
// The watcher coalesces each burst with a ratelimit.Debouncer and reports
// the last changed path once the files have been quiet for the configured
// delay. Change callbacks run on the goroutine that called Run.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dshills/pagekit/internal/clock"
	"github.com/dshills/pagekit/internal/ratelimit"
)

// ErrClosed is returned when adding paths to a closed watcher.
var ErrClosed = errors.New("watcher is closed")

// Watcher watches a set of files.
type Watcher struct {
	fsw     *fsnotify.Watcher
	pending *ratelimit.Debouncer[string]
	ready   chan string
	log     zerolog.Logger

	mu     sync.Mutex
	files  map[string]bool
	dirs   map[string]bool
	closed bool
}

// New creates a watcher that reports a change once no further change has
// arrived for delay.
func New(c clock.Clock, delay time.Duration, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:   fsw,
		ready: make(chan string, 1),
		log:   log,
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}
	w.pending = ratelimit.NewDebouncer(c, delay, w.signal)
	return w, nil
}

// Add starts watching the file at path. The containing directory is
// watched so that files replaced by rename are still tracked.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	w.log.Debug().Str("path", abs).Msg("watching")
	return nil
}

// Run delivers debounced changes to onChange until ctx is cancelled or the
// watcher is closed. A change still pending at Close is delivered before
// Run returns; one pending at cancellation is dropped.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	errs := w.fsw.Errors
	for {
		select {
		case <-ctx.Done():
			w.pending.Stop()
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				if w.pending.Flush() {
					onChange(<-w.ready)
				}
				return nil
			}
			w.handle(ev)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.log.Warn().Err(err).Msg("watch error")

		case path := <-w.ready:
			onChange(path)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	return w.fsw.Close()
}

// handle feeds relevant file events into the debouncer.
func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	name := filepath.Clean(ev.Name)

	w.mu.Lock()
	tracked := w.files[name]
	w.mu.Unlock()
	if !tracked {
		return
	}

	w.log.Debug().Str("path", name).Str("op", ev.Op.String()).Msg("change")
	w.pending.Call(name)
}

// signal hands a settled change to Run without blocking the timer.
func (w *Watcher) signal(path string) {
	select {
	case w.ready <- path:
	default:
		// A change is already queued; Run rereads every file anyway.
	}
}
