package ratelimit

import (
	"sync"
	"time"

	"github.com/dshills/pagekit/internal/clock"
)

// Debouncer forwards only the last of a burst of calls to its handler, once
// no further call has arrived for the wait duration.
type Debouncer[T any] struct {
	mu      sync.Mutex
	clock   clock.Clock
	wait    time.Duration
	fn      func(T)
	timer   clock.Timer
	args    T
	pending bool
	seq     uint64 // detects stale timer callbacks
}

// NewDebouncer creates a debouncer that runs fn after wait has elapsed with
// no further calls. A negative wait is treated as zero.
func NewDebouncer[T any](c clock.Clock, wait time.Duration, fn func(T)) *Debouncer[T] {
	if wait < 0 {
		wait = 0
	}
	return &Debouncer[T]{
		clock: c,
		wait:  wait,
		fn:    fn,
	}
}

// Debounce returns a function that forwards to fn under the debounce
// discipline.
func Debounce[T any](c clock.Clock, wait time.Duration, fn func(T)) func(T) {
	return NewDebouncer(c, wait, fn).Call
}

// Call records arg as the latest argument and restarts the quiet period.
// Any previously scheduled execution is cancelled.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.args = arg
	d.pending = true
	d.seq++
	currentSeq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.wait, func() {
		d.fire(currentSeq)
	})
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	// A Stop between the timer firing and acquiring the lock bumps seq.
	if !d.pending || d.seq != seq {
		d.mu.Unlock()
		return
	}
	args := d.takeLocked()
	d.mu.Unlock()

	d.fn(args)
}

// Flush runs a pending execution immediately instead of waiting for the
// quiet period. It reports whether anything was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	if !d.pending {
		d.timer = nil
		d.mu.Unlock()
		return false
	}
	args := d.takeLocked()
	d.mu.Unlock()

	d.fn(args)
	return true
}

// Stop cancels any pending execution.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	d.takeLocked()
}

// Pending reports whether an execution is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// takeLocked clears the pending state and returns the held argument (must hold lock).
func (d *Debouncer[T]) takeLocked() T {
	args := d.args
	var zero T
	d.args = zero
	d.pending = false
	d.timer = nil
	return args
}
