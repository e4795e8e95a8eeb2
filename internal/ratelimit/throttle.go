package ratelimit

import (
	"sync"
	"time"

	"github.com/dshills/pagekit/internal/clock"
)

// Throttler runs its handler at most once per interval. The first call in an
// idle period runs synchronously and opens a suppression window; calls that
// arrive while the window is open are dropped, not queued.
type Throttler[T any] struct {
	mu     sync.Mutex
	clock  clock.Clock
	limit  time.Duration
	fn     func(T)
	active bool
	timer  clock.Timer
	seq    uint64
}

// NewThrottler creates a throttler with the given suppression window.
// A negative limit is treated as zero.
func NewThrottler[T any](c clock.Clock, limit time.Duration, fn func(T)) *Throttler[T] {
	if limit < 0 {
		limit = 0
	}
	return &Throttler[T]{
		clock: c,
		limit: limit,
		fn:    fn,
	}
}

// Throttle returns a function that forwards to fn under the throttle
// discipline.
func Throttle[T any](c clock.Clock, limit time.Duration, fn func(T)) func(T) {
	t := NewThrottler(c, limit, fn)
	return func(arg T) {
		t.Call(arg)
	}
}

// Call runs the handler with arg if no window is open and reports whether
// it ran. If the handler panics the window is closed again and the panic
// propagates to the caller.
func (t *Throttler[T]) Call(arg T) bool {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return false
	}
	t.active = true
	t.seq++
	currentSeq := t.seq
	t.timer = t.clock.AfterFunc(t.limit, func() {
		t.reopen(currentSeq)
	})
	t.mu.Unlock()

	completed := false
	defer func() {
		if !completed {
			t.reopen(currentSeq)
		}
	}()
	t.fn(arg)
	completed = true
	return true
}

// reopen returns the throttler to idle if seq still identifies the open window.
func (t *Throttler[T]) reopen(seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active || t.seq != seq {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.active = false
}

// Active reports whether a suppression window is open.
func (t *Throttler[T]) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Stop closes any open window and cancels its timer.
func (t *Throttler[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	t.active = false
}
