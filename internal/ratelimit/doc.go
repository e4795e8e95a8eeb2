// Package ratelimit wraps handlers so that bursts of trigger events reach
// them at a bounded rate.
//
// Two disciplines are provided:
//
//   - Debouncer delays execution until the calls stop for a fixed quiet
//     period, then runs the handler once with the last call's argument.
//   - Throttler runs the first call of a burst immediately and drops every
//     call that arrives while its suppression window is open.
//
// Each dispatcher owns its state explicitly (timer handle, last argument,
// sequence number) and takes its timers from a clock.Clock, so the same
// dispatcher is driven by the wall clock in production and by a manual
// clock in tests and script replay.
//
// Thread-safety: all methods are safe for concurrent use. Handlers are
// never invoked while the dispatcher's lock is held.
package ratelimit
