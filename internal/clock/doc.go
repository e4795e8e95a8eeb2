// Package clock provides the timer capability used by pagekit.
//
// Components never call time.AfterFunc directly; they receive a Clock so the
// same code runs against the wall clock in the CLI and against a Manual clock
// during script replay and in tests. A Manual clock fires due timers
// synchronously on the goroutine that advances it, which reproduces the
// single-threaded event loop a page script normally runs on.
package clock
