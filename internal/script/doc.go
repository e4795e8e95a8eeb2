// Package script replays a recorded sequence of browser events against an
// enhanced page.
//
// Scripts are YAML documents. Each step names an event, an optional CSS
// target and the offset at which it happens:
//
//	location: https://example.com/movies/
//	native_lazy_loading: false
//	steps:
//	  - at: 0ms
//	    event: scroll
//	    y: 450
//	  - at: 120ms
//	    event: click
//	    target: ".mobile-menu-toggle"
//
// Replay runs on a clock.Manual: before each step the clock is moved to the
// step's offset, firing any timers that fall due, so throttled and
// debounced handlers behave exactly as they would in real time.
package script
