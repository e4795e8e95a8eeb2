// Package dom provides the document query, mutation and event-registration
// capabilities that page enhancements are written against.
//
// A Document wraps a golang.org/x/net/html node tree. Elements are thin
// handles onto nodes; two handles for the same node share attributes and
// listeners. Selectors are CSS selectors compiled with cascadia.
//
// # Events
//
// Listeners are registered per target and event type and run in
// registration order. Events are delivered to their target only (there is
// no capture or bubbling phase). After the listeners run, the document's
// default action, if one is installed, runs unless a listener called
// PreventDefault:
//
//	doc.OnDefault(func(ev *dom.Event) {
//	    if ev.Type == "click" { ... follow the link ... }
//	})
//
// The document is not safe for concurrent mutation. Listener registration
// is guarded so subscriptions may be cancelled from timer goroutines.
package dom
