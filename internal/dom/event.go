package dom

import (
	"sync"

	"github.com/google/uuid"
)

// Common event types.
const (
	EventClick            = "click"
	EventSubmit           = "submit"
	EventKeyDown          = "keydown"
	EventTouchStart       = "touchstart"
	EventTouchEnd         = "touchend"
	EventScroll           = "scroll"
	EventLoad             = "load"
	EventError            = "error"
	EventFocus            = "focus"
	EventDOMContentLoaded = "DOMContentLoaded"
)

// Event describes something that happened to a target.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Key is the key value for keyboard events ("Enter", " ", "a").
	Key string

	// Target is where the event was dispatched.
	Target EventTarget

	defaultPrevented bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// NewKeyEvent creates a keyboard event.
func NewKeyEvent(typ, key string) *Event {
	return &Event{Type: typ, Key: key}
}

// PreventDefault cancels the target's default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener handles a dispatched event.
type Listener func(ev *Event)

// EventTarget is anything listeners can be attached to.
type EventTarget interface {
	AddEventListener(typ string, fn Listener) Subscription
	DispatchEvent(ev *Event) bool
}

// Subscription is a registered listener.
type Subscription struct {
	// ID uniquely identifies the registration.
	ID uuid.UUID

	// Type is the event type listened for.
	Type string

	owner *Listeners
}

// Cancel removes the listener. Cancelling twice is a no-op.
func (s Subscription) Cancel() {
	if s.owner != nil {
		s.owner.remove(s.Type, s.ID)
	}
}

type listenerEntry struct {
	id uuid.UUID
	fn Listener
}

// Listeners is an ordered listener list per event type. The zero value is
// ready to use.
type Listeners struct {
	mu     sync.Mutex
	byType map[string][]listenerEntry
}

// Add registers fn for events of type typ.
func (l *Listeners) Add(typ string, fn Listener) Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.byType == nil {
		l.byType = make(map[string][]listenerEntry)
	}
	id := uuid.New()
	l.byType[typ] = append(l.byType[typ], listenerEntry{id: id, fn: fn})
	return Subscription{ID: id, Type: typ, owner: l}
}

// Count returns the number of listeners for typ.
func (l *Listeners) Count(typ string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byType[typ])
}

// Dispatch runs the listeners for ev.Type in registration order. Listeners
// added during dispatch do not run for this event.
func (l *Listeners) Dispatch(ev *Event) {
	l.mu.Lock()
	entries := append([]listenerEntry(nil), l.byType[ev.Type]...)
	l.mu.Unlock()

	for _, e := range entries {
		if !l.has(ev.Type, e.id) {
			continue // removed by an earlier listener
		}
		e.fn(ev)
	}
}

func (l *Listeners) has(typ string, id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.byType[typ] {
		if e.id == id {
			return true
		}
	}
	return false
}

func (l *Listeners) remove(typ string, id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.byType[typ]
	for i, e := range entries {
		if e.id == id {
			l.byType[typ] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}
