package browser

import "github.com/dshills/pagekit/internal/dom"

// IntersectionEntry reports a visibility change for one observed element.
type IntersectionEntry struct {
	Target         *dom.Element
	IsIntersecting bool
}

// IntersectionCallback receives entries for an observer.
type IntersectionCallback func(entries []IntersectionEntry, observer *IntersectionObserver)

// IntersectionObserver notifies its callback when observed elements enter
// the viewport.
type IntersectionObserver struct {
	win      *Window
	callback IntersectionCallback
	targets  []*dom.Element
}

// NewIntersectionObserver creates an observer bound to w.
func (w *Window) NewIntersectionObserver(cb IntersectionCallback) *IntersectionObserver {
	o := &IntersectionObserver{win: w, callback: cb}
	w.observers = append(w.observers, o)
	return o
}

// Observe starts watching el.
func (o *IntersectionObserver) Observe(el *dom.Element) {
	if o.observing(el) {
		return
	}
	o.targets = append(o.targets, el)
}

// Unobserve stops watching el.
func (o *IntersectionObserver) Unobserve(el *dom.Element) {
	for i, t := range o.targets {
		if t.Is(el) {
			o.targets = append(o.targets[:i], o.targets[i+1:]...)
			return
		}
	}
}

// Disconnect stops watching every element and detaches the observer from
// its window.
func (o *IntersectionObserver) Disconnect() {
	o.targets = nil
	for i, other := range o.win.observers {
		if other == o {
			o.win.observers = append(o.win.observers[:i:i], o.win.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the number of observers attached to w.
func (w *Window) Observers() int {
	return len(w.observers)
}

// Observed returns the number of watched elements.
func (o *IntersectionObserver) Observed() int {
	return len(o.targets)
}

func (o *IntersectionObserver) observing(el *dom.Element) bool {
	for _, t := range o.targets {
		if t.Is(el) {
			return true
		}
	}
	return false
}

// Intersect reports el as having entered the viewport to every observer
// watching it. It returns the number of observers notified.
func (w *Window) Intersect(el *dom.Element) int {
	notified := 0
	for _, o := range append([]*IntersectionObserver(nil), w.observers...) {
		if !o.observing(el) {
			continue
		}
		o.callback([]IntersectionEntry{{Target: el, IsIntersecting: true}}, o)
		notified++
	}
	return notified
}
