package browser

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pagekit/internal/clock"
	"github.com/dshills/pagekit/internal/dom"
)

// DefaultLocation is used when no location is configured.
const DefaultLocation = "http://localhost/"

// ScrollBehavior mirrors the behavior option of scrollTo and scrollIntoView.
type ScrollBehavior string

const (
	// ScrollAuto jumps immediately.
	ScrollAuto ScrollBehavior = "auto"
	// ScrollSmooth animates the scroll.
	ScrollSmooth ScrollBehavior = "smooth"
)

// ScrollRequest records one programmatic scroll.
type ScrollRequest struct {
	// Top is the requested offset for window scrolls.
	Top int

	// Target is the element scrolled into view, nil for window scrolls.
	Target *dom.Element

	// Block is the scrollIntoView alignment ("start" by default).
	Block string

	Behavior ScrollBehavior
	At       time.Time
}

// PerformanceTiming holds the navigation timing marks the page reads.
type PerformanceTiming struct {
	NavigationStart time.Time
	LoadEventEnd    time.Time
}

// LoadTime returns LoadEventEnd - NavigationStart.
func (p PerformanceTiming) LoadTime() time.Duration {
	return p.LoadEventEnd.Sub(p.NavigationStart)
}

// Window is the page's global object.
type Window struct {
	doc       *dom.Document
	clock     clock.Clock
	log       zerolog.Logger
	listeners dom.Listeners

	location    *url.URL
	navigations []string

	scrollY int
	scrolls []ScrollRequest

	timing     PerformanceTiming
	hasTiming  bool
	nativeLazy bool
	observers  []*IntersectionObserver
}

// Option configures a Window.
type Option func(*Window) error

// WithLocation sets the initial location.
func WithLocation(href string) Option {
	return func(w *Window) error {
		u, err := url.Parse(href)
		if err != nil {
			return fmt.Errorf("parsing location %q: %w", href, err)
		}
		w.location = u
		return nil
	}
}

// WithClock sets the clock used for timing marks.
func WithClock(c clock.Clock) Option {
	return func(w *Window) error {
		w.clock = c
		return nil
	}
}

// WithLogger sets the logger for failures in default actions.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Window) error {
		w.log = log
		return nil
	}
}

// WithNativeLazyLoading sets whether img loading="lazy" is handled natively.
func WithNativeLazyLoading(supported bool) Option {
	return func(w *Window) error {
		w.nativeLazy = supported
		return nil
	}
}

// WithPerformanceTiming sets whether the performance timing API is available.
func WithPerformanceTiming(available bool) Option {
	return func(w *Window) error {
		w.hasTiming = available
		return nil
	}
}

// NewWindow creates a window for doc. By default the location is
// DefaultLocation, the clock is real, native lazy loading is supported and
// performance timing is available.
func NewWindow(doc *dom.Document, opts ...Option) (*Window, error) {
	w := &Window{
		doc:        doc,
		clock:      clock.Real(),
		log:        zerolog.Nop(),
		nativeLazy: true,
		hasTiming:  true,
	}
	w.location, _ = url.Parse(DefaultLocation)

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	w.timing.NavigationStart = w.clock.Now()
	doc.OnDefault(w.followLink)
	return w, nil
}

// Document returns the window's document.
func (w *Window) Document() *dom.Document {
	return w.doc
}

// Clock returns the window's clock.
func (w *Window) Clock() clock.Clock {
	return w.clock
}

// AddEventListener registers a window-level listener.
func (w *Window) AddEventListener(typ string, fn dom.Listener) dom.Subscription {
	return w.listeners.Add(typ, fn)
}

// DispatchEvent delivers ev to the window's listeners.
func (w *Window) DispatchEvent(ev *dom.Event) bool {
	ev.Target = w
	w.listeners.Dispatch(ev)
	return !ev.DefaultPrevented()
}

// ListenerCount returns the number of window listeners for typ.
func (w *Window) ListenerCount(typ string) int {
	return w.listeners.Count(typ)
}

// ScrollY returns the vertical scroll offset (pageYOffset).
func (w *Window) ScrollY() int {
	return w.scrollY
}

// SetScrollY moves the viewport as a user scroll would and dispatches scroll.
func (w *Window) SetScrollY(y int) {
	if y < 0 {
		y = 0
	}
	w.scrollY = y
	w.DispatchEvent(dom.NewEvent(dom.EventScroll))
}

// ScrollTo scrolls the window to top and dispatches scroll.
func (w *Window) ScrollTo(top int, behavior ScrollBehavior) {
	w.scrolls = append(w.scrolls, ScrollRequest{
		Top:      top,
		Behavior: behavior,
		At:       w.clock.Now(),
	})
	w.SetScrollY(top)
}

// ScrollIntoView records a request to bring el into view.
func (w *Window) ScrollIntoView(el *dom.Element, behavior ScrollBehavior, block string) {
	if block == "" {
		block = "start"
	}
	w.scrolls = append(w.scrolls, ScrollRequest{
		Target:   el,
		Block:    block,
		Behavior: behavior,
		At:       w.clock.Now(),
	})
}

// Scrolls returns every programmatic scroll so far.
func (w *Window) Scrolls() []ScrollRequest {
	return append([]ScrollRequest(nil), w.scrolls...)
}

// LastScroll returns the most recent scroll request.
func (w *Window) LastScroll() (ScrollRequest, bool) {
	if len(w.scrolls) == 0 {
		return ScrollRequest{}, false
	}
	return w.scrolls[len(w.scrolls)-1], true
}

// Location returns the current location.
func (w *Window) Location() *url.URL {
	u := *w.location
	return &u
}

// Pathname returns location.pathname.
func (w *Window) Pathname() string {
	if w.location.Path == "" {
		return "/"
	}
	return w.location.Path
}

// Navigate resolves href against the current location, moves there and
// records the navigation.
func (w *Window) Navigate(href string) error {
	ref, err := url.Parse(href)
	if err != nil {
		return fmt.Errorf("parsing href %q: %w", href, err)
	}
	w.location = w.location.ResolveReference(ref)
	w.navigations = append(w.navigations, w.location.String())
	return nil
}

// Navigations returns every URL navigated to, in order.
func (w *Window) Navigations() []string {
	return append([]string(nil), w.navigations...)
}

// SupportsNativeLazyLoading reports whether img loading="lazy" is native.
func (w *Window) SupportsNativeLazyLoading() bool {
	return w.nativeLazy
}

// Performance returns the timing marks and whether timing is available.
func (w *Window) Performance() (PerformanceTiming, bool) {
	return w.timing, w.hasTiming
}

// DOMContentLoaded dispatches DOMContentLoaded on the document.
func (w *Window) DOMContentLoaded() {
	w.doc.DispatchEvent(dom.NewEvent(dom.EventDOMContentLoaded))
}

// Load records the load event end and dispatches load on the window.
func (w *Window) Load() {
	w.timing.LoadEventEnd = w.clock.Now()
	w.DispatchEvent(dom.NewEvent(dom.EventLoad))
}

// followLink is the default action for clicks on links.
func (w *Window) followLink(ev *dom.Event) {
	if ev.Type != dom.EventClick {
		return
	}
	el, ok := ev.Target.(*dom.Element)
	if !ok || el.Tag() != "a" || !el.HasAttr("href") {
		return
	}
	href := el.Attr("href")

	if frag, ok := strings.CutPrefix(href, "#"); ok {
		if frag != "" {
			if target := w.doc.ByID(frag); target != nil {
				w.ScrollIntoView(target, ScrollAuto, "start")
			}
		}
		w.location.Fragment = frag
		return
	}
	if err := w.Navigate(href); err != nil {
		w.log.Warn().Err(err).Str("href", href).Msg("link not followed")
	}
}
