package enhance

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pagekit/internal/browser"
	"github.com/dshills/pagekit/internal/clock"
	"github.com/dshills/pagekit/internal/dom"
	"github.com/dshills/pagekit/internal/ratelimit"
)

// Feature names reported by Page.Features.
const (
	FeatureMobileMenu  = "mobile-menu"
	FeatureScrollToTop = "scroll-to-top"
	FeatureSearch      = "search"
	FeatureLazyLoad    = "lazy-load-fallback"
	FeatureGrid        = "grid-items"
	FeatureAnchors     = "smooth-anchors"
	FeatureActiveNav   = "active-nav"
	FeatureImageStates = "image-states"
	FeaturePagination  = "pagination"
	FeatureLoadTiming  = "load-timing"
	FeatureSkipLink    = "skip-link"
	FeatureDOMReady    = "dom-ready"
)

// Env holds the capabilities a page is enhanced with.
type Env struct {
	Doc    *dom.Document
	Window *browser.Window
	// Clock drives rate-limited handlers. Defaults to the window's clock.
	Clock clock.Clock
}

// Options tunes the behaviors.
type Options struct {
	// ScrollThreshold is the offset past which the scroll-to-top button shows.
	ScrollThreshold int
	// ScrollThrottle bounds how often the scroll handler runs.
	ScrollThrottle time.Duration
	// SearchURLTemplate receives the escaped search term through %s.
	SearchURLTemplate string
	// ForceLazyFallback attaches the lazy-load fallback even when the
	// window supports native lazy loading.
	ForceLazyFallback bool
	// SiteName is used in the DOM-ready log line.
	SiteName string
}

// DefaultOptions returns the stock behavior settings.
func DefaultOptions() Options {
	return Options{
		ScrollThreshold:   300,
		ScrollThrottle:    100 * time.Millisecond,
		SearchURLTemplate: "/?s=%s",
	}
}

// Page is an enhanced document. It owns every listener it attached.
type Page struct {
	env      Env
	opts     Options
	log      zerolog.Logger
	subs     []dom.Subscription
	features []string

	scroll       *ratelimit.Throttler[*dom.Event]
	scrollSettle *ratelimit.Debouncer[*dom.Event]
	observer *browser.IntersectionObserver
}

// Init attaches every applicable behavior and returns the enhanced page.
func Init(env Env, opts Options, log zerolog.Logger) *Page {
	if env.Clock == nil {
		env.Clock = env.Window.Clock()
	}
	p := &Page{
		env:  env,
		opts: opts,
		log:  log,
	}

	binders := []struct {
		name string
		bind func() bool
	}{
		{FeatureMobileMenu, p.bindMobileMenu},
		{FeatureScrollToTop, p.bindScrollToTop},
		{FeatureSearch, p.bindSearch},
		{FeatureLazyLoad, p.bindLazyLoad},
		{FeatureGrid, p.bindGridItems},
		{FeatureAnchors, p.bindSmoothAnchors},
		{FeatureActiveNav, p.bindActiveNav},
		{FeatureImageStates, p.bindImageStates},
		{FeaturePagination, p.bindPagination},
		{FeatureLoadTiming, p.bindLoadTiming},
		{FeatureSkipLink, p.bindSkipLink},
		{FeatureDOMReady, p.bindDOMReady},
	}
	for _, b := range binders {
		if !b.bind() {
			p.log.Debug().Str("feature", b.name).Msg("not applicable")
			continue
		}
		p.features = append(p.features, b.name)
	}

	p.log.Info().Strs("features", p.features).Msg("page enhanced")
	return p
}

// Features returns the names of the attached behaviors in attach order.
func (p *Page) Features() []string {
	return append([]string(nil), p.features...)
}

// Has reports whether the named behavior was attached.
func (p *Page) Has(feature string) bool {
	for _, f := range p.features {
		if f == feature {
			return true
		}
	}
	return false
}

// Close detaches every listener and stops pending timers.
func (p *Page) Close() {
	for _, sub := range p.subs {
		sub.Cancel()
	}
	p.subs = nil
	if p.scroll != nil {
		p.scroll.Stop()
		p.scrollSettle.Stop()
	}
	if p.observer != nil {
		p.observer.Disconnect()
	}
}

func (p *Page) listen(target dom.EventTarget, typ string, fn dom.Listener) {
	p.subs = append(p.subs, target.AddEventListener(typ, fn))
}
