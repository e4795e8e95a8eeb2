package enhance

import (
	"github.com/dshills/pagekit/internal/browser"
	"github.com/dshills/pagekit/internal/dom"
	"github.com/dshills/pagekit/internal/ratelimit"
)

// bindScrollToTop shows the scroll-to-top button once the page is scrolled
// past the threshold and scrolls back up when it is clicked. The scroll
// handler is throttled; a scroll dropped by the throttle is applied once
// scrolling has been quiet for the throttle interval, so the button always
// ends up matching the final offset.
func (p *Page) bindScrollToTop() bool {
	button := p.env.Doc.ByID(idScrollToTop)
	if button == nil {
		return false
	}

	toggle := func(*dom.Event) {
		if p.env.Window.ScrollY() > p.opts.ScrollThreshold {
			button.AddClass(classVisible)
		} else {
			button.RemoveClass(classVisible)
		}
	}
	p.scroll = ratelimit.NewThrottler(p.env.Clock, p.opts.ScrollThrottle, toggle)
	p.scrollSettle = ratelimit.NewDebouncer(p.env.Clock, p.opts.ScrollThrottle, toggle)
	p.listen(p.env.Window, dom.EventScroll, func(ev *dom.Event) {
		if !p.scroll.Call(ev) {
			p.scrollSettle.Call(ev)
		}
	})

	p.listen(button, dom.EventClick, func(*dom.Event) {
		p.env.Window.ScrollTo(0, browser.ScrollSmooth)
	})
	return true
}
