package enhance

import (
	"github.com/dshills/pagekit/internal/browser"
	"github.com/dshills/pagekit/internal/dom"
)

// bindPagination scrolls to the top when a page link is followed. The
// navigation itself is left to the link.
func (p *Page) bindPagination() bool {
	links := p.env.Doc.FindAll(selPagination)
	if len(links) == 0 {
		return false
	}

	for _, link := range links {
		p.listen(link, dom.EventClick, func(*dom.Event) {
			p.env.Window.ScrollTo(0, browser.ScrollSmooth)
		})
	}
	return true
}
