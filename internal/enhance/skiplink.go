package enhance

import (
	"github.com/dshills/pagekit/internal/browser"
	"github.com/dshills/pagekit/internal/dom"
)

// bindSkipLink moves focus to the main content.
func (p *Page) bindSkipLink() bool {
	link := p.env.Doc.Find(selSkipLink)
	if link == nil {
		return false
	}

	p.listen(link, dom.EventClick, func(ev *dom.Event) {
		ev.PreventDefault()
		main := p.env.Doc.Find(selMainContent)
		if main == nil {
			return
		}
		main.SetAttr("tabindex", "-1")
		main.Focus()
		p.env.Window.ScrollIntoView(main, browser.ScrollSmooth, "start")
	})
	return true
}
