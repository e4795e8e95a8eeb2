package enhance

import (
	"github.com/dshills/pagekit/internal/browser"
	"github.com/dshills/pagekit/internal/dom"
)

// bindSmoothAnchors replaces in-page jumps with smooth scrolling.
func (p *Page) bindSmoothAnchors() bool {
	anchors := p.env.Doc.FindAll(selHashLinks)
	if len(anchors) == 0 {
		return false
	}

	for _, anchor := range anchors {
		p.listen(anchor, dom.EventClick, func(ev *dom.Event) {
			href := anchor.Attr("href")
			if href == "#" {
				return
			}
			ev.PreventDefault()

			target, err := p.env.Doc.Query(href)
			if err != nil {
				p.log.Debug().Err(err).Str("href", href).Msg("anchor target not selectable")
				return
			}
			if target != nil {
				p.env.Window.ScrollIntoView(target, browser.ScrollSmooth, "start")
			}
		})
	}
	return true
}
