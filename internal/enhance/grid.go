package enhance

import "github.com/dshills/pagekit/internal/dom"

const pressedTransform = "scale(0.98)"

// bindGridItems makes grid cards keyboard-activatable and gives touch feedback.
func (p *Page) bindGridItems() bool {
	items := p.env.Doc.FindAll(selGridItems)
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		p.listen(item, dom.EventKeyDown, func(ev *dom.Event) {
			if ev.Key != "Enter" && ev.Key != " " {
				return
			}
			ev.PreventDefault()
			if link := item.Find(selAnchor); link != nil {
				link.Click()
			}
		})
		p.listen(item, dom.EventTouchStart, func(*dom.Event) {
			item.SetStyle("transform", pressedTransform)
		})
		p.listen(item, dom.EventTouchEnd, func(*dom.Event) {
			item.SetStyle("transform", "")
		})
	}
	return true
}
