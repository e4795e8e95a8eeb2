package enhance

import "github.com/dshills/pagekit/internal/dom"

// bindMobileMenu toggles the navigation drawer from the hamburger button.
func (p *Page) bindMobileMenu() bool {
	toggle := p.env.Doc.Find(selMenuToggle)
	if toggle == nil {
		return false
	}
	nav := p.env.Doc.Find(selNav)

	p.listen(toggle, dom.EventClick, func(*dom.Event) {
		expanded := toggle.Attr("aria-expanded") == "true"
		if expanded {
			toggle.SetAttr("aria-expanded", "false")
		} else {
			toggle.SetAttr("aria-expanded", "true")
		}
		if nav != nil {
			nav.ToggleClass(classActive)
		}
		toggle.ToggleClass(classActive)
	})
	return true
}
