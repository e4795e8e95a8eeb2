package enhance

// bindActiveNav marks the navigation link for the current path.
func (p *Page) bindActiveNav() bool {
	links := p.env.Doc.FindAll(selNavLinks)
	if len(links) == 0 {
		return false
	}

	path := p.env.Window.Pathname()
	for _, link := range links {
		if link.Attr("href") == path {
			link.AddClass(classActive)
			link.SetAttr("aria-current", "page")
		}
	}
	return true
}
