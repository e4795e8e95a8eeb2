package enhance

import "github.com/dshills/pagekit/internal/dom"

// bindImageStates tracks loading, loaded and error states on grid images.
func (p *Page) bindImageStates() bool {
	images := p.env.Doc.FindAll(selGridImages)
	if len(images) == 0 {
		return false
	}

	for _, img := range images {
		img.AddClass(classLoading)
		p.listen(img, dom.EventLoad, func(*dom.Event) {
			img.RemoveClass(classLoading)
			img.AddClass(classLoaded)
		})
		p.listen(img, dom.EventError, func(*dom.Event) {
			img.RemoveClass(classLoading)
			img.AddClass(classError)
		})
	}
	return true
}
