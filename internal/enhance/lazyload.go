package enhance

import "github.com/dshills/pagekit/internal/browser"

// bindLazyLoad swaps in real image sources as lazy images become visible.
// With native lazy loading the browser does this itself and the fallback
// is not attached unless forced.
func (p *Page) bindLazyLoad() bool {
	if p.env.Window.SupportsNativeLazyLoading() && !p.opts.ForceLazyFallback {
		p.log.Debug().Msg("Native lazy loading supported")
		return false
	}

	images := p.env.Doc.FindAll(selLazyImages)
	if len(images) == 0 {
		return false
	}

	p.observer = p.env.Window.NewIntersectionObserver(func(entries []browser.IntersectionEntry, o *browser.IntersectionObserver) {
		for _, entry := range entries {
			if !entry.IsIntersecting {
				continue
			}
			img := entry.Target
			if src := img.Dataset("src"); src != "" {
				img.SetAttr("src", src)
			}
			img.AddClass(classLoaded)
			o.Unobserve(img)
		}
	})
	for _, img := range images {
		p.observer.Observe(img)
	}
	return true
}
