package enhance

import "github.com/dshills/pagekit/internal/dom"

// bindLoadTiming logs how long the page took to load.
func (p *Page) bindLoadTiming() bool {
	p.listen(p.env.Window, dom.EventLoad, func(*dom.Event) {
		timing, ok := p.env.Window.Performance()
		if !ok {
			return
		}
		ms := timing.LoadTime().Milliseconds()
		p.log.Info().Int64("load_ms", ms).Msgf("Page load time: %dms", ms)
	})
	return true
}

// bindDOMReady marks the body as loaded once the DOM is ready.
func (p *Page) bindDOMReady() bool {
	p.listen(p.env.Doc, dom.EventDOMContentLoaded, func(*dom.Event) {
		msg := "website loaded successfully"
		if p.opts.SiteName != "" {
			msg = p.opts.SiteName + " " + msg
		}
		p.log.Info().Msg(msg)
		p.env.Doc.Body().AddClass(classLoaded)
	})
	return true
}
