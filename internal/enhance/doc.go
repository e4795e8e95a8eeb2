// Package enhance attaches the site's page behaviors to a document.
//
// Each behavior binds one or more events to a DOM mutation and is skipped
// when the elements it needs are missing from the page: a page without a
// search box simply gets no search behavior. Capabilities are injected
// through Env, so a page can be enhanced, driven and inspected without a
// browser:
//
//	doc, _ := dom.Parse(r)
//	win, _ := browser.NewWindow(doc, browser.WithClock(c))
//	page := enhance.Init(enhance.Env{Doc: doc, Window: win}, enhance.DefaultOptions(), log)
//	defer page.Close()
//
// The scroll handler is throttled through ratelimit.Throttler using the
// window's clock.
package enhance
