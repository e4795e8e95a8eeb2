package enhance

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dshills/pagekit/internal/dom"
)

// bindSearch redirects search form submissions to the search URL.
func (p *Page) bindSearch() bool {
	form := p.env.Doc.Find(selSearchForm)
	if form == nil {
		return false
	}

	p.listen(form, dom.EventSubmit, func(ev *dom.Event) {
		ev.PreventDefault()

		input := p.env.Doc.ByID(idSearchInput)
		if input == nil {
			return
		}
		term := strings.TrimSpace(input.Value())
		if term == "" {
			return
		}

		target := SearchURL(p.opts.SearchURLTemplate, term)
		if err := p.env.Window.Navigate(target); err != nil {
			p.log.Warn().Err(err).Str("url", target).Msg("search redirect failed")
			return
		}
		p.log.Debug().Str("term", term).Str("url", target).Msg("search redirect")
	})
	return true
}

// SearchURL fills template with term escaped as a URI component.
func SearchURL(template, term string) string {
	return fmt.Sprintf(template, escapeComponent(term))
}

// componentUnescaper undoes QueryEscape for the characters
// encodeURIComponent leaves alone. QueryEscape encodes a literal "+" as
// %2B, so any "+" left is a space.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent escapes s like encodeURIComponent: everything outside
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
