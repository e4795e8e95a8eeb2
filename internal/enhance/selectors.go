package enhance

import "github.com/dshills/pagekit/internal/dom"

var (
	selMenuToggle  = dom.MustCompile(".mobile-menu-toggle")
	selNav         = dom.MustCompile(".nav")
	selNavLinks    = dom.MustCompile(".nav a")
	selSearchForm  = dom.MustCompile(".search-box form")
	selLazyImages  = dom.MustCompile(`img[loading="lazy"]`)
	selGridItems   = dom.MustCompile(".grid-item")
	selGridImages  = dom.MustCompile(".grid-item img")
	selAnchor      = dom.MustCompile("a")
	selHashLinks   = dom.MustCompile(`a[href^="#"]`)
	selPagination  = dom.MustCompile(".pagination a")
	selSkipLink    = dom.MustCompile(".skip-link")
	selMainContent = dom.MustCompile(".main")
)

const (
	idScrollToTop = "scrollToTopBtn"
	idSearchInput = "search-input"
)

// CSS classes and attributes toggled by the behaviors.
const (
	classActive  = "active"
	classVisible = "visible"
	classLoading = "loading"
	classLoaded  = "loaded"
	classError   = "error"
)
