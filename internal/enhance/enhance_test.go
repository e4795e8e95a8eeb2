package enhance

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pagekit/internal/browser"
	"github.com/dshills/pagekit/internal/clock"
	"github.com/dshills/pagekit/internal/dom"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	doc   *dom.Document
	win   *browser.Window
	clock *clock.Manual
	page  *Page
	logs  *bytes.Buffer
}

func newFixture(t *testing.T, opts Options, winOpts ...browser.Option) *fixture {
	t.Helper()
	return newFixtureFromFile(t, "testdata/index.html", opts, winOpts...)
}

func newFixtureFromFile(t *testing.T, path string, opts Options, winOpts ...browser.Option) *fixture {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := clock.NewManual(epoch)
	winOpts = append([]browser.Option{
		browser.WithClock(c),
		browser.WithLocation("https://example.com/movies/"),
	}, winOpts...)
	win, err := browser.NewWindow(doc, winOpts...)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	logs := &bytes.Buffer{}
	log := zerolog.New(logs)
	page := Init(Env{Doc: doc, Window: win}, opts, log)
	t.Cleanup(page.Close)

	return &fixture{doc: doc, win: win, clock: c, page: page, logs: logs}
}

func (f *fixture) byID(t *testing.T, id string) *dom.Element {
	t.Helper()
	el := f.doc.ByID(id)
	if el == nil {
		t.Fatalf("no element #%s", id)
	}
	return el
}

func (f *fixture) find(t *testing.T, sel string) *dom.Element {
	t.Helper()
	el, err := f.doc.Query(sel)
	if err != nil || el == nil {
		t.Fatalf("Query(%q) = %v, %v", sel, el, err)
	}
	return el
}

func TestInit_Features(t *testing.T) {
	f := newFixture(t, DefaultOptions())

	want := []string{
		FeatureMobileMenu, FeatureScrollToTop, FeatureSearch, FeatureGrid,
		FeatureAnchors, FeatureActiveNav, FeatureImageStates, FeaturePagination,
		FeatureLoadTiming, FeatureSkipLink, FeatureDOMReady,
	}
	got := f.page.Features()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Features() = %v, want %v", got, want)
	}
	if f.page.Has(FeatureLazyLoad) {
		t.Error("lazy-load fallback attached despite native support")
	}
}

func TestInit_EmptyPage(t *testing.T) {
	doc, err := dom.ParseString("<html><body><p>plain</p></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	win, err := browser.NewWindow(doc, browser.WithClock(clock.NewManual(epoch)), browser.WithNativeLazyLoading(false))
	if err != nil {
		t.Fatal(err)
	}

	page := Init(Env{Doc: doc, Window: win}, DefaultOptions(), zerolog.Nop())
	defer page.Close()

	// Only the page-level lifecycle hooks apply.
	want := []string{FeatureLoadTiming, FeatureDOMReady}
	if got := page.Features(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Features() = %v, want %v", got, want)
	}
	if n := win.ListenerCount(dom.EventScroll); n != 0 {
		t.Errorf("scroll listeners = %d, want 0 without a button", n)
	}
}

func TestMobileMenu(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	toggle := f.find(t, ".mobile-menu-toggle")
	nav := f.find(t, ".nav")

	toggle.Click()
	if toggle.Attr("aria-expanded") != "true" {
		t.Errorf("aria-expanded = %q, want true", toggle.Attr("aria-expanded"))
	}
	if !toggle.HasClass("active") || !nav.HasClass("active") {
		t.Error("toggle and nav should be active after first click")
	}

	toggle.Click()
	if toggle.Attr("aria-expanded") != "false" {
		t.Errorf("aria-expanded = %q, want false", toggle.Attr("aria-expanded"))
	}
	if toggle.HasClass("active") || nav.HasClass("active") {
		t.Error("toggle and nav should be inactive after second click")
	}
}

func TestScrollToTop_Throttled(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	button := f.byID(t, "scrollToTopBtn")

	f.win.SetScrollY(450)
	if !button.HasClass("visible") {
		t.Fatal("button hidden after scrolling past threshold")
	}

	// Inside the 100ms window: dropped, so the button stays visible.
	f.clock.Advance(50 * time.Millisecond)
	f.win.SetScrollY(10)
	if !button.HasClass("visible") {
		t.Error("scroll inside throttle window was not dropped")
	}

	f.clock.Advance(60 * time.Millisecond)
	f.win.SetScrollY(10)
	if button.HasClass("visible") {
		t.Error("button still visible after scrolling back above threshold")
	}
}

func TestScrollToTop_TrailingScrollApplied(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	button := f.byID(t, "scrollToTopBtn")

	f.win.SetScrollY(450)
	f.clock.Advance(40 * time.Millisecond)
	f.win.SetScrollY(20)
	if !button.HasClass("visible") {
		t.Fatal("dropped scroll should not apply inside the throttle window")
	}

	f.clock.Advance(10 * time.Second)
	if button.HasClass("visible") {
		t.Error("button still visible after scrolling settled at 20")
	}

	f.win.SetScrollY(600)
	f.clock.Advance(30 * time.Millisecond)
	f.win.SetScrollY(900)
	f.clock.Advance(10 * time.Second)
	if !button.HasClass("visible") {
		t.Error("button hidden after scrolling settled at 900")
	}
}

func TestScrollToTop_Threshold(t *testing.T) {
	opts := DefaultOptions()
	opts.ScrollThreshold = 1000
	f := newFixture(t, opts)

	f.win.SetScrollY(999)
	if f.byID(t, "scrollToTopBtn").HasClass("visible") {
		t.Error("button visible below custom threshold")
	}
}

func TestScrollToTop_Click(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	f.win.SetScrollY(800)
	f.clock.Advance(200 * time.Millisecond)

	f.byID(t, "scrollToTopBtn").Click()

	last, ok := f.win.LastScroll()
	if !ok || last.Top != 0 || last.Behavior != browser.ScrollSmooth {
		t.Errorf("LastScroll() = %+v, want smooth scroll to 0", last)
	}
	if f.win.ScrollY() != 0 {
		t.Errorf("ScrollY() = %d, want 0", f.win.ScrollY())
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		template string
		value    string
		want     []string
	}{
		{"redirects with escaped term", "/?s=%s", "  the dark knight ", []string{"https://example.com/?s=the%20dark%20knight"}},
		{"absolute template", "https://search.example.org/find?q=%s", "a&b=c", []string{"https://search.example.org/find?q=a%26b%3Dc"}},
		{"blank term ignored", "/?s=%s", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.SearchURLTemplate = tt.template
			f := newFixture(t, opts)

			f.byID(t, "search-input").SetValue(tt.value)
			form := f.find(t, ".search-box form")
			if form.DispatchEvent(dom.NewEvent(dom.EventSubmit)) {
				t.Error("submit default was not prevented")
			}

			got := f.win.Navigations()
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Navigations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"heat", "/?s=heat"},
		{"a b", "/?s=a%20b"},
		{"c++", "/?s=c%2B%2B"},
		{"über/€", "/?s=%C3%BCber%2F%E2%82%AC"},
		{"Ocean's Eleven", "/?s=Ocean's%20Eleven"},
		{"Heat (1995)", "/?s=Heat%20(1995)"},
		{"Wow!", "/?s=Wow!"},
		{"M*A*S*H", "/?s=M*A*S*H"},
		{"~tilde_dash-dot.", "/?s=~tilde_dash-dot."},
		{"50% off & more", "/?s=50%25%20off%20%26%20more"},
	}
	for _, tt := range tests {
		if got := SearchURL("/?s=%s", tt.term); got != tt.want {
			t.Errorf("SearchURL(%q) = %q, want %q", tt.term, got, tt.want)
		}
	}
}

func TestLazyLoad_Fallback(t *testing.T) {
	f := newFixture(t, DefaultOptions(), browser.WithNativeLazyLoading(false))
	if !f.page.Has(FeatureLazyLoad) {
		t.Fatal("fallback not attached without native support")
	}

	img := f.find(t, `img[loading="lazy"]`)
	if img.Attr("src") != "ph.jpg" {
		t.Fatalf("src changed before intersection: %q", img.Attr("src"))
	}

	if n := f.win.Intersect(img); n != 1 {
		t.Fatalf("Intersect notified %d observers, want 1", n)
	}
	if img.Attr("src") != "heat.jpg" {
		t.Errorf("src = %q, want heat.jpg", img.Attr("src"))
	}
	if !img.HasClass("loaded") {
		t.Error("lazy image not marked loaded")
	}
	if n := f.win.Intersect(img); n != 0 {
		t.Errorf("image still observed after load (%d observers)", n)
	}
}

func TestLazyLoad_Forced(t *testing.T) {
	opts := DefaultOptions()
	opts.ForceLazyFallback = true
	f := newFixture(t, opts)

	if !f.page.Has(FeatureLazyLoad) {
		t.Error("forced fallback not attached")
	}
}

func TestLazyLoad_NativeLogsNotice(t *testing.T) {
	doc, _ := dom.ParseString(`<html><body><img loading="lazy" src="a.jpg"></body></html>`)
	win, _ := browser.NewWindow(doc, browser.WithClock(clock.NewManual(epoch)))
	var logs bytes.Buffer

	page := Init(Env{Doc: doc, Window: win}, DefaultOptions(), zerolog.New(&logs))
	defer page.Close()

	if !strings.Contains(logs.String(), "Native lazy loading supported") {
		t.Errorf("missing native notice in logs: %s", logs.String())
	}
}

func TestGridItems_Keyboard(t *testing.T) {
	tests := []struct {
		key       string
		prevented bool
		navigated bool
	}{
		{"Enter", true, true},
		{" ", true, true},
		{"a", false, false},
		{"Tab", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f := newFixture(t, DefaultOptions())
			card := f.byID(t, "card-1")

			ok := card.DispatchEvent(dom.NewKeyEvent(dom.EventKeyDown, tt.key))
			if ok == tt.prevented {
				t.Errorf("DispatchEvent() = %v, want prevented=%v", ok, tt.prevented)
			}

			navs := f.win.Navigations()
			if tt.navigated {
				if len(navs) != 1 || navs[0] != "https://example.com/movies/heat/" {
					t.Errorf("Navigations() = %v, want card link", navs)
				}
			} else if len(navs) != 0 {
				t.Errorf("Navigations() = %v, want none", navs)
			}
		})
	}
}

func TestGridItems_NoLink(t *testing.T) {
	f := newFixture(t, DefaultOptions())

	f.byID(t, "card-3").DispatchEvent(dom.NewKeyEvent(dom.EventKeyDown, "Enter"))
	if len(f.win.Navigations()) != 0 {
		t.Errorf("Navigations() = %v, want none", f.win.Navigations())
	}
}

func TestGridItems_Touch(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	card := f.byID(t, "card-2")

	card.DispatchEvent(dom.NewEvent(dom.EventTouchStart))
	if got := card.Style("transform"); got != "scale(0.98)" {
		t.Errorf("transform = %q, want scale(0.98)", got)
	}

	card.DispatchEvent(dom.NewEvent(dom.EventTouchEnd))
	if card.HasAttr("style") {
		t.Errorf("style = %q, want removed", card.Attr("style"))
	}
}

func TestSmoothAnchors(t *testing.T) {
	f := newFixture(t, DefaultOptions())

	if f.byID(t, "to-latest").Click() {
		t.Error("in-page anchor default not prevented")
	}
	last, ok := f.win.LastScroll()
	if !ok || last.Target == nil || last.Target.Attr("id") != "latest" {
		t.Fatalf("LastScroll() = %+v, want #latest", last)
	}
	if last.Behavior != browser.ScrollSmooth || last.Block != "start" {
		t.Errorf("scroll = %s/%s, want smooth/start", last.Behavior, last.Block)
	}
}

func TestSmoothAnchors_BareHashAndBadSelector(t *testing.T) {
	f := newFixture(t, DefaultOptions())

	if !f.byID(t, "noop").Click() {
		t.Error(`href="#" should keep its default`)
	}
	if f.byID(t, "bad-anchor").Click() {
		t.Error("anchor with unselectable target should still prevent default")
	}
	if _, ok := f.win.LastScroll(); ok {
		t.Error("no scroll expected for bare or unselectable anchors")
	}
}

func TestActiveNav(t *testing.T) {
	f := newFixture(t, DefaultOptions())

	links, _ := f.doc.QueryAll(".nav a")
	for _, link := range links {
		active := link.Attr("href") == "/movies/"
		if link.HasClass("active") != active {
			t.Errorf("%s active = %v, want %v", link.Attr("href"), link.HasClass("active"), active)
		}
		if (link.Attr("aria-current") == "page") != active {
			t.Errorf("%s aria-current = %q", link.Attr("href"), link.Attr("aria-current"))
		}
	}
}

func TestImageStates(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	images, _ := f.doc.QueryAll(".grid-item img")
	if len(images) != 2 {
		t.Fatalf("grid images = %d, want 2", len(images))
	}
	for _, img := range images {
		if !img.HasClass("loading") {
			t.Errorf("%s missing loading class", img.Attr("alt"))
		}
	}

	images[0].DispatchEvent(dom.NewEvent(dom.EventLoad))
	images[1].DispatchEvent(dom.NewEvent(dom.EventError))

	if images[0].HasClass("loading") || !images[0].HasClass("loaded") {
		t.Errorf("loaded image classes = %v", images[0].Classes())
	}
	if images[1].HasClass("loading") || !images[1].HasClass("error") {
		t.Errorf("failed image classes = %v", images[1].Classes())
	}
}

func TestPagination(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	f.win.SetScrollY(1200)

	if !f.byID(t, "page-2").Click() {
		t.Error("pagination click should keep its default")
	}

	last, ok := f.win.LastScroll()
	if !ok || last.Top != 0 || last.Behavior != browser.ScrollSmooth {
		t.Errorf("LastScroll() = %+v, want smooth scroll to top", last)
	}
	navs := f.win.Navigations()
	if len(navs) != 1 || navs[0] != "https://example.com/movies/page/2/" {
		t.Errorf("Navigations() = %v", navs)
	}
}

func TestSkipLink(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	main := f.find(t, ".main")

	if f.find(t, ".skip-link").Click() {
		t.Error("skip link default not prevented")
	}
	if main.Attr("tabindex") != "-1" {
		t.Errorf("tabindex = %q, want -1", main.Attr("tabindex"))
	}
	if !main.Is(f.doc.ActiveElement()) {
		t.Error("main content not focused")
	}
	last, ok := f.win.LastScroll()
	if !ok || !main.Is(last.Target) || last.Behavior != browser.ScrollSmooth {
		t.Errorf("LastScroll() = %+v, want smooth scroll to main", last)
	}
}

func TestLoadTiming(t *testing.T) {
	f := newFixture(t, DefaultOptions())

	f.clock.Advance(1234 * time.Millisecond)
	f.win.Load()

	if !strings.Contains(f.logs.String(), "Page load time: 1234ms") {
		t.Errorf("load time not logged: %s", f.logs.String())
	}
}

func TestLoadTiming_Unavailable(t *testing.T) {
	f := newFixture(t, DefaultOptions(), browser.WithPerformanceTiming(false))

	f.win.Load()
	if strings.Contains(f.logs.String(), "Page load time") {
		t.Errorf("load time logged without timing API: %s", f.logs.String())
	}
}

func TestDOMReady(t *testing.T) {
	opts := DefaultOptions()
	opts.SiteName = "Movies"
	f := newFixture(t, opts)

	f.win.DOMContentLoaded()

	if !f.doc.Body().HasClass("loaded") {
		t.Error("body not marked loaded")
	}
	if !strings.Contains(f.logs.String(), "Movies website loaded successfully") {
		t.Errorf("ready message not logged: %s", f.logs.String())
	}
}

func TestPage_Close(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	toggle := f.find(t, ".mobile-menu-toggle")

	f.page.Close()
	toggle.Click()
	f.win.SetScrollY(900)

	if toggle.Attr("aria-expanded") != "false" {
		t.Error("menu listener still attached after Close")
	}
	if f.byID(t, "scrollToTopBtn").HasClass("visible") {
		t.Error("scroll listener still attached after Close")
	}
	if f.clock.Pending() != 0 {
		t.Errorf("pending timers after Close = %d, want 0", f.clock.Pending())
	}
}

func TestPage_CloseReleasesScrollAndObserver(t *testing.T) {
	f := newFixture(t, DefaultOptions(), browser.WithNativeLazyLoading(false))
	if f.win.Observers() != 1 {
		t.Fatalf("Observers() = %d, want 1 with the lazy-load fallback", f.win.Observers())
	}

	f.win.SetScrollY(450)
	f.clock.Advance(10 * time.Millisecond)
	f.win.SetScrollY(20)

	f.page.Close()
	if f.clock.Pending() != 0 {
		t.Errorf("pending timers after Close = %d, want 0", f.clock.Pending())
	}
	if f.win.Observers() != 0 {
		t.Errorf("Observers() = %d after Close, want 0", f.win.Observers())
	}

	f.clock.Advance(time.Second)
	if !f.byID(t, "scrollToTopBtn").HasClass("visible") {
		t.Error("settle ran after Close")
	}
}
