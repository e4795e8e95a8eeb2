package dom

import (
	"fmt"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Selector is a compiled CSS selector.
type Selector struct {
	raw string
	sel cascadia.Selector
}

// Compile compiles a CSS selector.
func Compile(s string) (Selector, error) {
	sel, err := cascadia.Compile(s)
	if err != nil {
		return Selector{}, fmt.Errorf("%w %q: %v", ErrInvalidSelector, s, err)
	}
	return Selector{raw: s, sel: sel}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// selectors that are constants in the program.
func MustCompile(s string) Selector {
	sel, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the selector source.
func (s Selector) String() string {
	return s.raw
}

// matchFirst returns the first descendant of n matching s, excluding n.
func (s Selector) matchFirst(n *html.Node) *html.Node {
	if s.sel == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := s.sel.MatchFirst(c); m != nil {
			return m
		}
	}
	return nil
}

// matchAll returns every descendant of n matching s in document order, excluding n.
func (s Selector) matchAll(n *html.Node) []*html.Node {
	if s.sel == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, s.sel.MatchAll(c)...)
	}
	return out
}

// selectorCache memoizes compiled selectors for string queries.
type selectorCache struct {
	mu    sync.Mutex
	cache map[string]Selector
}

func (c *selectorCache) compile(s string) (Selector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sel, ok := c.cache[s]; ok {
		return sel, nil
	}
	sel, err := Compile(s)
	if err != nil {
		return Selector{}, err
	}
	if c.cache == nil {
		c.cache = make(map[string]Selector)
	}
	c.cache[s] = sel
	return sel, nil
}
