package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page with its listener registry.
type Document struct {
	root      *html.Node
	body      *html.Node
	listeners Listeners
	byNode    map[*html.Node]*Listeners
	active    *html.Node
	defaults  []func(ev *Event)
	selectors selectorCache
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return NewDocument(root)
}

// ParseString parses an HTML page held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument wraps an already parsed node tree.
func NewDocument(root *html.Node) (*Document, error) {
	d := &Document{
		root:   root,
		byNode: make(map[*html.Node]*Listeners),
	}
	d.body = findNode(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if d.body == nil {
		return nil, ErrNoBody
	}
	return d, nil
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document to a string.
func (d *Document) String() string {
	var sb strings.Builder
	_ = d.Render(&sb)
	return sb.String()
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return d.wrap(d.body)
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	n := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && getAttr(n, "id") == id
	})
	return d.wrap(n)
}

// Find returns the first element matching sel, or nil.
func (d *Document) Find(sel Selector) *Element {
	return d.wrap(sel.matchFirst(d.root))
}

// FindAll returns every element matching sel in document order.
func (d *Document) FindAll(sel Selector) []*Element {
	return d.wrapAll(sel.matchAll(d.root))
}

// Query compiles sel and returns the first matching element, or nil.
func (d *Document) Query(sel string) (*Element, error) {
	s, err := d.selectors.compile(sel)
	if err != nil {
		return nil, err
	}
	return d.Find(s), nil
}

// QueryAll compiles sel and returns every matching element.
func (d *Document) QueryAll(sel string) ([]*Element, error) {
	s, err := d.selectors.compile(sel)
	if err != nil {
		return nil, err
	}
	return d.FindAll(s), nil
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element {
	return d.wrap(d.active)
}

// AddEventListener registers a document-level listener.
func (d *Document) AddEventListener(typ string, fn Listener) Subscription {
	return d.listeners.Add(typ, fn)
}

// DispatchEvent delivers ev to the document's listeners. It returns false if
// a listener prevented the default.
func (d *Document) DispatchEvent(ev *Event) bool {
	ev.Target = d
	d.listeners.Dispatch(ev)
	return !ev.DefaultPrevented()
}

// OnDefault installs a default action that runs after element listeners for
// events whose default was not prevented.
func (d *Document) OnDefault(fn func(ev *Event)) {
	d.defaults = append(d.defaults, fn)
}

func (d *Document) runDefaults(ev *Event) {
	for _, fn := range d.defaults {
		fn(ev)
	}
}

func (d *Document) listenersFor(n *html.Node) *Listeners {
	l, ok := d.byNode[n]
	if !ok {
		l = &Listeners{}
		d.byNode[n] = l
	}
	return l
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

// findNode walks the tree depth-first and returns the first node matching pred.
func findNode(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findNode(c, pred); m != nil {
			return m
		}
	}
	return nil
}
