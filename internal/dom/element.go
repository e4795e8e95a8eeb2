package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle onto an element node.
type Element struct {
	doc  *Document
	node *html.Node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Is reports whether e and other refer to the same node.
func (e *Element) Is(other *Element) bool {
	return other != nil && e.node == other.node
}

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	return getAttr(e.node, name)
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := lookupAttr(e.node, name)
	return ok
}

// SetAttr sets an attribute, adding it if absent.
func (e *Element) SetAttr(name, value string) {
	if i, ok := lookupAttr(e.node, name); ok {
		e.node.Attr[i].Val = value
		return
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes an attribute.
func (e *Element) RemoveAttr(name string) {
	if i, ok := lookupAttr(e.node, name); ok {
		e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
	}
}

// Dataset returns the value of data-<key>.
func (e *Element) Dataset(key string) string {
	return e.Attr("data-" + key)
}

// Value returns the form value held in the value attribute.
func (e *Element) Value() string {
	return e.Attr("value")
}

// SetValue sets the form value.
func (e *Element) SetValue(v string) {
	e.SetAttr("value", v)
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// Find returns the first descendant matching sel, or nil.
func (e *Element) Find(sel Selector) *Element {
	return e.doc.wrap(sel.matchFirst(e.node))
}

// FindAll returns every descendant matching sel.
func (e *Element) FindAll(sel Selector) []*Element {
	return e.doc.wrapAll(sel.matchAll(e.node))
}

// Query compiles sel and returns the first matching descendant, or nil.
func (e *Element) Query(sel string) (*Element, error) {
	s, err := e.doc.selectors.compile(sel)
	if err != nil {
		return nil, err
	}
	return e.Find(s), nil
}

// Focus makes e the document's active element and dispatches focus.
func (e *Element) Focus() {
	e.doc.active = e.node
	e.DispatchEvent(NewEvent(EventFocus))
}

// Click dispatches a click event, as element.click() would.
func (e *Element) Click() bool {
	return e.DispatchEvent(NewEvent(EventClick))
}

// AddEventListener registers a listener on e.
func (e *Element) AddEventListener(typ string, fn Listener) Subscription {
	return e.doc.listenersFor(e.node).Add(typ, fn)
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ string) int {
	if l, ok := e.doc.byNode[e.node]; ok {
		return l.Count(typ)
	}
	return 0
}

// DispatchEvent delivers ev to e's listeners and then, unless prevented, to
// the document's default actions. It returns false if the default was
// prevented.
func (e *Element) DispatchEvent(ev *Event) bool {
	ev.Target = e
	if l, ok := e.doc.byNode[e.node]; ok {
		l.Dispatch(ev)
	}
	if ev.DefaultPrevented() {
		return false
	}
	e.doc.runDefaults(ev)
	return true
}

func getAttr(n *html.Node, name string) string {
	if i, ok := lookupAttr(n, name); ok {
		return n.Attr[i].Val
	}
	return ""
}

func lookupAttr(n *html.Node, name string) (int, bool) {
	if n == nil {
		return 0, false
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return i, true
		}
	}
	return 0, false
}
