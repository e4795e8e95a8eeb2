package dom

import "strings"

// Classes returns the element's class list.
func (e *Element) Classes() []string {
	return strings.Fields(e.Attr("class"))
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds name to the class list if missing.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.setClasses(append(e.Classes(), name))
}

// RemoveClass removes every occurrence of name from the class list.
func (e *Element) RemoveClass(name string) {
	classes := e.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.setClasses(kept)
}

// ToggleClass flips name in the class list and reports whether it is now present.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

func (e *Element) setClasses(classes []string) {
	e.SetAttr("class", strings.Join(classes, " "))
}

// Style returns an inline style property.
func (e *Element) Style(prop string) string {
	for _, decl := range parseStyle(e.Attr("style")) {
		if decl[0] == prop {
			return decl[1]
		}
	}
	return ""
}

// SetStyle sets an inline style property. An empty value removes it, and
// the style attribute is dropped once no properties remain.
func (e *Element) SetStyle(prop, value string) {
	decls := parseStyle(e.Attr("style"))
	out := decls[:0]
	replaced := false
	for _, decl := range decls {
		if decl[0] == prop {
			if value == "" {
				continue
			}
			decl[1] = value
			replaced = true
		}
		out = append(out, decl)
	}
	if !replaced && value != "" {
		out = append(out, [2]string{prop, value})
	}

	if len(out) == 0 {
		e.RemoveAttr("style")
		return
	}
	parts := make([]string, len(out))
	for i, decl := range out {
		parts[i] = decl[0] + ": " + decl[1]
	}
	e.SetAttr("style", strings.Join(parts, "; "))
}

// parseStyle splits an inline style into ordered property/value pairs.
func parseStyle(s string) [][2]string {
	var out [][2]string
	for _, part := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, [2]string{name, strings.TrimSpace(value)})
	}
	return out
}
