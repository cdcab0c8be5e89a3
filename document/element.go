package document

// Element is a generic XML element as read from a document, before it is
// checked against the organization tree shape.
type Element struct {
	// Name is the local element name.
	Name string
	// Attrs holds attributes in document order.
	Attrs []Attr
	// Children holds child elements in document order.
	Children []*Element
	// Text is the element's normalized character data with child elements
	// removed.
	Text string
	// Line is the 1-based line the start tag appeared on.
	Line int
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ChildrenNamed returns the child elements with the given name.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child element, or nil when there is none.
func (e *Element) FirstChild() *Element {
	if e == nil || len(e.Children) == 0 {
		return nil
	}
	return e.Children[0]
}
