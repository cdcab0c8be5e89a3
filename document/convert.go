package document

import (
	"fmt"

	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/orgerrors"
)

// DecodeTree converts a <Tree> element into the typed model.
//
// Only the structure needed to build the model is checked here; callers
// that accept client input run the validator first for complete reporting.
func DecodeTree(e *Element) (*Tree, error) {
	if e == nil || e.Name != TagTree {
		return nil, &orgerrors.ValidationError{
			Field:   "root",
			Message: fmt.Sprintf("root element must be <%s>, got <%s>", TagTree, nameOf(e)),
		}
	}

	t := &Tree{}
	for _, c := range e.Children {
		switch c.Name {
		case TagTreeName:
			if t.TreeName != nil {
				return nil, duplicateField(TagTree, TagTreeName)
			}
			t.TreeName = Ptr(c.Text)
		case TagPerson:
			p, err := decodePerson(c, nil, TagTree)
			if err != nil {
				return nil, err
			}
			t.Persons = append(t.Persons, p)
		default:
			return nil, unexpectedElement(TagTree, c.Name)
		}
	}
	return t, nil
}

// DecodePerson converts a <person> element into the typed model.
func DecodePerson(e *Element) (*Person, error) {
	if e == nil || e.Name != TagPerson {
		return nil, &orgerrors.ValidationError{
			Field:   "root",
			Message: fmt.Sprintf("fragment must be a <%s> element, got <%s>", TagPerson, nameOf(e)),
		}
	}
	return decodePerson(e, nil, "")
}

func decodePerson(e *Element, parent *pathexpr.Path, prefix string) (*Person, error) {
	id, ok := e.Attr(AttrID)
	if !ok || id == "" {
		return nil, &orgerrors.ValidationError{
			Path:    location(prefix, parent),
			Field:   AttrID,
			Message: "person is missing its id attribute",
		}
	}

	p := &Person{ID: id}
	here := pathexpr.Join(parent, pathexpr.PersonStep(id))
	for _, c := range e.Children {
		switch c.Name {
		case TagName:
			if p.Name != nil {
				return nil, duplicateField(location(prefix, here), TagName)
			}
			p.Name = Ptr(c.Text)
		case TagChildren:
			if p.Children != nil {
				return nil, duplicateField(location(prefix, here), TagChildren)
			}
			container := pathexpr.Join(here, pathexpr.ChildrenStep())
			p.Children = &Children{Persons: []*Person{}}
			for _, gc := range c.Children {
				if gc.Name != TagPerson {
					return nil, unexpectedElement(location(prefix, container), gc.Name)
				}
				child, err := decodePerson(gc, container, prefix)
				if err != nil {
					return nil, err
				}
				p.Children.Persons = append(p.Children.Persons, child)
			}
		default:
			return nil, unexpectedElement(location(prefix, here), c.Name)
		}
	}
	return p, nil
}

// location renders a path for error reporting, optionally anchored under
// the document root element.
func location(prefix string, p *pathexpr.Path) string {
	switch {
	case prefix == "":
		return p.Canonical()
	case p.IsRoot():
		return prefix
	default:
		return prefix + "/" + p.Canonical()
	}
}

func nameOf(e *Element) string {
	if e == nil {
		return ""
	}
	return e.Name
}

func duplicateField(where, field string) error {
	return &orgerrors.ValidationError{
		Path:    where,
		Field:   field,
		Message: fmt.Sprintf("<%s> appears more than once", field),
	}
}

func unexpectedElement(where, name string) error {
	return &orgerrors.ValidationError{
		Path:    where,
		Field:   name,
		Message: fmt.Sprintf("unexpected element <%s>", name),
	}
}
