// Package navigator resolves path expressions against organization trees.
//
// Resolution starts at the tree root and consumes one step per level. The
// root and every children container hold persons; a person holds at most one
// children container. A step that matches zero or several candidates fails
// with *orgerrors.NotFoundError: ambiguity is never resolved by taking the
// first match.
//
// Resolution is read-only. The returned [Location] records the sibling list
// that holds the node, so mutations can detach or append without parent
// pointers.
package navigator

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/orgerrors"
)

// Kind identifies the kind of node a Location points at.
type Kind int

const (
	// KindRoot is the tree root.
	KindRoot Kind = iota
	// KindPerson is a person node.
	KindPerson
	// KindChildren is a person's child container.
	KindChildren
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindPerson:
		return "person"
	case KindChildren:
		return "children"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Location is a resolved node within a tree.
type Location struct {
	Kind Kind

	// Path is the canonical path of the node. It is nil for the root.
	Path *pathexpr.Path

	Tree *document.Tree

	// Person is set for KindPerson.
	Person *document.Person

	// Children is set for KindChildren.
	Children *document.Children

	// Owner is the person enclosing the node: the owner of a children
	// container, or the parent of a nested person. It is nil for the root
	// and for top-level persons.
	Owner *document.Person

	// Siblings is the list holding Person, and Index its position in it.
	// Both are only meaningful for KindPerson.
	Siblings *[]*document.Person
	Index    int
}

// Persons returns the person list directly held by the location: the
// top-level persons for the root, the container's persons for a children
// container, and nil for a person.
func (l *Location) Persons() *[]*document.Person {
	switch l.Kind {
	case KindRoot:
		return &l.Tree.Persons
	case KindChildren:
		return &l.Children.Persons
	default:
		return nil
	}
}

// Resolve walks path against tree. A nil or empty path resolves to the root.
func Resolve(tree *document.Tree, path *pathexpr.Path) (*Location, error) {
	if tree == nil {
		return nil, fmt.Errorf("navigator: nil tree")
	}

	loc := &Location{Kind: KindRoot, Tree: tree}
	for i, step := range path.Steps() {
		next, err := loc.step(step)
		if err != nil {
			return nil, &orgerrors.NotFoundError{
				Resource: "node",
				Path:     path.String(),
				Message:  fmt.Sprintf("step %d (%s): %v", i+1, step, err),
			}
		}
		next.Tree = tree
		next.Path = path.Prefix(i + 1)
		loc = next
	}
	return loc, nil
}

// Exists reports whether path resolves to a node in tree.
func Exists(tree *document.Tree, path *pathexpr.Path) bool {
	_, err := Resolve(tree, path)
	return err == nil
}

// step descends one level from l.
func (l *Location) step(s pathexpr.Step) (*Location, error) {
	switch l.Kind {
	case KindRoot, KindChildren:
		if s.Tag != pathexpr.TagPerson {
			return nil, fmt.Errorf("a %s holds only persons", l.Kind)
		}
		var owner *document.Person
		if l.Kind == KindChildren {
			owner = l.Owner
		}
		return selectPerson(l.Persons(), s, owner)

	case KindPerson:
		if s.Tag != pathexpr.TagChildren {
			return nil, fmt.Errorf("a person holds only a children container")
		}
		if l.Person.Children == nil {
			return nil, fmt.Errorf("person %q has no children container", l.Person.ID)
		}
		return &Location{
			Kind:     KindChildren,
			Tree:     l.Tree,
			Children: l.Person.Children,
			Owner:    l.Person,
		}, nil
	}
	return nil, fmt.Errorf("unknown location kind %s", l.Kind)
}

func selectPerson(list *[]*document.Person, s pathexpr.Step, owner *document.Person) (*Location, error) {
	match := -1
	count := 0
	for i, p := range *list {
		if s.Predicate != nil && !document.SameID(p.ID, s.Predicate.Value) {
			continue
		}
		count++
		match = i
	}

	switch {
	case count == 0 && s.Predicate != nil:
		return nil, fmt.Errorf("no person with id %q", s.Predicate.Value)
	case count == 0:
		return nil, fmt.Errorf("no person")
	case count > 1:
		return nil, fmt.Errorf("%d persons match, expected exactly one", count)
	}

	return &Location{
		Kind:     KindPerson,
		Person:   (*list)[match],
		Owner:    owner,
		Siblings: list,
		Index:    match,
	}, nil
}
