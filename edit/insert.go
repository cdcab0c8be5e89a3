package edit

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/navigator"
	"github.com/erraggy/orgtree/orgerrors"
)

// Insert appends a copy of person as the last child at parent in a copy of
// tree. parent may address the root (nil path), a children container, or a
// person; a person without a children container gets one, whether it is
// addressed directly or through its (missing) children step.
//
// Errors:
//   - *orgerrors.NotFoundError when parent does not resolve
//   - *orgerrors.ValidationError when person is nil or lacks an id
//   - *orgerrors.ConflictError when the id collides with a sibling, or the
//     fragment itself repeats an id among siblings
func Insert(tree *document.Tree, parent *pathexpr.Path, person *document.Person) (*InsertResult, error) {
	if tree == nil {
		return nil, fmt.Errorf("edit: nil tree")
	}
	if err := checkFragment(person, nil); err != nil {
		return nil, err
	}

	work := tree.Clone()
	loc, err := resolveParent(work, parent)
	if err != nil {
		return nil, err
	}

	node := person.Clone()
	node.ID = document.NormalizeText(node.ID)
	result := &InsertResult{Tree: work, Person: node}

	var (
		list      *[]*document.Person
		container *pathexpr.Path
	)
	switch loc.Kind {
	case navigator.KindRoot:
		list = &work.Persons
	case navigator.KindChildren:
		list = &loc.Children.Persons
		container = loc.Path
	case navigator.KindPerson:
		container = loc.Path.Append(pathexpr.ChildrenStep())
		if loc.Person.Children == nil {
			loc.Person.Children = &document.Children{Persons: []*document.Person{}}
			result.ContainerCreated = true
			result.Changes = append(result.Changes, ChangeRecord{
				Path:      container.String(),
				Field:     document.TagChildren,
				Operation: OpCreateContainer,
			})
		}
		list = &loc.Person.Children.Persons
	}

	if document.IndexOf(*list, node.ID) >= 0 {
		where := container.String()
		if where == "" {
			where = "(root)"
		}
		return nil, &orgerrors.ConflictError{Path: where, ID: node.ID}
	}

	*list = append(*list, node)
	result.Path = pathexpr.Join(container, pathexpr.PersonStep(node.ID))
	result.Changes = append(result.Changes, ChangeRecord{
		Path:      result.Path.String(),
		Field:     document.TagPerson,
		Operation: OpInsert,
	})
	return result, nil
}

// resolveParent resolves parent in tree. A path ending in a children step
// whose owning person has no container yet resolves to that person, so the
// insert creates the container.
func resolveParent(tree *document.Tree, parent *pathexpr.Path) (*navigator.Location, error) {
	loc, err := navigator.Resolve(tree, parent)
	if err == nil || parent.IsRoot() || parent.Last().Tag != pathexpr.TagChildren {
		return loc, err
	}

	owner, ownerErr := navigator.Resolve(tree, parent.Parent())
	if ownerErr != nil || owner.Kind != navigator.KindPerson || owner.Person.Children != nil {
		return nil, err
	}
	return owner, nil
}

// checkFragment verifies every person in the fragment has an id and that
// ids are unique among siblings inside it.
func checkFragment(p *document.Person, parent *pathexpr.Path) error {
	if p == nil {
		return &orgerrors.ValidationError{Field: document.TagPerson, Message: "fragment is empty"}
	}
	if document.NormalizeText(p.ID) == "" {
		return &orgerrors.ValidationError{
			Path:    parent.String(),
			Field:   document.AttrID,
			Message: "person is missing its id attribute",
		}
	}

	here := pathexpr.Join(parent, pathexpr.PersonStep(p.ID))
	container := here.Append(pathexpr.ChildrenStep())
	seen := make(map[string]bool, len(p.ChildPersons()))
	for _, c := range p.ChildPersons() {
		id := document.NormalizeText(c.ID)
		if id != "" && seen[id] {
			return &orgerrors.ConflictError{
				Path:    container.String(),
				ID:      id,
				Message: "fragment repeats an id among siblings",
			}
		}
		seen[id] = true
		if err := checkFragment(c, container); err != nil {
			return err
		}
	}
	return nil
}
