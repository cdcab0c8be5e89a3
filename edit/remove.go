package edit

import (
	"fmt"
	"slices"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/navigator"
	"github.com/erraggy/orgtree/orgerrors"
)

// Remove detaches the node at path, with its whole subtree, from a copy of
// tree. path may address a person or a children container.
//
// Errors:
//   - *orgerrors.NotFoundError when path does not resolve
//   - *orgerrors.ValidationError when path is the root, or addresses the
//     last remaining top-level person
func Remove(tree *document.Tree, path *pathexpr.Path) (*RemoveResult, error) {
	if tree == nil {
		return nil, fmt.Errorf("edit: nil tree")
	}
	if path.IsRoot() {
		return nil, &orgerrors.ValidationError{
			Field:   "path",
			Message: "cannot remove the tree root",
		}
	}

	work := tree.Clone()
	loc, err := navigator.Resolve(work, path)
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{Tree: work, Path: loc.Path}

	switch loc.Kind {
	case navigator.KindPerson:
		if loc.Owner == nil && len(work.Persons) == 1 {
			return nil, &orgerrors.ValidationError{
				Path:    loc.Path.String(),
				Field:   document.TagPerson,
				Message: "cannot remove the last top-level person, a tree must retain a root",
			}
		}
		result.Person = loc.Person
		result.RemovedCount = loc.Person.CountPersons()
		*loc.Siblings = slices.Delete(*loc.Siblings, loc.Index, loc.Index+1)
		result.Changes = append(result.Changes, ChangeRecord{
			Path:      loc.Path.String(),
			Field:     document.TagPerson,
			Operation: OpRemove,
		})

	case navigator.KindChildren:
		result.Children = loc.Children
		result.RemovedCount = loc.Children.CountPersons()
		loc.Owner.Children = nil
		result.Changes = append(result.Changes, ChangeRecord{
			Path:      loc.Path.String(),
			Field:     document.TagChildren,
			Operation: OpRemove,
		})

	default:
		return nil, fmt.Errorf("edit: cannot remove a %s", loc.Kind)
	}

	return result, nil
}
