package edit

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/orgerrors"
)

// Merger applies partial documents to trees.
type Merger struct {
	// StrictTargets causes Merge to fail when a partial person matches no
	// existing person.
	StrictTargets bool
}

// NewMerger creates a new Merger with default settings.
func NewMerger() *Merger {
	return &Merger{
		StrictTargets: false,
	}
}

// Merge applies partial to a copy of tree. Present fields overwrite, absent
// fields are left untouched. The input tree is never modified.
func (m *Merger) Merge(tree, partial *document.Tree) (*MergeResult, error) {
	if tree == nil {
		return nil, fmt.Errorf("edit: nil tree")
	}
	if partial == nil {
		return nil, fmt.Errorf("edit: nil partial document")
	}

	work := tree.Clone()
	result := &MergeResult{Tree: work}

	if partial.TreeName != nil && (work.TreeName == nil || *work.TreeName != *partial.TreeName) {
		result.Changes = append(result.Changes, ChangeRecord{
			Field:     document.TagTreeName,
			Operation: OpUpdate,
			Old:       work.NameValue(),
			New:       *partial.TreeName,
		})
		work.TreeName = document.Ptr(*partial.TreeName)
	}

	if err := m.mergePersons(work.Persons, partial.Persons, nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// mergePersons matches incoming persons against existing siblings by id.
// existing holds pointers into the working copy, so updates land there.
func (m *Merger) mergePersons(existing, incoming []*document.Person, parent *pathexpr.Path, result *MergeResult) error {
	for _, in := range incoming {
		here := pathexpr.Join(parent, pathexpr.PersonStep(in.ID))

		idx := document.IndexOf(existing, in.ID)
		if idx < 0 {
			if m.StrictTargets {
				return &orgerrors.NotFoundError{
					Resource: "node",
					Path:     here.String(),
					Message:  "partial document targets a person that does not exist",
				}
			}
			result.AddWarning(NewNoMatchWarning(here.String()))
			result.Skipped++
			continue
		}

		cur := existing[idx]
		result.Matched++

		if in.Name != nil && (cur.Name == nil || *cur.Name != *in.Name) {
			result.Changes = append(result.Changes, ChangeRecord{
				Path:      here.String(),
				Field:     document.TagName,
				Operation: OpUpdate,
				Old:       cur.NameValue(),
				New:       *in.Name,
			})
			cur.Name = document.Ptr(*in.Name)
		}

		if in.Children != nil {
			err := m.mergePersons(cur.ChildPersons(), in.Children.Persons, here.Append(pathexpr.ChildrenStep()), result)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
