package edit

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
)

// Operations recorded in ChangeRecord.Operation.
const (
	OpUpdate          = "update"
	OpInsert          = "insert"
	OpRemove          = "remove"
	OpCreateContainer = "create-container"
)

// ChangeRecord describes a single change made to a tree.
type ChangeRecord struct {
	// Path is the canonical path of the affected node, empty for the root.
	Path string

	// Field is the changed field ("TreeName", "name") or the node kind
	// ("person", "children") for structural changes.
	Field string

	// Operation is one of OpUpdate, OpInsert, OpRemove, OpCreateContainer.
	Operation string

	// Old and New hold the field values for OpUpdate.
	Old, New string
}

// String returns a compact description of the change.
func (c ChangeRecord) String() string {
	where := c.Path
	if where == "" {
		where = "(root)"
	}
	if c.Operation == OpUpdate {
		return fmt.Sprintf("%s %s %s: %q -> %q", c.Operation, where, c.Field, c.Old, c.New)
	}
	return fmt.Sprintf("%s %s %s", c.Operation, where, c.Field)
}

// MergeResult contains the result of a merge update.
type MergeResult struct {
	// Tree is the merged copy of the tree.
	Tree *document.Tree

	// Matched is the number of partial persons matched to existing ones.
	Matched int

	// Skipped is the number of partial persons that matched nothing.
	Skipped int

	// Changes records every field that changed value.
	Changes []ChangeRecord

	// Warnings contains non-fatal issues as plain strings.
	Warnings []string

	// StructuredWarnings contains detailed warning information.
	StructuredWarnings EditWarnings
}

// AddWarning adds a structured warning and populates the Warnings slice.
func (r *MergeResult) AddWarning(w *EditWarning) {
	r.StructuredWarnings = append(r.StructuredWarnings, w)
	r.Warnings = append(r.Warnings, w.String())
}

// HasChanges returns true if any field changed.
func (r *MergeResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// HasWarnings returns true if any warnings were generated.
func (r *MergeResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// InsertResult contains the result of an insertion.
type InsertResult struct {
	// Tree is the edited copy of the tree.
	Tree *document.Tree

	// Path is the canonical path of the inserted person.
	Path *pathexpr.Path

	// Person is the inserted person as stored in Tree.
	Person *document.Person

	// ContainerCreated is true when the target person had no children
	// container and one was created.
	ContainerCreated bool

	Changes []ChangeRecord
}

// RemoveResult contains the result of a removal.
type RemoveResult struct {
	// Tree is the edited copy of the tree.
	Tree *document.Tree

	// Path is the canonical path of the removed node.
	Path *pathexpr.Path

	// Person or Children is the detached node, depending on what the path
	// addressed.
	Person   *document.Person
	Children *document.Children

	// RemovedCount is the number of persons removed, descendants included.
	RemovedCount int

	Changes []ChangeRecord
}

// WarningCategory identifies the type of edit warning.
type WarningCategory string

const (
	// WarnNoMatch indicates a partial person matched no existing person.
	WarnNoMatch WarningCategory = "no_match"
)

// EditWarning represents a structured, non-fatal issue found while editing.
type EditWarning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// Path is the canonical path the warning refers to.
	Path string
	// Message describes the warning.
	Message string
	// Cause is the underlying error, if applicable.
	Cause error
}

// String returns a formatted warning message.
func (w *EditWarning) String() string {
	if w.Cause != nil {
		return fmt.Sprintf("%s: %v", w.Path, w.Cause)
	}
	if w.Message != "" {
		return fmt.Sprintf("%s: %s", w.Path, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Category)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (w *EditWarning) Unwrap() error {
	return w.Cause
}

// NewNoMatchWarning creates a warning for a partial person that matched no
// existing person.
func NewNoMatchWarning(path string) *EditWarning {
	return &EditWarning{
		Category: WarnNoMatch,
		Path:     path,
		Message:  "person matched no existing person and was skipped",
	}
}

// EditWarnings is a collection of EditWarning.
type EditWarnings []*EditWarning

// Strings returns the warning messages.
func (ws EditWarnings) Strings() []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		if w == nil {
			continue
		}
		result[i] = w.String()
	}
	return result
}

// ByCategory filters warnings by category.
func (ws EditWarnings) ByCategory(cat WarningCategory) EditWarnings {
	var result EditWarnings
	for _, w := range ws {
		if w != nil && w.Category == cat {
			result = append(result, w)
		}
	}
	return result
}
