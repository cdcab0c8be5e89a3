// Package edit implements the structural mutations of an organization tree:
// merge update, node insertion and node removal.
//
// Every operation works on a deep copy of the input tree and returns the
// edited copy in its result. A failed operation therefore never leaves a
// partially modified tree behind, and callers commit a change by replacing
// their tree with the result's Tree.
//
// # Merge update
//
// A partial document overwrites only the fields it carries. Persons in the
// partial document are matched by id against the existing siblings at the
// same position, and matched persons' children are merged recursively:
//
//	m := edit.NewMerger()
//	result, err := m.Merge(tree, partial)
//	if err != nil {
//	    return err
//	}
//	tree = result.Tree
//
// Partial persons that match nothing are skipped and reported as warnings.
// With StrictTargets set they fail the merge with *orgerrors.NotFoundError
// instead. A merge never inserts or removes persons.
//
// # Insert and remove
//
//	result, err := edit.Insert(tree, pathexpr.MustParse("person[@id='1']/children"), person)
//	result, err := edit.Remove(tree, pathexpr.MustParse("person[@id='1']/children/person[@id='2']"))
//
// Insert appends the new person last under the root, a children container,
// or a person (creating its container when absent). Remove detaches a person
// or a container together with its whole subtree; the last top-level person
// cannot be removed.
package edit
