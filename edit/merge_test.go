package edit

import (
	"errors"
	"testing"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/navigator"
	"github.com/erraggy/orgtree/orgerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeNameOnly(t *testing.T) {
	tree := sampleTree(t)
	partial := &document.Tree{
		Persons: []*document.Person{{ID: "1", Name: document.Ptr("Alicia")}},
	}

	result, err := NewMerger().Merge(tree, partial)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, ChangeRecord{
		Path:      "person[@id='1']",
		Field:     document.TagName,
		Operation: OpUpdate,
		Old:       "Alice",
		New:       "Alicia",
	}, result.Changes[0])

	merged := result.Tree
	assert.Equal(t, "Acme", merged.NameValue())
	assert.Equal(t, "Alicia", merged.Root().NameValue())
	assert.Equal(t, 4, merged.CountPersons(), "absent children must be left untouched")
}

func TestMergeTreeName(t *testing.T) {
	tree := sampleTree(t)
	partial := &document.Tree{TreeName: document.Ptr("Acme Corp")}

	result, err := NewMerger().Merge(tree, partial)
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", result.Tree.NameValue())
	require.Len(t, result.Changes, 1)
	assert.Equal(t, document.TagTreeName, result.Changes[0].Field)
	assert.Equal(t, "", result.Changes[0].Path)
}

func TestMergeSameValueRecordsNoChange(t *testing.T) {
	tree := sampleTree(t)
	partial := &document.Tree{
		TreeName: document.Ptr("Acme"),
		Persons:  []*document.Person{{ID: "1", Name: document.Ptr("Alice")}},
	}

	result, err := NewMerger().Merge(tree, partial)
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
	assert.Equal(t, 1, result.Matched)
}

func TestMergeNested(t *testing.T) {
	tree := sampleTree(t)
	partial := &document.Tree{
		Persons: []*document.Person{{
			ID: "1",
			Children: &document.Children{Persons: []*document.Person{{
				ID: "2",
				Children: &document.Children{Persons: []*document.Person{
					{ID: "4", Name: document.Ptr("Daniel")},
				}},
			}}},
		}},
	}

	result, err := NewMerger().Merge(tree, partial)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Matched)

	loc, err := navigator.Resolve(result.Tree, path("person[@id='1']/children/person[@id='2']/children/person[@id='4']"))
	require.NoError(t, err)
	assert.Equal(t, "Daniel", loc.Person.NameValue())

	// Untouched names survive.
	assert.Equal(t, "Alice", result.Tree.Root().NameValue())
	bob, err := navigator.Resolve(result.Tree, path("person[@id='1']/children/person[@id='2']"))
	require.NoError(t, err)
	assert.Equal(t, "Bob", bob.Person.NameValue())
}

func TestMergeUnmatchedIsSkipped(t *testing.T) {
	tree := sampleTree(t)
	partial := &document.Tree{
		Persons: []*document.Person{
			{ID: "99", Name: document.Ptr("Ghost")},
			{ID: "1", Name: document.Ptr("Alicia")},
		},
	}

	result, err := NewMerger().Merge(tree, partial)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Matched)
	assert.True(t, result.HasWarnings())
	require.Len(t, result.StructuredWarnings.ByCategory(WarnNoMatch), 1)
	assert.Equal(t, "person[@id='99']", result.StructuredWarnings[0].Path)
	assert.Equal(t, 4, result.Tree.CountPersons(), "merge never inserts")
}

func TestMergeStrictTargets(t *testing.T) {
	tree := sampleTree(t)
	partial := &document.Tree{
		Persons: []*document.Person{{
			ID: "1",
			Children: &document.Children{Persons: []*document.Person{
				{ID: "42", Name: document.Ptr("Nobody")},
			}},
		}},
	}

	_, err := (&Merger{StrictTargets: true}).Merge(tree, partial)
	require.Error(t, err)
	assert.True(t, errors.Is(err, orgerrors.ErrNotFound))

	var nf *orgerrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "person[@id='1']/children/person[@id='42']", nf.Path)
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	tree := sampleTree(t)
	before, err := document.MarshalTree(tree)
	require.NoError(t, err)

	partial := &document.Tree{
		TreeName: document.Ptr("Other"),
		Persons:  []*document.Person{{ID: "1", Name: document.Ptr("Changed")}},
	}
	_, err = NewMerger().Merge(tree, partial)
	require.NoError(t, err)

	after, err := document.MarshalTree(tree)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestMergeNormalizedIDMatch(t *testing.T) {
	tree := sampleTree(t)
	partial := &document.Tree{
		Persons: []*document.Person{{ID: " 1 ", Name: document.Ptr("Alicia")}},
	}

	result, err := NewMerger().Merge(tree, partial)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, "Alicia", result.Tree.Root().NameValue())
}

func TestMergeNilInputs(t *testing.T) {
	_, err := NewMerger().Merge(nil, &document.Tree{})
	assert.Error(t, err)
	_, err = NewMerger().Merge(&document.Tree{}, nil)
	assert.Error(t, err)
}
