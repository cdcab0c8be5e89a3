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

func TestRemovePersonCascades(t *testing.T) {
	tree := sampleTree(t)
	result, err := Remove(tree, path("person[@id='1']/children/person[@id='2']"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.RemovedCount, "Bob and Dan")
	assert.Equal(t, "Bob", result.Person.NameValue())
	assert.Nil(t, result.Children)
	assert.Equal(t, 2, result.Tree.CountPersons())
	assert.False(t, navigator.Exists(result.Tree, path("person[@id='1']/children/person[@id='2']")))
	assert.True(t, navigator.Exists(result.Tree, path("person[@id='1']/children/person[@id='3']")))

	assert.Equal(t, 4, tree.CountPersons(), "input tree must not change")
}

func TestRemoveChildrenContainer(t *testing.T) {
	tree := sampleTree(t)
	result, err := Remove(tree, path("person[@id='1']/children"))
	require.NoError(t, err)

	assert.Equal(t, 3, result.RemovedCount)
	assert.NotNil(t, result.Children)
	assert.Nil(t, result.Tree.Root().Children)
	assert.Equal(t, 1, result.Tree.CountPersons())
}

func TestRemoveRoot(t *testing.T) {
	tree := sampleTree(t)
	_, err := Remove(tree, nil)
	assert.True(t, errors.Is(err, orgerrors.ErrValidation))
}

func TestRemoveLastTopLevelPerson(t *testing.T) {
	tree := sampleTree(t)
	_, err := Remove(tree, path("person[@id='1']"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, orgerrors.ErrValidation))
}

func TestRemoveTopLevelPersonWhenOthersRemain(t *testing.T) {
	tree := sampleTree(t)
	tree.Persons = append(tree.Persons, &document.Person{ID: "100", Name: document.Ptr("Zed")})

	result, err := Remove(tree, path("person[@id='1']"))
	require.NoError(t, err)
	require.Len(t, result.Tree.Persons, 1)
	assert.Equal(t, "100", result.Tree.Root().ID)
}

func TestRemoveNotFound(t *testing.T) {
	tree := sampleTree(t)

	_, err := Remove(tree, path("person[@id='1']/children/person[@id='404']"))
	assert.True(t, errors.Is(err, orgerrors.ErrNotFound))

	// Carol has no children container.
	_, err = Remove(tree, path("person[@id='1']/children/person[@id='3']/children"))
	assert.True(t, errors.Is(err, orgerrors.ErrNotFound))
}

func TestRemoveThenReinsert(t *testing.T) {
	tree := sampleTree(t)
	removed, err := Remove(tree, path("person[@id='1']/children/person[@id='2']"))
	require.NoError(t, err)

	inserted, err := Insert(removed.Tree, path("person[@id='1']/children/person[@id='3']"), removed.Person)
	require.NoError(t, err)
	assert.Equal(t, 4, inserted.Tree.CountPersons())
	assert.True(t, navigator.Exists(inserted.Tree,
		path("person[@id='1']/children/person[@id='3']/children/person[@id='2']/children/person[@id='4']")))
}
