package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleTree(t *testing.T) {
	tree := SampleTree(t)
	assert.Equal(t, "Acme", tree.NameValue())
	assert.Equal(t, 4, tree.CountPersons())
	require.Len(t, tree.Persons, 1)
	assert.Len(t, tree.Persons[0].ChildPersons(), 2)
}

func TestMinimalTree(t *testing.T) {
	tree := LoadTree(t, MinimalTreeXML)
	assert.Equal(t, 1, tree.CountPersons())
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "tree.xml", MinimalTreeXML)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, MinimalTreeXML, string(data))
}
