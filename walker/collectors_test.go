package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPersons(t *testing.T) {
	c, err := CollectPersons(testTree())
	require.NoError(t, err)

	require.Len(t, c.All, 5)
	assert.Equal(t, 3, c.MaxDepth)

	info, ok := c.ByPath["person[@id='1']/children/person[@id='2']/children/person[@id='4']"]
	require.True(t, ok)
	assert.Equal(t, "D", info.Person.NameValue())
	assert.Equal(t, 3, info.Depth)

	ids := make([]string, 0, len(c.All))
	for _, p := range c.All {
		ids = append(ids, p.Person.ID)
	}
	assert.Equal(t, []string{"1", "2", "4", "3", "5"}, ids)
}

func TestCollectPersons_NilTree(t *testing.T) {
	_, err := CollectPersons(nil)
	assert.Error(t, err)
}
