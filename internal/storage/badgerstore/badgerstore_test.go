package badgerstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/orgtree/registry"
)

var _ registry.Store = (*Store)(nil)

func TestSaveGetDelete(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(7, []byte("<Tree/>")))
	data, ok, err := s.Get(7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<Tree/>", string(data))

	require.NoError(t, s.Delete(7))
	_, ok, err = s.Get(7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadAllOrdersByID(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	for _, id := range []int64{300, 2, 256, 1} {
		require.NoError(t, s.Save(id, []byte{byte(id)}))
	}

	var ids []int64
	require.NoError(t, s.LoadAll(func(id int64, _ []byte) error {
		ids = append(ids, id)
		return nil
	}))
	assert.Equal(t, []int64{1, 2, 256, 300}, ids)
}

func TestPersistsAcrossReopen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = t.TempDir()
	cfg.SyncWrites = false
	cfg.GCInterval = 0

	s, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Save(1, []byte("one")))
	require.NoError(t, s.Close())

	s, err = Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	data, ok, err := s.Get(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", string(data))
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestRegistryRestoresFromBadger(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	first, err := registry.New(registry.WithStore(s))
	require.NoError(t, err)
	id, err := first.Create([]byte(`<Tree><TreeName>T</TreeName><person id="1"><name>A</name></person></Tree>`))
	require.NoError(t, err)
	_, err = first.InsertNode(id, "person[@id='1']/children", []byte(`<person id="2"><name>B</name></person>`))
	require.NoError(t, err)

	second, err := registry.New(registry.WithStore(s))
	require.NoError(t, err)
	n, err := second.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tree, err := second.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.CountPersons())
}
