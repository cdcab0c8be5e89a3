package registry

import (
	"maps"
	"slices"
	"sync"
)

// Store persists rendered tree documents by id.
type Store interface {
	// Save writes the document for id, replacing any previous version.
	Save(id int64, data []byte) error
	// Delete removes the document for id. Deleting a missing id is not an error.
	Delete(id int64) error
	// LoadAll calls fn for every stored document in ascending id order.
	LoadAll(fn func(id int64, data []byte) error) error
}

// MemoryStore is a Store that keeps documents in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[int64][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[int64][]byte)}
}

// Save implements Store.
func (s *MemoryStore) Save(id int64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = slices.Clone(data)
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// LoadAll implements Store.
func (s *MemoryStore) LoadAll(fn func(id int64, data []byte) error) error {
	s.mu.Lock()
	ids := slices.Sorted(maps.Keys(s.docs))
	docs := make([][]byte, len(ids))
	for i, id := range ids {
		docs[i] = slices.Clone(s.docs[id])
	}
	s.mu.Unlock()

	for i, id := range ids {
		if err := fn(id, docs[i]); err != nil {
			return err
		}
	}
	return nil
}
