package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryDocumentStore is an in-memory implementation of DocumentStore,
// used in tests and local development without a Redis instance.
type MemoryDocumentStore struct {
	docs map[string][]byte
	mu   sync.RWMutex
}

// NewMemoryDocumentStore creates a new instance of MemoryDocumentStore.
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string][]byte)}
}

// Put marshals the document to JSON and overwrites any previous state.
func (s *MemoryDocumentStore) Put(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", collection, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[documentKey(collection, id)] = data
	return nil
}

// Get retrieves the raw JSON of a single document.
func (s *MemoryDocumentStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[documentKey(collection, id)]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return data, nil
}

// Delete removes a single document.
func (s *MemoryDocumentStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, documentKey(collection, id))
	return nil
}

// List returns the raw JSON of every document in a collection.
func (s *MemoryDocumentStore) List(ctx context.Context, collection string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefix := collection + ":"
	var docs [][]byte
	for key, data := range s.docs {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			docs = append(docs, data)
		}
	}
	return docs, nil
}
