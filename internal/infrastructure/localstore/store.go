package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// ErrNotFound is returned when a document id is absent from a collection.
var ErrNotFound = errors.New("localstore: document not found")

// Store is the demo-mode substitute for the real document store: a single
// JSON file holding named collections of raw documents. It is not durable or
// shared with the real backend; the two record spaces can diverge.
type Store struct {
	path string

	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

func Open(path string) (*Store, error) {
	s := &Store{
		path:        path,
		collections: make(map[string]map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.collections); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Get decodes the document with the given id into v.
func (s *Store) Get(collection, id string, v interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.collections[collection]
	if !ok {
		return ErrNotFound
	}
	raw, ok := docs[id]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, v)
}

// Set stores v under the given id, creating the collection if needed, and
// flushes the file.
func (s *Store) Set(collection, id string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.collections[collection] = docs
	}
	docs[id] = raw

	return s.flushLocked()
}

// Delete removes a document; deleting a missing document is not an error.
func (s *Store) Delete(collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil
	}
	delete(docs, id)

	return s.flushLocked()
}

// All invokes fn with each raw document in the collection. fn must not call
// back into the store.
func (s *Store) All(collection string, fn func(id string, raw json.RawMessage) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, raw := range s.collections[collection] {
		if err := fn(id, raw); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.collections, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
