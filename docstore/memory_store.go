// SPDX-License-Identifier: GPL-3.0-only

package docstore

import (
	"context"
	"maps"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]Fields{}}
}

func (s *MemoryStore) GetDocument(_ context.Context, p string) (Fields, error) {
	path, _, err := DocumentPath(p)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	return maps.Clone(fields), nil
}

func (s *MemoryStore) ListCollection(_ context.Context, c string) ([]Document, error) {
	collection, err := CollectionPath(c)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []Document
	for path, fields := range s.docs {
		if _, parent, _ := DocumentPath(path); parent == collection {
			docs = append(docs, Document{Path: path, Fields: maps.Clone(fields)})
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func (s *MemoryStore) PutDocument(_ context.Context, p string, fields Fields) error {
	path, _, err := DocumentPath(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = maps.Clone(fields)
	return nil
}
