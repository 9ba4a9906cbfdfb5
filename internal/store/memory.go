package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
	now  func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Document),
		now:  time.Now,
	}
}

// Save implements Persister.
func (s *MemoryStore) Save(ctx context.Context, id, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := parseID(id)
	if err != nil {
		return err
	}
	if err := checkSanitized(content); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := u.String()
	doc := s.docs[key]
	s.docs[key] = Document{
		ID:        key,
		Content:   content,
		Revision:  doc.Revision + 1,
		UpdatedAt: s.now(),
	}
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	u, err := parseID(id)
	if err != nil {
		return Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[u.String()]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return doc, nil
}

// List implements Store. Documents are ordered by ID.
func (s *MemoryStore) List(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Document) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := parseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[u.String()]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.docs, u.String())
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
