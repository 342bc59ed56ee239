package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// FilterFunc is a generic filter function type
type FilterFunc[T any] func(ctx context.Context, item T) bool

// SortFunc is a generic sort function type
type SortFunc[T any] func(i, j T) bool

// InMemoryStore implements a generic in-memory store keyed by a storage assigned identity
type InMemoryStore[T any] struct {
	mu     sync.RWMutex
	items  map[int64]T
	nextID int64
}

// NewInMemoryStore creates a new InMemoryStore
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[int64]T),
	}
}

// NextID reserves the next identity, starting at 1
func (s *InMemoryStore[T]) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

// Create adds a new item to the store
func (s *InMemoryStore[T]) Create(ctx context.Context, id int64, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return fmt.Errorf("item %d already exists", id)
	}

	s.items[id] = item
	return nil
}

// Get retrieves an item by ID
func (s *InMemoryStore[T]) Get(ctx context.Context, id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	return item, exists
}

// List retrieves the items accepted by filterFn, ordered by sortFn
func (s *InMemoryStore[T]) List(ctx context.Context, filterFn FilterFunc[T], sortFn SortFunc[T]) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item) {
			result = append(result, item)
		}
	}

	if sortFn != nil {
		sort.Slice(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}
	return result
}

// Count returns the number of stored items
func (s *InMemoryStore[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Modify applies fn to the stored item under the write lock and stores what it
// returns. It reports false when the id is unknown.
func (s *InMemoryStore[T]) Modify(ctx context.Context, id int64, fn func(item T) T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		var zero T
		return zero, false
	}

	s.items[id] = fn(item)
	return s.items[id], true
}

// Delete removes an item from the store
func (s *InMemoryStore[T]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return fmt.Errorf("item %d not found", id)
	}

	delete(s.items, id)
	return nil
}
