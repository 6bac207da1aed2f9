package tmpstore

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	data      Rendered
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Expired entries are dropped when they are read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry

	// now is replaced in tests
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (store *MemoryStore) SaveRendered(_ context.Context, key string, data Rendered, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries[key] = entry{data: data, expiresAt: store.now().Add(ttl)}
	return nil
}

func (store *MemoryStore) GetRendered(_ context.Context, key string) (*Rendered, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	e, ok := store.entries[key]
	if !ok {
		return nil, ErrNotFound
	}

	if !store.now().Before(e.expiresAt) {
		delete(store.entries, key)
		return nil, ErrNotFound
	}

	data := e.data
	return &data, nil
}

func (store *MemoryStore) DeleteRendered(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, key)
	return nil
}
