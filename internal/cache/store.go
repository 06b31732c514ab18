// Package cache holds rendered pages for a fixed time so repeated GETs of
// the same URI skip the handler entirely.
package cache

import (
	"context"
	"sync"
	"time"
)

// Entry is a cached response.
type Entry struct {
	Status      int    `bson:"status"`
	ContentType string `bson:"content_type"`
	Body        []byte `bson:"body"`
}

// Store keeps entries until their TTL runs out or Clear is called.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type memoryItem struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[key]
	if !ok {
		return Entry{}, false, nil
	}
	if !s.now().Before(item.expiresAt) {
		delete(s.items, key)
		return Entry{}, false, nil
	}
	return item.entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, entry Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = memoryItem{entry: entry, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]memoryItem)
	return nil
}
