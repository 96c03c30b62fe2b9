package storage

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries is the default capacity of a MemoryBackend.
const DefaultMemoryEntries = 4096

// MemoryBackend is a bounded in-memory backend. The least recently used
// entries are evicted first.
type MemoryBackend struct {
	cache *lru.Cache[string, []byte]
}

// NewMemoryBackend creates an in-memory backend holding up to size entries.
func NewMemoryBackend(size int) (*MemoryBackend, error) {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("creating memory cache: %w", err)
	}
	return &MemoryBackend{cache: cache}, nil
}

// Get implements Backend.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := m.cache.Get(key)
	return value, ok, nil
}

// Put implements Backend.
func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	m.cache.Add(key, value)
	return nil
}

// Len returns the number of cached entries.
func (m *MemoryBackend) Len() int {
	return m.cache.Len()
}

// Close implements Backend.
func (m *MemoryBackend) Close() error {
	m.cache.Purge()
	return nil
}
