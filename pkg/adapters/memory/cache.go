// Package memory implements the result cache in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/covetools/cove/pkg/ports"
)

// Cache is a concurrency-safe in-memory result cache.
type Cache struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{values: make(map[string]any)}
}

var _ ports.ResultCache = (*Cache)(nil)

// Get returns the cached value for key.
func (c *Cache) Get(ctx context.Context, key string) (any, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok, nil
}

// Set stores a value under key.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// Delete removes the entry for key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}
