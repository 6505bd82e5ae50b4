// Package querycache is a small keyed cache for server reads. Concurrent
// fetches of one key share a single request, and Clear drops every key so
// that nothing started before the Clear can repopulate the cache.
package querycache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value any
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	gen     uint64
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Fetch returns the cached value for key or runs fn to produce it.
// Errors are not cached.
func (c *Cache) Fetch(ctx context.Context, key string, fn FetchFunc) (any, error) {
	if v, ok := c.Peek(key); ok {
		return v, nil
	}

	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	// The generation is part of the flight key so a fetch started before a
	// Clear is never shared with callers arriving after it.
	v, err, _ := c.group.Do(fmt.Sprintf("%d:%s", gen, key), func() (any, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.entries[key] = entry{value: v}
		}
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// Peek returns the cached value without fetching.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.value, ok
}

// Set seeds key directly.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value}
	c.mu.Unlock()
}

// Invalidate removes key so the next Fetch goes to the server.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops every key.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.gen++
	c.mu.Unlock()
}

// Generation counts Clear calls.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Get is a typed Fetch.
func Get[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("querycache: key %q holds %T", key, v)
	}
	return t, nil
}
