// Package cache implements the three loading-cache archetypes the pipeline
// shares across pool, mint, and config lookups: a bounded LRU loading
// cache, a TTL variant, and a persistent cache with durable-store fallback.
// All three run their loader under a per-key singleflight lock so a cache
// stampede on a hot key executes the loader once, not once per waiter.
package cache

import (
	"container/list"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader produces the value for a key on a cache miss. A nil error with
// found == false is treated as "not found" and is never stored.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, bool, error)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Loading is a bounded LRU cache that loads missing keys through a single
// shared Loader, deduplicating concurrent misses on the same key.
type Loading[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	loader   Loader[K, V]
	group    singleflight.Group
}

// NewLoading builds a Loading cache with the given capacity and loader.
// capacity <= 0 means unbounded.
func NewLoading[K comparable, V any](capacity int, loader Loader[K, V]) *Loading[K, V] {
	return &Loading[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
		loader:   loader,
	}
}

// GetIfPresent returns the cached value without triggering a load.
func (c *Loading[K, V]) GetIfPresent(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Put inserts or replaces a value, evicting the least-recently-used entry
// if the cache is at capacity.
func (c *Loading[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(key, value)
}

func (c *Loading[K, V]) putLocked(key K, value V) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[K, V]{key: key, value: value})
	c.items[key] = el

	if c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[K, V]).key)
		}
	}
}

// Invalidate drops key from the cache, if present.
func (c *Loading[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.Remove(el)
		delete(c.items, key)
	}
}

// GetOrLoad returns the cached value, loading it through the single-flight
// group on a miss. Concurrent callers for the same key observe one loader
// invocation; a loader that reports "not found" is not cached.
func (c *Loading[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := c.GetIfPresent(key); ok {
		return v, nil
	}

	sfKey := anyKeyToString(key)
	v, err, _ := c.group.Do(sfKey, func() (interface{}, error) {
		if v, ok := c.GetIfPresent(key); ok {
			return v, nil
		}
		value, found, err := c.loader(ctx, key)
		if err != nil {
			var zero V
			return zero, err
		}
		if !found {
			var zero V
			return zero, errNotFound
		}
		c.Put(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
