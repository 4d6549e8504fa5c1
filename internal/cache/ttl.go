package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a loading cache whose entries expire after a fixed duration. A
// read past expiry is treated as a miss and triggers a fresh load; the
// stale value stays visible to GetIfPresent until the reload completes
// (this package favors availability over strict staleness).
type TTL[K comparable, V any] struct {
	mu     sync.Mutex
	items  map[K]*ttlEntry[V]
	ttl    time.Duration
	loader Loader[K, V]
	group  singleflight.Group
	now    func() time.Time
}

// NewTTL builds a TTL loading cache with the given expiry and loader.
func NewTTL[K comparable, V any](ttl time.Duration, loader Loader[K, V]) *TTL[K, V] {
	return &TTL[K, V]{
		items:  make(map[K]*ttlEntry[V]),
		ttl:    ttl,
		loader: loader,
		now:    time.Now,
	}
}

// GetIfPresent returns the cached value, including an entry past expiry
// (the caller may still want it while a reload is in flight).
func (c *TTL[K, V]) GetIfPresent(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTL[K, V]) fresh(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok || c.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put inserts or replaces a value with a fresh expiry.
func (c *TTL[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &ttlEntry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops key from the cache, if present.
func (c *TTL[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// GetOrLoad returns a non-expired cached value, reloading through the
// single-flight group on a miss or on expiry.
func (c *TTL[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := c.fresh(key); ok {
		return v, nil
	}

	sfKey := anyKeyToString(key)
	v, err, _ := c.group.Do(sfKey, func() (interface{}, error) {
		if v, ok := c.fresh(key); ok {
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
