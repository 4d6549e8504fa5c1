package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store is the durable cold tier a Persistent cache falls back to on a
// clean in-memory miss, and writes through to on Put.
type Store[K comparable, V any] interface {
	Read(ctx context.Context, key K) (V, bool, error)
	Write(ctx context.Context, key K, value V) error
}

// Persistent is a write-through cache: the in-memory map is authoritative
// for reads, the Store is the cold tier consulted only on a miss, and Put
// mirrors every value to the Store before it is visible to readers.
type Persistent[K comparable, V any] struct {
	mu     sync.RWMutex
	items  map[K]V
	loader Loader[K, V]
	store  Store[K, V]
	group  singleflight.Group
}

// NewPersistent builds a Persistent cache. loader produces a value absent
// from both memory and the store (e.g. a fresh RPC fetch); store is the
// durable fallback reader/writer.
func NewPersistent[K comparable, V any](loader Loader[K, V], store Store[K, V]) *Persistent[K, V] {
	return &Persistent[K, V]{
		items:  make(map[K]V),
		loader: loader,
		store:  store,
	}
}

// GetIfPresent returns the in-memory value without consulting the store.
func (c *Persistent[K, V]) GetIfPresent(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

// Put writes the value through to the store before making it visible in
// memory, so a crash between the two never leaves memory ahead of disk.
func (c *Persistent[K, V]) Put(ctx context.Context, key K, value V) error {
	if err := c.store.Write(ctx, key, value); err != nil {
		return err
	}
	c.mu.Lock()
	c.items[key] = value
	c.mu.Unlock()
	return nil
}

// Invalidate drops key from memory only; the durable copy is untouched.
func (c *Persistent[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// GetOrLoad returns the in-memory value, else the store's durable copy
// (cached back into memory without a write-through), else runs loader and
// writes the result through to the store. Concurrent misses on the same
// key share one underlying fetch.
func (c *Persistent[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := c.GetIfPresent(key); ok {
		return v, nil
	}

	sfKey := anyKeyToString(key)
	v, err, _ := c.group.Do(sfKey, func() (interface{}, error) {
		if v, ok := c.GetIfPresent(key); ok {
			return v, nil
		}
		if v, found, err := c.store.Read(ctx, key); err == nil && found {
			c.mu.Lock()
			c.items[key] = v
			c.mu.Unlock()
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
		if err := c.Put(ctx, key, value); err != nil {
			var zero V
			return zero, err
		}
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
