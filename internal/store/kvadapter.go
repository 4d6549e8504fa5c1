package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/solarbx/mevcore/internal/cache"
)

// KVAdapter binds a KVCache to one cache-type namespace and a concrete
// value type, satisfying cache.Store[string, V] so a Persistent cache can
// use the durable kv_cache table as its cold tier without every caller
// hand-rolling JSON marshaling.
type KVAdapter[V any] struct {
	kv        KVCache
	cacheType string
	ttl       time.Duration
}

// NewKVAdapter builds a KVAdapter scoped to cacheType, writing entries
// with the given validity window.
func NewKVAdapter[V any](kv KVCache, cacheType string, ttl time.Duration) *KVAdapter[V] {
	return &KVAdapter[V]{kv: kv, cacheType: cacheType, ttl: ttl}
}

var _ cache.Store[string, int] = (*KVAdapter[int])(nil)

func (a *KVAdapter[V]) Read(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, found, err := a.kv.Read(ctx, a.cacheType, key)
	if err != nil || !found {
		return zero, found, err
	}
	var v V
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (a *KVAdapter[V]) Write(ctx context.Context, key string, value V) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return a.kv.Write(ctx, a.cacheType, key, string(raw), time.Now().Add(a.ttl))
}
