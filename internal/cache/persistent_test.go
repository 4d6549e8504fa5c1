package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data map[string]int
}

func newMemStore() *memStore { return &memStore{data: make(map[string]int)} }

func (s *memStore) Read(ctx context.Context, key string) (int, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Write(ctx context.Context, key string, value int) error {
	s.data[key] = value
	return nil
}

func TestPersistentFallsBackToStoreBeforeLoader(t *testing.T) {
	store := newMemStore()
	store.data["k"] = 7

	loaderCalled := false
	c := NewPersistent[string, int](func(ctx context.Context, key string) (int, bool, error) {
		loaderCalled = true
		return 99, true, nil
	}, store)

	v, err := c.GetOrLoad(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.False(t, loaderCalled, "store hit must not invoke the loader")
}

func TestPersistentPutWritesThroughBeforeVisible(t *testing.T) {
	store := newMemStore()
	c := NewPersistent[string, int](func(ctx context.Context, key string) (int, bool, error) {
		return 0, false, nil
	}, store)

	require.NoError(t, c.Put(context.Background(), "k", 5))

	v, ok := store.data["k"]
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	v, ok = c.GetIfPresent("k")
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}
