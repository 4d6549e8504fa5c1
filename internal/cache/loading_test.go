package cache

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadingGetOrLoadDeduplicatesConcurrentMisses(t *testing.T) {
	var calls int32
	loader := func(ctx context.Context, key string) (int, bool, error) {
		atomic.AddInt32(&calls, 1)
		return 42, true, nil
	}
	c := NewLoading[string, int](10, loader)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			v, err := c.GetOrLoad(context.Background(), "k")
			require.NoError(t, err)
			assert.Equal(t, 42, v)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoadingEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLoading[string, int](2, func(ctx context.Context, key string) (int, bool, error) {
		return 0, false, nil
	})
	c.Put("a", 1)
	c.Put("b", 2)
	c.GetIfPresent("a") // touch a, making b the LRU victim
	c.Put("c", 3)

	_, ok := c.GetIfPresent("b")
	assert.False(t, ok)
	_, ok = c.GetIfPresent("a")
	assert.True(t, ok)
	_, ok = c.GetIfPresent("c")
	assert.True(t, ok)
}

func TestLoadingNotFoundIsNotCached(t *testing.T) {
	var calls int32
	c := NewLoading[string, int](10, func(ctx context.Context, key string) (int, bool, error) {
		atomic.AddInt32(&calls, 1)
		return 0, false, nil
	})

	_, err := c.GetOrLoad(context.Background(), "missing")
	require.Error(t, err)
	_, err = c.GetOrLoad(context.Background(), "missing")
	require.Error(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
