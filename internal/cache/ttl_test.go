package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLReloadsAfterExpiry(t *testing.T) {
	calls := 0
	c := NewTTL[string, int](time.Minute, func(ctx context.Context, key string) (int, bool, error) {
		calls++
		return calls, true, nil
	})

	clock := time.Now()
	c.now = func() time.Time { return clock }

	v, err := c.GetOrLoad(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = c.GetOrLoad(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 1, v, "cached value served before expiry")

	clock = clock.Add(2 * time.Minute)
	v, err = c.GetOrLoad(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 2, v, "expired entry triggers reload")
}
