package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNamedAllowRespectsBurst(t *testing.T) {
	n := NewNamed("test", 1, 3)

	allowed := 0
	for i := 0; i < 5; i++ {
		if n.Allow() {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed, "only burst tokens available immediately")
}

func TestNamedWaitUnblocksWhenTokenAvailable(t *testing.T) {
	n := NewNamed("test", 100, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, n.Wait(ctx))
}

func TestFireTakeReturnsPromptlyWithinSlack(t *testing.T) {
	f := NewFire(10, 5)
	start := time.Now()
	for i := 0; i < 3; i++ {
		f.Take()
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestDefaultSetBuildsAllThreeLimiters(t *testing.T) {
	s := DefaultSet()
	assert.NotNil(t, s.RPCQuery)
	assert.NotNil(t, s.Simulation)
	assert.NotNil(t, s.Fire)
}
