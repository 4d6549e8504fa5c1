package pubsub

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStagePublishAndDrain(t *testing.T) {
	var processed int32
	handler := func(ctx context.Context, item int) error {
		atomic.AddInt32(&processed, 1)
		return nil
	}

	s := NewStage[int](context.Background(), "test", 16, 4, handler, zap.NewNop())
	for i := 0; i < 50; i++ {
		require.NoError(t, s.Publish(context.Background(), i))
	}
	s.Shutdown(time.Second)

	assert.Equal(t, int32(50), atomic.LoadInt32(&processed))
}

func TestStageTryPublishFailsWhenSaturated(t *testing.T) {
	block := make(chan struct{})
	handler := func(ctx context.Context, item int) error {
		<-block
		return nil
	}

	s := NewStage[int](context.Background(), "test", 1, 1, handler, zap.NewNop())
	require.NoError(t, s.TryPublish(1)) // consumed by the sole worker
	require.NoError(t, s.TryPublish(2)) // fills the capacity-1 channel

	err := s.TryPublish(3)
	require.ErrorIs(t, err, ErrQueueFull)

	close(block)
	s.Shutdown(time.Second)
}

func TestStageHandlerErrorDoesNotStopWorker(t *testing.T) {
	var processed int32
	handler := func(ctx context.Context, item int) error {
		atomic.AddInt32(&processed, 1)
		if item == 1 {
			return assert.AnError
		}
		return nil
	}

	s := NewStage[int](context.Background(), "test", 8, 2, handler, zap.NewNop())
	require.NoError(t, s.Publish(context.Background(), 1))
	require.NoError(t, s.Publish(context.Background(), 2))
	s.Shutdown(time.Second)

	assert.Equal(t, int32(2), atomic.LoadInt32(&processed))
}
