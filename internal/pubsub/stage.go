// Package pubsub implements the bounded-channel worker-pool stage every
// named pipeline step runs on: InvolvedAccountTxProcessor,
// OwnerAccountDebouncer, NewPoolProcessor, PoolUpdateProcessor,
// MevBotTxProcessor, FireMevBotConsumer (spec §4.4).
package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by TryPublish when the stage's channel is
// saturated and the caller opted out of back-pressure.
var ErrQueueFull = errors.New("pubsub: queue full")

// Handler processes one item published to a Stage. A returned error is
// logged; it never stops the worker or the stage.
type Handler[T any] func(ctx context.Context, item T) error

// Stage is a named bounded channel fed by Publish/TryPublish and drained by
// a fixed-size worker pool running Handler concurrently. Order between
// stages, and between workers within a stage, is not preserved.
type Stage[T any] struct {
	name    string
	ch      chan T
	handler Handler[T]
	logger  *zap.Logger

	wg       sync.WaitGroup
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewStage builds and starts a Stage with the given channel capacity and
// worker pool size. The returned Stage is live: its workers goroutines are
// already running.
func NewStage[T any](ctx context.Context, name string, capacity, workers int, handler Handler[T], logger *zap.Logger) *Stage[T] {
	stageCtx, cancel := context.WithCancel(ctx)
	s := &Stage[T]{
		name:    name,
		ch:      make(chan T, capacity),
		handler: handler,
		logger:  logger.Named(name),
		cancel:  cancel,
	}

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker(stageCtx)
	}
	return s
}

func (s *Stage[T]) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-s.ch:
			if !ok {
				return
			}
			if err := s.handler(ctx, item); err != nil {
				s.logger.Error("stage handler error", zap.Error(err))
			}
		}
	}
}

// Publish blocks until the stage has room for item or ctx is done.
func (s *Stage[T]) Publish(ctx context.Context, item T) error {
	select {
	case s.ch <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryPublish enqueues item without blocking, failing with ErrQueueFull if
// the channel is saturated.
func (s *Stage[T]) TryPublish(item T) error {
	select {
	case s.ch <- item:
		return nil
	default:
		return fmt.Errorf("%s: %w", s.name, ErrQueueFull)
	}
}

// Shutdown stops accepting new publishes and waits for in-flight items to
// drain, up to deadline. Workers observe ctx cancellation and exit even if
// the channel still holds undrained items past the deadline.
func (s *Stage[T]) Shutdown(deadline time.Duration) {
	s.stopOnce.Do(func() {
		defer s.cancel()
		close(s.ch)

		drained := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(drained)
		}()

		select {
		case <-drained:
		case <-time.After(deadline):
			s.logger.Warn("stage shutdown deadline exceeded, cancelling workers")
			s.cancel()
			<-drained
		}
	})
}

// Name returns the stage's identifier, used for metrics and log scoping.
func (s *Stage[T]) Name() string { return s.name }
