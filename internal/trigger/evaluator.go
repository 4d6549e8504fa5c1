// Package trigger implements the opportunity evaluator: the stage that
// turns a debounced account-update or newly-discovered-pool signal into a
// deduplicated, rate-limited MevBotFire event for the simulate/submit
// pipeline (spec §4.6).
package trigger

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/dedup"
	"github.com/solarbx/mevcore/internal/index"
	"github.com/solarbx/mevcore/internal/ratelimit"
	"github.com/solarbx/mevcore/internal/trace"
)

// ErrNoSiblingPools is returned when a minor mint resolves to fewer than
// two pools: there is nothing to arbitrage between.
var ErrNoSiblingPools = errors.New("trigger: fewer than two pools registered for minor mint")

// ErrRateLimited is returned when ctx is cancelled while the evaluator is
// waiting on the fire limiter.
var ErrRateLimited = errors.New("trigger: cancelled waiting for fire rate limit")

// ErrDuplicateFire is returned when the same (minorMint, pools) key fired
// within the dedup window.
var ErrDuplicateFire = errors.New("trigger: duplicate fire suppressed")

// Signal is the evaluator's input: a minor mint whose candidate pool set
// may have just changed, originating at a known slot.
type Signal struct {
	MinorMint       solana.PublicKey
	OriginatingSlot uint64
	Trace           *trace.Trace
}

// Fire is the evaluator's output: a candidate MEV opportunity ready for
// the simulate/submit pipeline.
type Fire struct {
	MinorMint solana.PublicKey
	Pools     []solana.PublicKey
	Trace     *trace.Trace
}

// FireHandler consumes one Fire event.
type FireHandler func(ctx context.Context, f Fire) error

// Evaluator resolves a Signal's candidate pool set, applies dedup and
// rate limiting, and publishes the resulting Fire downstream.
type Evaluator struct {
	index   *index.Index
	dedup   *dedup.Set
	limiter *ratelimit.Fire
	publish FireHandler
	logger  *zap.Logger
}

// New builds an Evaluator. publish is called with the resulting Fire
// whenever a signal survives dedup and rate limiting.
func New(idx *index.Index, dedupSet *dedup.Set, limiter *ratelimit.Fire, publish FireHandler, logger *zap.Logger) *Evaluator {
	return &Evaluator{index: idx, dedup: dedupSet, limiter: limiter, publish: publish, logger: logger.Named("trigger")}
}

// Evaluate resolves s's candidate pools, dedups and rate-limits the
// resulting opportunity, and publishes a Fire if it survives both gates.
// Waiting on the limiter is cancelable: ctx.Done() returns ErrRateLimited
// without waiting for a token, since the limiter itself exposes no
// context-aware acquire.
func (e *Evaluator) Evaluate(ctx context.Context, s Signal) error {
	pools := e.index.PoolsForMint(s.MinorMint)
	if len(pools) < 2 {
		s.Trace.Append(trace.StepEvaluatorNoSiblingPools, map[string]string{"minor_mint": s.MinorMint.String()})
		return ErrNoSiblingPools
	}

	poolAddrs := make([]solana.PublicKey, len(pools))
	for i, p := range pools {
		poolAddrs[i] = p.Pool
	}

	key := dedup.Key(s.MinorMint, poolAddrs)
	if e.dedup.Seen(key) {
		s.Trace.Append(trace.StepEvaluatorDedupDropped, map[string]string{"key": key})
		return ErrDuplicateFire
	}

	waited := make(chan struct{})
	go func() {
		e.limiter.Take()
		close(waited)
	}()
	select {
	case <-ctx.Done():
		s.Trace.Append(trace.StepEvaluatorRateLimited, nil)
		return ErrRateLimited
	case <-waited:
	}

	fire := Fire{MinorMint: s.MinorMint, Pools: poolAddrs, Trace: s.Trace}
	if err := e.publish(ctx, fire); err != nil {
		e.logger.Warn("publish fire failed", zap.Error(err), zap.String("minor_mint", s.MinorMint.String()))
		return err
	}
	return nil
}
