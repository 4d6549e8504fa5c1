package pipeline

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/debounce"
	"github.com/solarbx/mevcore/internal/dex"
	"github.com/solarbx/mevcore/internal/pubsub"
	"github.com/solarbx/mevcore/internal/submit"
	"github.com/solarbx/mevcore/internal/subscription"
	"github.com/solarbx/mevcore/internal/trace"
	"github.com/solarbx/mevcore/internal/trigger"
)

// Stages holds the live named pub/sub stages spec §4.4 calls the core,
// plus the debouncer OwnerAccountDebouncer is built atop. Run starts the
// two subscriptions feeding them; Shutdown drains every stage within its
// configured deadline.
type Stages struct {
	env *Environment

	involvedAccountTxProcessor *pubsub.Stage[subscription.AccountUpdate]
	ownerAccountDebouncer      *debounce.Debouncer[solana.PublicKey, solana.PublicKey]
	newPoolProcessor           *pubsub.Stage[subscription.TransactionUpdate]
	poolUpdateProcessor        *pubsub.Stage[trigger.Signal]
	mevBotTxProcessor          *pubsub.Stage[subscription.TransactionUpdate]
	fireMevBotConsumer         *pubsub.Stage[trigger.Fire]
}

// Wire constructs every named stage and the evaluator that sits between
// PoolUpdateProcessor and FireMevBotConsumer. ctx governs every worker
// goroutine's lifetime; stopping ctx is equivalent to calling Shutdown with
// a zero deadline.
func Wire(ctx context.Context, env *Environment) *Stages {
	chanCap, workers := env.Config.StageChannelCap, env.Config.StageWorkers
	logger := env.Logger

	s := &Stages{env: env}

	s.fireMevBotConsumer = pubsub.NewStage(ctx, "FireMevBotConsumer", chanCap, workers, s.handleFire, logger)

	env.Evaluator = trigger.New(env.Index, env.Dedup, env.RateLimit.Fire, s.publishFire, logger)

	s.poolUpdateProcessor = pubsub.NewStage(ctx, "PoolUpdateProcessor", chanCap, workers, s.handlePoolUpdateSignal, logger)

	s.ownerAccountDebouncer = debounce.New(env.Config.DebounceWindow, s.emitDebounced)

	s.involvedAccountTxProcessor = pubsub.NewStage(ctx, "InvolvedAccountTxProcessor", chanCap, workers, s.handleAccountUpdate, logger)
	s.newPoolProcessor = pubsub.NewStage(ctx, "NewPoolProcessor", chanCap, workers, s.handleNewPoolTx, logger)
	s.mevBotTxProcessor = pubsub.NewStage(ctx, "MevBotTxProcessor", chanCap, workers, s.handleMevBotTx, logger)

	return s
}

// Run starts the account and transaction subscriptions, fanning their
// updates into InvolvedAccountTxProcessor and into both NewPoolProcessor
// and MevBotTxProcessor respectively. It blocks until ctx is cancelled or a
// subscription's reconnect loop gives up.
func (s *Stages) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		owners := dex.KnownProgramOwners()
		errCh <- s.env.AccountSub.Run(ctx, owners, func(u subscription.AccountUpdate) {
			if err := s.involvedAccountTxProcessor.TryPublish(u); err != nil {
				s.env.Logger.Warn("account update dropped, stage saturated", zap.String("account", u.Account.String()))
			}
		})
	}()

	go func() {
		filter := subscription.TransactionFilter{ProgramID: s.env.MEVProgramID}
		errCh <- s.env.TxSub.Run(ctx, filter, func(u subscription.TransactionUpdate) {
			if err := s.newPoolProcessor.TryPublish(u); err != nil {
				s.env.Logger.Warn("transaction update dropped, new-pool stage saturated", zap.String("signature", u.Signature.String()))
			}
			if err := s.mevBotTxProcessor.TryPublish(u); err != nil {
				s.env.Logger.Warn("transaction update dropped, mev-tx stage saturated", zap.String("signature", u.Signature.String()))
			}
		})
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown flushes the debouncer and drains every stage within deadline,
// in dependency order so a stage is never drained while its upstream can
// still publish to it.
func (s *Stages) Shutdown(deadline time.Duration) {
	s.involvedAccountTxProcessor.Shutdown(deadline)
	s.newPoolProcessor.Shutdown(deadline)
	s.mevBotTxProcessor.Shutdown(deadline)
	s.ownerAccountDebouncer.Flush()
	s.poolUpdateProcessor.Shutdown(deadline)
	s.fireMevBotConsumer.Shutdown(deadline)
	if err := s.env.TraceSink.Close(); err != nil {
		s.env.Logger.Warn("trace sink close failed", zap.Error(err))
	}
}

// handleAccountUpdate is InvolvedAccountTxProcessor's handler: it resolves
// the updated account to the pool and minor mint it belongs to, and pushes
// into OwnerAccountDebouncer so a burst of writes to the same pool's
// vaults collapses into a single downstream signal.
func (s *Stages) handleAccountUpdate(_ context.Context, u subscription.AccountUpdate) error {
	_, pool, ok := s.env.Index.PoolForVault(u.Account)
	if !ok {
		return nil
	}
	minorMint, ok := s.env.Index.MinorMintForPool(pool)
	if !ok {
		return nil
	}
	s.ownerAccountDebouncer.Push(minorMint, pool)
	return nil
}

// emitDebounced is OwnerAccountDebouncer's Emit callback: one quiescent
// window has elapsed for minorMint with pool as the latest observed
// update. It builds a fresh trigger.Signal and publishes it to
// PoolUpdateProcessor.
func (s *Stages) emitDebounced(minorMint solana.PublicKey, _ solana.PublicKey) {
	sig := trigger.Signal{MinorMint: minorMint, Trace: trace.New(0)}
	sig.Trace.Append(trace.StepDebounced, map[string]string{"minor_mint": minorMint.String()})
	if err := s.poolUpdateProcessor.TryPublish(sig); err != nil {
		s.env.Logger.Warn("debounced signal dropped, pool-update stage saturated", zap.String("minor_mint", minorMint.String()))
	}
}

// handlePoolUpdateSignal is PoolUpdateProcessor's handler: it runs the
// opportunity evaluator over a debounced or newly-discovered-pool signal.
func (s *Stages) handlePoolUpdateSignal(ctx context.Context, sig trigger.Signal) error {
	sig.Trace.Append(trace.StepPoolUpdateTriggered, nil)
	if err := s.env.Evaluator.Evaluate(ctx, sig); err != nil {
		return err
	}
	return nil
}

// handleNewPoolTx is NewPoolProcessor's handler: it feeds every observed
// transaction to the indexer so newly-seen pools get decoded and
// registered, then raises a trigger.Signal for the minor mint of every
// instruction that references a vault of a pool in the index, whether or
// not that pool was just registered; the evaluator drops mints with fewer
// than two pools.
func (s *Stages) handleNewPoolTx(ctx context.Context, u subscription.TransactionUpdate) error {
	s.env.Indexer.Handle(ctx, u)

	for _, ix := range u.Instructions {
		if pool, mint, ok := s.minorMintForInstruction(ix); ok {
			sig := trigger.Signal{MinorMint: mint, OriginatingSlot: u.Slot, Trace: trace.New(u.Slot)}
			sig.Trace.Append(trace.StepNewPoolDiscovered, map[string]string{"pool": pool.String()})
			if err := s.poolUpdateProcessor.TryPublish(sig); err != nil {
				s.env.Logger.Warn("new-pool signal dropped, pool-update stage saturated", zap.String("minor_mint", mint.String()))
			}
		}
	}
	return nil
}

// handleMevBotTx is MevBotTxProcessor's handler: the transaction-based
// counterpart to InvolvedAccountTxProcessor, recognizing swap activity
// against already-known pools from the instructions' account lists rather than
// waiting on the separate account-update stream.
func (s *Stages) handleMevBotTx(_ context.Context, u subscription.TransactionUpdate) error {
	for _, ix := range u.Instructions {
		if pool, mint, ok := s.minorMintForInstruction(ix); ok {
			s.ownerAccountDebouncer.Push(mint, pool)
		}
	}
	return nil
}

// minorMintForInstruction reports whether ix references a pool already
// known to the index, returning its pool address and minor mint.
func (s *Stages) minorMintForInstruction(ix subscription.Instruction) (pool, mint solana.PublicKey, ok bool) {
	for _, acct := range ix.Accounts {
		if _, candidatePool, found := s.env.Index.PoolForVault(acct); found {
			if minorMint, found := s.env.Index.MinorMintForPool(candidatePool); found {
				return candidatePool, minorMint, true
			}
		}
	}
	return solana.PublicKey{}, solana.PublicKey{}, false
}

// publishFire is the evaluator's FireHandler: it hands a surviving
// opportunity to FireMevBotConsumer.
func (s *Stages) publishFire(_ context.Context, f trigger.Fire) error {
	return s.fireMevBotConsumer.TryPublish(f)
}

// handleFire is FireMevBotConsumer's handler: it runs the simulate/submit
// pipeline and records the fire's trace regardless of outcome.
func (s *Stages) handleFire(ctx context.Context, f trigger.Fire) error {
	defer s.env.TraceSink.Record(f.Trace)
	return s.env.Submit.Run(ctx, submit.Request{MinorMint: f.MinorMint, Pools: f.Pools, Trace: f.Trace})
}
