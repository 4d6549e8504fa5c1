// Package pipeline wires the account/transaction subscriptions, the
// debounce and trigger stages, and the submit pipeline into the named
// pub/sub stages spec §4.4 calls the core: InvolvedAccountTxProcessor,
// OwnerAccountDebouncer, NewPoolProcessor, PoolUpdateProcessor,
// MevBotTxProcessor, FireMevBotConsumer.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/config"
	"github.com/solarbx/mevcore/internal/dedup"
	"github.com/solarbx/mevcore/internal/index"
	"github.com/solarbx/mevcore/internal/indexer"
	"github.com/solarbx/mevcore/internal/mevtx"
	"github.com/solarbx/mevcore/internal/ratelimit"
	"github.com/solarbx/mevcore/internal/relayer"
	"github.com/solarbx/mevcore/internal/rpcclient"
	"github.com/solarbx/mevcore/internal/store"
	"github.com/solarbx/mevcore/internal/store/models"
	"github.com/solarbx/mevcore/internal/submit"
	"github.com/solarbx/mevcore/internal/subscription"
	"github.com/solarbx/mevcore/internal/trigger"
	"github.com/solarbx/mevcore/internal/wallet"
)

// Environment groups the ambient singletons every stage is built from: one
// value constructed at startup and threaded explicitly into every
// constructor, never reached for through a package-level global (spec §9
// Design Notes, "Ambient globals vs. explicit context").
type Environment struct {
	Config *config.Config
	Logger *zap.Logger

	RPC     rpcclient.Client
	Store   store.Store
	Relayer relayer.Relayer
	Wallet  *wallet.Wallet
	Builder mevtx.Builder

	Index     *index.Index
	Dedup     *dedup.Set
	RateLimit *ratelimit.Set
	TipCache  *submit.TipCache
	TraceSink *submit.TraceSink

	AnchorMint   solana.PublicKey
	MEVProgramID solana.PublicKey

	AccountSub subscription.AccountSubscription
	TxSub      subscription.TransactionSubscription
	Indexer    *indexer.Indexer
	Evaluator  *trigger.Evaluator
	Submit     *submit.Pipeline
}

// Build constructs an Environment from its externally-supplied
// dependencies (RPC transport, persistent store, Jito relayer, signing
// wallet, transaction builder) plus the in-process state the pipeline owns
// outright (index, dedup set, rate limiters, tip cache). anchorMint is the
// first entry of cfg.DesiredMints, the mint every pool must contain to be
// considered (spec §4.7 step 3).
func Build(cfg *config.Config, logger *zap.Logger, rpc rpcclient.Client, st store.Store, rl relayer.Relayer, w *wallet.Wallet, builder mevtx.Builder, tracePath string) (*Environment, error) {
	anchorMint := solana.MustPublicKeyFromBase58(cfg.DesiredMints[0])
	mevProgramID := solana.MustPublicKeyFromBase58(cfg.MEVProgramID)

	idx := index.New()
	if err := hydrateIndex(idx, st, anchorMint, logger); err != nil {
		return nil, err
	}

	dedupSet := dedup.New(cfg.DedupTTL)
	limiters := &ratelimit.Set{
		RPCQuery:   ratelimit.NewNamed("rpc_query", cfg.RPCRateLimit, cfg.RPCRateBurst),
		Simulation: ratelimit.NewNamed("simulation", cfg.SimulationRateLimit, cfg.SimulationRateBurst),
		Fire:       ratelimit.NewFire(int(cfg.FireRateLimit), cfg.FireRateBurst),
	}
	tipCache := submit.NewTipCache(cfg.TipPercentile, cfg.TipCacheRefresh, st)

	traceSink, err := submit.NewTraceSink(tracePath, 2*time.Second, logger)
	if err != nil {
		return nil, err
	}

	ix := indexer.New(rpc, idx, st, anchorMint, logger)
	submitPipeline := submit.New(rpc, rl, builder, w, tipCache, st, cfg.SimulateDeadline, cfg.SubmitDeadline, cfg.EnableSendTx, logger)

	env := &Environment{
		Config:       cfg,
		Logger:       logger,
		RPC:          rpc,
		Store:        st,
		Relayer:      rl,
		Wallet:       w,
		Builder:      builder,
		Index:        idx,
		Dedup:        dedupSet,
		RateLimit:    limiters,
		TipCache:     tipCache,
		TraceSink:    traceSink,
		AnchorMint:   anchorMint,
		MEVProgramID: mevProgramID,
		AccountSub:   subscription.NewAccountSubscription(cfg.SolanaWSURL, logger),
		TxSub:        subscription.NewTransactionSubscription(cfg.SolanaWSURL, cfg.SolanaRPCURL, logger),
		Indexer:      ix,
		Submit:       submitPipeline,
	}
	return env, nil
}

// hydrateIndex loads every previously-persisted pool into idx so a restart
// does not forget pools discovered in a prior run.
func hydrateIndex(idx *index.Index, st store.PoolStore, anchorMint solana.PublicKey, logger *zap.Logger) error {
	pools, err := st.ListPools(context.Background())
	if err != nil {
		return err
	}
	for _, p := range pools {
		rec, err := poolRecordFromModel(p, anchorMint)
		if err != nil {
			logger.Warn("skipping unparseable persisted pool", zap.String("pool", p.Address), zap.Error(err))
			continue
		}
		if err := idx.Register(rec); err != nil {
			logger.Warn("failed to hydrate pool into index", zap.String("pool", p.Address), zap.Error(err))
		}
	}
	return nil
}

// poolRecordFromModel converts a persisted pool row back into an
// index.PoolRecord, deriving the minor mint as whichever side of the pool
// is not the anchor mint. A pool whose base/quote mints are both, or
// neither, the anchor mint cannot be scored and is rejected.
func poolRecordFromModel(p *models.Pool, anchorMint solana.PublicKey) (index.PoolRecord, error) {
	pool, err := solana.PublicKeyFromBase58(p.Address)
	if err != nil {
		return index.PoolRecord{}, fmt.Errorf("pool address: %w", err)
	}
	baseMint, err := solana.PublicKeyFromBase58(p.BaseMint)
	if err != nil {
		return index.PoolRecord{}, fmt.Errorf("base mint: %w", err)
	}
	quoteMint, err := solana.PublicKeyFromBase58(p.QuoteMint)
	if err != nil {
		return index.PoolRecord{}, fmt.Errorf("quote mint: %w", err)
	}
	baseVault, err := solana.PublicKeyFromBase58(p.BaseVault)
	if err != nil {
		return index.PoolRecord{}, fmt.Errorf("base vault: %w", err)
	}
	quoteVault, err := solana.PublicKeyFromBase58(p.QuoteVault)
	if err != nil {
		return index.PoolRecord{}, fmt.Errorf("quote vault: %w", err)
	}

	var minorMint solana.PublicKey
	switch {
	case baseMint.Equals(anchorMint) && !quoteMint.Equals(anchorMint):
		minorMint = quoteMint
	case quoteMint.Equals(anchorMint) && !baseMint.Equals(anchorMint):
		minorMint = baseMint
	default:
		return index.PoolRecord{}, fmt.Errorf("pool %s does not have exactly one anchor-mint side", p.Address)
	}

	return index.PoolRecord{
		Pool: pool, BaseMint: baseMint, QuoteMint: quoteMint,
		BaseVault: baseVault, QuoteVault: quoteVault, MinorMint: minorMint,
	}, nil
}
