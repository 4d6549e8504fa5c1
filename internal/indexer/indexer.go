// Package indexer mines MEV-program transactions for swap instructions,
// decodes any newly-seen pool account, and registers it with the index and
// persistent store so the trigger evaluator can find it (spec §4.1, §4.5,
// and SPEC_FULL's end-to-end new-pool-discovery scenario).
package indexer

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/dex"
	"github.com/solarbx/mevcore/internal/index"
	"github.com/solarbx/mevcore/internal/rpcclient"
	"github.com/solarbx/mevcore/internal/store"
	"github.com/solarbx/mevcore/internal/store/models"
	"github.com/solarbx/mevcore/internal/subscription"
)

// Indexer watches transactions mentioning the configured MEV program,
// recognizes swap instructions against known dex programs, and resolves
// any pool it has not seen before into an index.PoolRecord.
type Indexer struct {
	rpc         rpcclient.Client
	index       *index.Index
	store       store.PoolStore
	desiredMint solana.PublicKey
	logger      *zap.Logger
}

// New builds an Indexer. desiredMint is the configured anchor mint
// (typically wrapped SOL) every discovered pool must contain.
func New(rpc rpcclient.Client, idx *index.Index, st store.PoolStore, desiredMint solana.PublicKey, logger *zap.Logger) *Indexer {
	return &Indexer{rpc: rpc, index: idx, store: st, desiredMint: desiredMint, logger: logger.Named("indexer")}
}

// Handle processes one TransactionUpdate, resolving and registering any
// newly-seen pool referenced by a recognized swap instruction. Errors are
// logged per-instruction and never propagated: one malformed instruction
// must not drop the rest of the transaction's swap instructions.
func (ix *Indexer) Handle(ctx context.Context, update subscription.TransactionUpdate) {
	for _, raw := range update.Instructions {
		swapIx, err := dex.FromInstruction(raw.ProgramID, raw.Accounts)
		if err != nil || swapIx == nil {
			continue
		}
		if ix.index.KnownPool(swapIx.PoolAddress) {
			continue
		}
		if err := ix.resolvePool(ctx, swapIx); err != nil {
			ix.logger.Debug("pool resolution dropped",
				zap.Error(err),
				zap.String("pool", swapIx.PoolAddress.String()),
				zap.String("dex_kind", string(swapIx.DexKind)))
		}
	}
}

// resolvePool fetches a newly-seen pool's account data, decodes it for its
// dex kind, validates it contains the anchor mint, and registers it with
// both the in-memory index and the persistent store.
func (ix *Indexer) resolvePool(ctx context.Context, swapIx *dex.SwapInstruction) error {
	info, err := ix.rpc.GetAccountInfo(ctx, swapIx.PoolAddress)
	if err != nil {
		return fmt.Errorf("fetch pool account: %w", err)
	}
	if info == nil || info.Value == nil {
		return fmt.Errorf("pool account %s not found", swapIx.PoolAddress)
	}

	data, err := dex.Decode(swapIx.DexKind, swapIx.PoolAddress, info.Value.Data.GetBinary())
	if err != nil {
		return fmt.Errorf("decode pool account: %w", err)
	}

	cfg, err := dex.NewPoolConfig(swapIx.PoolAddress, data, ix.desiredMint)
	if err != nil {
		return err
	}

	rec := index.PoolRecord{
		Pool:       cfg.Pool,
		BaseMint:   data.BaseMint(),
		QuoteMint:  data.QuoteMint(),
		BaseVault:  data.BaseVault(),
		QuoteVault: data.QuoteVault(),
		MinorMint:  cfg.MinorMint,
	}
	if err := ix.index.Register(rec); err != nil {
		return fmt.Errorf("register pool in index: %w", err)
	}

	model := &models.Pool{
		Address:    cfg.Pool.String(),
		DexKind:    string(swapIx.DexKind),
		BaseMint:   data.BaseMint().String(),
		QuoteMint:  data.QuoteMint().String(),
		BaseVault:  data.BaseVault().String(),
		QuoteVault: data.QuoteVault().String(),
	}
	if err := ix.store.UpsertPool(ctx, model); err != nil {
		return fmt.Errorf("persist pool: %w", err)
	}

	ix.logger.Info("pool discovered",
		zap.String("pool", cfg.Pool.String()),
		zap.String("dex_kind", string(swapIx.DexKind)),
		zap.String("minor_mint", cfg.MinorMint.String()))
	return nil
}
