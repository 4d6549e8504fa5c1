// Package store defines the persistent-store interfaces the pipeline's
// caches and indexer write through to: mints, pools, the generic kv_cache
// durable tier, and the mev_simulation_log audit trail (spec §6).
package store

import (
	"context"
	"time"

	"github.com/solarbx/mevcore/internal/store/models"
)

// MintStore persists and looks up token mint metadata.
type MintStore interface {
	UpsertMint(ctx context.Context, m *models.Mint) error
	GetMint(ctx context.Context, address string) (*models.Mint, error)
}

// PoolStore persists and looks up recorded dex pools.
type PoolStore interface {
	UpsertPool(ctx context.Context, p *models.Pool) error
	GetPool(ctx context.Context, address string) (*models.Pool, error)
	ListPools(ctx context.Context) ([]*models.Pool, error)
}

// KVCache is the durable cold tier behind the Persistent cache archetype.
type KVCache interface {
	Read(ctx context.Context, cacheType, key string) (value string, found bool, err error)
	Write(ctx context.Context, cacheType, key, value string, validUntil time.Time) error
}

// SimulationLogStore records every simulate-then-maybe-submit attempt for
// post-hoc analysis.
type SimulationLogStore interface {
	LogSimulation(ctx context.Context, entry *models.MevSimulationLog) error
}

// Store groups the four persistence surfaces the pipeline depends on so
// callers thread one value instead of four.
type Store interface {
	MintStore
	PoolStore
	KVCache
	SimulationLogStore
	RunMigrations() error
}
