// Package index answers the two lookups the pipeline needs on every
// account update: "which pool owns this vault?" and "which pools
// reference this minor mint?" (spec §4.5).
package index

import (
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// PoolRecord is the minimal shape the index needs to answer both lookups;
// the dex package's richer PoolConfig embeds one conceptually.
type PoolRecord struct {
	Pool      solana.PublicKey
	BaseMint  solana.PublicKey
	QuoteMint solana.PublicKey
	BaseVault solana.PublicKey
	QuoteVault solana.PublicKey
	MinorMint solana.PublicKey
}

// vaultEntry is the value side of VAULT_TO_POOL: the mint the vault holds
// and the pool it belongs to.
type vaultEntry struct {
	Mint solana.PublicKey
	Pool solana.PublicKey
}

// Index is the in-memory VAULT_TO_POOL / MINT_WITH_POOLS reverse index,
// built at startup from the persistent store and refreshed on every pool
// registration. All methods are safe for concurrent use.
type Index struct {
	mu            sync.RWMutex
	vaultToPool   map[solana.PublicKey]vaultEntry
	mintToPools   map[solana.PublicKey][]PoolRecord
	mintPoolSeen  map[solana.PublicKey]map[solana.PublicKey]bool
	poolMinorMint map[solana.PublicKey]solana.PublicKey
}

// New builds an empty Index.
func New() *Index {
	return &Index{
		vaultToPool:   make(map[solana.PublicKey]vaultEntry),
		mintToPools:   make(map[solana.PublicKey][]PoolRecord),
		mintPoolSeen:  make(map[solana.PublicKey]map[solana.PublicKey]bool),
		poolMinorMint: make(map[solana.PublicKey]solana.PublicKey),
	}
}

// Register records a pool's vaults and minor-mint membership. Idempotent:
// registering the same pool twice is a no-op on the second call. Fails if
// either vault is already owned by a different pool — a vault belongs to
// at most one pool.
func (idx *Index) Register(rec PoolRecord) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if existing, ok := idx.vaultToPool[rec.BaseVault]; ok && existing.Pool != rec.Pool {
		return fmt.Errorf("vault %s already belongs to pool %s, cannot register pool %s", rec.BaseVault, existing.Pool, rec.Pool)
	}
	if existing, ok := idx.vaultToPool[rec.QuoteVault]; ok && existing.Pool != rec.Pool {
		return fmt.Errorf("vault %s already belongs to pool %s, cannot register pool %s", rec.QuoteVault, existing.Pool, rec.Pool)
	}

	if idx.mintPoolSeen[rec.MinorMint] != nil && idx.mintPoolSeen[rec.MinorMint][rec.Pool] {
		return nil // already registered
	}

	idx.vaultToPool[rec.BaseVault] = vaultEntry{Mint: rec.BaseMint, Pool: rec.Pool}
	idx.vaultToPool[rec.QuoteVault] = vaultEntry{Mint: rec.QuoteMint, Pool: rec.Pool}

	if idx.mintPoolSeen[rec.MinorMint] == nil {
		idx.mintPoolSeen[rec.MinorMint] = make(map[solana.PublicKey]bool)
	}
	idx.mintPoolSeen[rec.MinorMint][rec.Pool] = true
	idx.mintToPools[rec.MinorMint] = append(idx.mintToPools[rec.MinorMint], rec)
	idx.poolMinorMint[rec.Pool] = rec.MinorMint

	return nil
}

// MinorMintForPool answers "given a pool, which minor mint does it
// trade?", the key the trigger evaluator needs to find that pool's
// siblings — distinct from PoolForVault's per-vault mint, which is
// whichever of base/quote that specific vault holds.
func (idx *Index) MinorMintForPool(pool solana.PublicKey) (solana.PublicKey, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	mint, ok := idx.poolMinorMint[pool]
	return mint, ok
}

// PoolForVault answers "given a vault account, which mint and pool does it
// belong to?"
func (idx *Index) PoolForVault(vault solana.PublicKey) (mint, pool solana.PublicKey, ok bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.vaultToPool[vault]
	return e.Mint, e.Pool, ok
}

// PoolsForMint answers "given a minor mint, which pools reference it?",
// returning the candidate set in registration order.
func (idx *Index) PoolsForMint(mint solana.PublicKey) []PoolRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	pools := idx.mintToPools[mint]
	out := make([]PoolRecord, len(pools))
	copy(out, pools)
	return out
}

// KnownPool reports whether pool already appears anywhere in the index.
func (idx *Index) KnownPool(pool solana.PublicKey) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for _, e := range idx.vaultToPool {
		if e.Pool == pool {
			return true
		}
	}
	return false
}
