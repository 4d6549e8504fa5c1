// Package models holds the GORM row types behind the persistent store's
// logical schema: mints, pools, kv_cache, mev_simulation_log (spec §6).
package models

import "time"

// BaseModel replaces gorm.Model for explicit control over the timestamp
// columns every table shares.
type BaseModel struct {
	ID        uint       `gorm:"primaryKey"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`
}

// Mint is a row in the mints table: a token's canonical identity and
// decimals.
type Mint struct {
	BaseModel
	Address  string `gorm:"unique;not null;type:varchar(44)"`
	Symbol   string `gorm:"type:varchar(32)"`
	Decimals uint8  `gorm:"not null"`
	Program  string `gorm:"type:varchar(44)"`
}

// Pool is a row in the pools table: a recorded dex pool and its mint/vault
// pair, with the dex-specific decoded snapshot preserved as JSON.
type Pool struct {
	BaseModel
	Address     string `gorm:"unique;not null;type:varchar(44)"`
	Name        string `gorm:"type:varchar(100)"`
	DexKind     string `gorm:"index;not null;type:varchar(32)"`
	BaseMint    string `gorm:"index;not null;type:varchar(44)"`
	QuoteMint   string `gorm:"index;not null;type:varchar(44)"`
	BaseVault   string `gorm:"not null;type:varchar(44)"`
	QuoteVault  string `gorm:"not null;type:varchar(44)"`
	Description string `gorm:"type:jsonb"`
}

// KVCache is a row in the kv_cache table: the durable fallback tier for
// the Persistent cache archetype, keyed by a cache type tag plus key.
type KVCache struct {
	BaseModel
	Type      string    `gorm:"uniqueIndex:idx_kv_type_key;not null;type:varchar(64)"`
	Key       string    `gorm:"uniqueIndex:idx_kv_type_key;not null;type:varchar(128)"`
	Value     string    `gorm:"type:jsonb"`
	ValidUntil time.Time `gorm:"index"`
}

// MevSimulationLog is a row in the mev_simulation_log table: one record
// per simulate-then-maybe-submit attempt, for post-hoc profitability and
// latency analysis.
type MevSimulationLog struct {
	BaseModel
	TraceID        string    `gorm:"index;not null;type:varchar(36)"`
	MinorMint      string    `gorm:"index;not null;type:varchar(44)"`
	PoolAddresses  string    `gorm:"type:text;not null"`
	SimulatedAt    time.Time `gorm:"index;not null"`
	AnchorDeltaLamports int64 `gorm:"not null"`
	Submitted      bool      `gorm:"not null;default:false"`
	BundleID       string    `gorm:"type:varchar(128)"`
	ErrorMessage   string    `gorm:"type:text"`
	ElapsedMs      int64     `gorm:"not null"`
}
