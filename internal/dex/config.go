package dex

import "github.com/gagliardetto/solana-go"

// PoolConfig binds a decoded pool snapshot to the anchor mint the pipeline
// is arbitraging against, and the deterministic minor-mint side derived
// from it.
type PoolConfig struct {
	Pool         solana.PublicKey
	Data         PoolData
	DesiredMint  solana.PublicKey
	MinorMint    solana.PublicKey
}

// NewPoolConfig builds a PoolConfig from a freshly decoded pool snapshot,
// failing with ErrMissingDesiredMint when the pair does not contain
// desiredMint.
func NewPoolConfig(pool solana.PublicKey, data PoolData, desiredMint solana.PublicKey) (*PoolConfig, error) {
	if err := ShallContain(data, desiredMint); err != nil {
		return nil, &ErrMissingDesiredMint{Pool: pool, Anchor: desiredMint}
	}
	return &PoolConfig{
		Pool:        pool,
		Data:        data,
		DesiredMint: desiredMint,
		MinorMint:   MinorMint(data, desiredMint),
	}, nil
}
