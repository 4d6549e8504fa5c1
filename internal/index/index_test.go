package index

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoolRecord(t *testing.T, minorMint solana.PublicKey) PoolRecord {
	t.Helper()
	return PoolRecord{
		Pool:       solana.NewWallet().PublicKey(),
		BaseMint:   solana.NewWallet().PublicKey(),
		QuoteMint:  minorMint,
		BaseVault:  solana.NewWallet().PublicKey(),
		QuoteVault: solana.NewWallet().PublicKey(),
		MinorMint:  minorMint,
	}
}

func TestRegisterThenPoolForVaultAndMinorMintForPool(t *testing.T) {
	idx := New()
	minorMint := solana.NewWallet().PublicKey()
	rec := testPoolRecord(t, minorMint)
	require.NoError(t, idx.Register(rec))

	mint, pool, ok := idx.PoolForVault(rec.BaseVault)
	require.True(t, ok)
	assert.Equal(t, rec.BaseMint, mint)
	assert.Equal(t, rec.Pool, pool)

	got, ok := idx.MinorMintForPool(rec.Pool)
	require.True(t, ok)
	assert.Equal(t, minorMint, got)

	assert.True(t, idx.KnownPool(rec.Pool))
}

func TestRegisterRejectsConflictingVaultOwner(t *testing.T) {
	idx := New()
	minorMint := solana.NewWallet().PublicKey()
	recA := testPoolRecord(t, minorMint)
	require.NoError(t, idx.Register(recA))

	recB := testPoolRecord(t, minorMint)
	recB.BaseVault = recA.BaseVault
	assert.Error(t, idx.Register(recB))
}

func TestRegisterIsIdempotent(t *testing.T) {
	idx := New()
	minorMint := solana.NewWallet().PublicKey()
	rec := testPoolRecord(t, minorMint)
	require.NoError(t, idx.Register(rec))
	require.NoError(t, idx.Register(rec))

	assert.Len(t, idx.PoolsForMint(minorMint), 1)
}

func TestPoolsForMintReturnsTwoSiblingPools(t *testing.T) {
	idx := New()
	minorMint := solana.NewWallet().PublicKey()
	recA := testPoolRecord(t, minorMint)
	recB := testPoolRecord(t, minorMint)
	require.NoError(t, idx.Register(recA))
	require.NoError(t, idx.Register(recB))

	pools := idx.PoolsForMint(minorMint)
	assert.Len(t, pools, 2)
}
