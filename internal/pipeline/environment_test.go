package pipeline

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/index"
	"github.com/solarbx/mevcore/internal/store/models"
)

type fakeHydrationStore struct {
	pools []*models.Pool
}

func (s *fakeHydrationStore) UpsertPool(context.Context, *models.Pool) error { return nil }
func (s *fakeHydrationStore) GetPool(context.Context, string) (*models.Pool, error) {
	return nil, nil
}
func (s *fakeHydrationStore) ListPools(context.Context) ([]*models.Pool, error) {
	return s.pools, nil
}

func TestPoolRecordFromModelDerivesMinorMint(t *testing.T) {
	anchor := solana.NewWallet().PublicKey()
	minor := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()
	baseVault := solana.NewWallet().PublicKey()
	quoteVault := solana.NewWallet().PublicKey()

	model := &models.Pool{
		Address: pool.String(), BaseMint: anchor.String(), QuoteMint: minor.String(),
		BaseVault: baseVault.String(), QuoteVault: quoteVault.String(),
	}

	rec, err := poolRecordFromModel(model, anchor)
	require.NoError(t, err)
	assert.Equal(t, minor, rec.MinorMint)
	assert.Equal(t, pool, rec.Pool)
}

func TestPoolRecordFromModelRejectsBothAnchorSides(t *testing.T) {
	anchor := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()
	vault := solana.NewWallet().PublicKey()

	model := &models.Pool{
		Address: pool.String(), BaseMint: anchor.String(), QuoteMint: anchor.String(),
		BaseVault: vault.String(), QuoteVault: vault.String(),
	}

	_, err := poolRecordFromModel(model, anchor)
	assert.Error(t, err)
}

func TestHydrateIndexRegistersPersistedPools(t *testing.T) {
	anchor := solana.NewWallet().PublicKey()
	minor := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()

	st := &fakeHydrationStore{pools: []*models.Pool{{
		Address: pool.String(), BaseMint: anchor.String(), QuoteMint: minor.String(),
		BaseVault: solana.NewWallet().PublicKey().String(), QuoteVault: solana.NewWallet().PublicKey().String(),
	}}}

	idx := index.New()
	require.NoError(t, hydrateIndex(idx, st, anchor, zap.NewNop()))

	got, ok := idx.MinorMintForPool(pool)
	require.True(t, ok)
	assert.Equal(t, minor, got)
}
