package trigger

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/dedup"
	"github.com/solarbx/mevcore/internal/index"
	"github.com/solarbx/mevcore/internal/ratelimit"
	"github.com/solarbx/mevcore/internal/trace"
)

func registerTwoPools(t *testing.T, idx *index.Index, minorMint solana.PublicKey) []solana.PublicKey {
	t.Helper()
	var pools []solana.PublicKey
	for i := 0; i < 2; i++ {
		rec := index.PoolRecord{
			Pool:       solana.NewWallet().PublicKey(),
			BaseMint:   minorMint,
			QuoteMint:  solana.NewWallet().PublicKey(),
			BaseVault:  solana.NewWallet().PublicKey(),
			QuoteVault: solana.NewWallet().PublicKey(),
			MinorMint:  minorMint,
		}
		require.NoError(t, idx.Register(rec))
		pools = append(pools, rec.Pool)
	}
	return pools
}

func TestEvaluateFiresOnSufficientPools(t *testing.T) {
	idx := index.New()
	minorMint := solana.NewWallet().PublicKey()
	registerTwoPools(t, idx, minorMint)

	var got Fire
	eval := New(idx, dedup.New(time.Minute), ratelimit.NewFire(1000, 10), func(_ context.Context, f Fire) error {
		got = f
		return nil
	}, zap.NewNop())

	sig := Signal{MinorMint: minorMint, OriginatingSlot: 1, Trace: trace.New(1)}
	require.NoError(t, eval.Evaluate(context.Background(), sig))
	assert.Equal(t, minorMint, got.MinorMint)
	assert.Len(t, got.Pools, 2)
}

func TestEvaluateRejectsSinglePool(t *testing.T) {
	idx := index.New()
	minorMint := solana.NewWallet().PublicKey()
	rec := index.PoolRecord{
		Pool: solana.NewWallet().PublicKey(), BaseMint: minorMint, QuoteMint: solana.NewWallet().PublicKey(),
		BaseVault: solana.NewWallet().PublicKey(), QuoteVault: solana.NewWallet().PublicKey(), MinorMint: minorMint,
	}
	require.NoError(t, idx.Register(rec))

	eval := New(idx, dedup.New(time.Minute), ratelimit.NewFire(1000, 10), func(_ context.Context, f Fire) error {
		t.Fatal("should not publish")
		return nil
	}, zap.NewNop())

	sig := Signal{MinorMint: minorMint, OriginatingSlot: 1, Trace: trace.New(1)}
	assert.ErrorIs(t, eval.Evaluate(context.Background(), sig), ErrNoSiblingPools)
}

func TestEvaluateDedupsSecondFire(t *testing.T) {
	idx := index.New()
	minorMint := solana.NewWallet().PublicKey()
	registerTwoPools(t, idx, minorMint)

	calls := 0
	eval := New(idx, dedup.New(time.Minute), ratelimit.NewFire(1000, 10), func(_ context.Context, f Fire) error {
		calls++
		return nil
	}, zap.NewNop())

	sig := Signal{MinorMint: minorMint, OriginatingSlot: 1, Trace: trace.New(1)}
	require.NoError(t, eval.Evaluate(context.Background(), sig))
	err := eval.Evaluate(context.Background(), Signal{MinorMint: minorMint, OriginatingSlot: 2, Trace: trace.New(2)})
	assert.ErrorIs(t, err, ErrDuplicateFire)
	assert.Equal(t, 1, calls)
}
