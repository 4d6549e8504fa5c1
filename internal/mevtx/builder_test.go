package mevtx

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solarbx/mevcore/internal/wallet"
)

func newTestWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	pk, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return &wallet.Wallet{PrivateKey: pk, PublicKey: pk.PublicKey()}
}

func TestBuildSignsTransaction(t *testing.T) {
	b := New()
	req := Request{
		Payer:       newTestWallet(t),
		MinorMint:   solana.NewWallet().PublicKey(),
		Pools:       []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()},
		TipAccount:  solana.NewWallet().PublicKey(),
		TipLamports: 10_000,
		Blockhash:   solana.Hash{1, 2, 3},
	}

	tx, err := b.Build(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, tx.Signatures, 1)
}

func TestBuildRejectsSinglePool(t *testing.T) {
	b := New()
	req := Request{
		Payer:      newTestWallet(t),
		MinorMint:  solana.NewWallet().PublicKey(),
		Pools:      []solana.PublicKey{solana.NewWallet().PublicKey()},
		Blockhash:  solana.Hash{1, 2, 3},
		TipAccount: solana.NewWallet().PublicKey(),
	}

	_, err := b.Build(context.Background(), req)
	require.Error(t, err)
}

func TestBuildRequiresPayer(t *testing.T) {
	b := New()
	req := Request{
		Pools: []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()},
	}

	_, err := b.Build(context.Background(), req)
	require.Error(t, err)
}
