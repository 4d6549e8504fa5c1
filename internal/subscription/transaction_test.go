package subscription

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
)

func TestToSubscriptionTokenBalancesHandlesNilOwner(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	in := []rpc.TokenBalance{
		{Mint: mint, Owner: nil, UiTokenAmount: &rpc.UiTokenAmount{Amount: "7", Decimals: 9}},
	}

	out := toSubscriptionTokenBalances(in)

	assert.Len(t, out, 1)
	assert.True(t, out[0].Owner.IsZero())
	assert.Equal(t, "7", out[0].Amount)
}
