package rpcclient

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
)

func TestToTokenBalancesHandlesNilOwner(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	in := []rpc.TokenBalance{
		{
			Mint:          mint,
			Owner:         nil,
			UiTokenAmount: &rpc.UiTokenAmount{Amount: "1000", Decimals: 9},
		},
	}

	out := toTokenBalances(in)

	assert.Len(t, out, 1)
	assert.Equal(t, mint.String(), out[0].Mint)
	assert.Empty(t, out[0].Owner)
	assert.Equal(t, "1000", out[0].Amount)
	assert.Equal(t, uint8(9), out[0].Decimals)
}

func TestToTokenBalancesIncludesOwnerWhenPresent(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	in := []rpc.TokenBalance{
		{
			Mint:          mint,
			Owner:         &owner,
			UiTokenAmount: &rpc.UiTokenAmount{Amount: "42", Decimals: 6},
		},
	}

	out := toTokenBalances(in)

	assert.Equal(t, owner.String(), out[0].Owner)
}
