package dex

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

const q64 = "18446744073709551616" // 2^64

// sqrtPriceMidPrice implements the Q64.64 concentrated-liquidity quote
// shared by Meteora DAMM-v2, Raydium CLMM, and Whirlpool: (sqrt_price /
// 2^64)^2 gives A per B; the inverse gives B per A. See spec §4.1.
func sqrtPriceMidPrice(kind Kind, sqrtPrice uint64, baseMint, quoteMint, from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	dir, err := direction(baseMint, quoteMint, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s mid price: %w", kind, err)
	}

	sqrtPriceBig := new(big.Int).SetUint64(sqrtPrice)
	sqrtPriceDecimal := decimal.NewFromBigInt(sqrtPriceBig, 0).DivRound(decimal.RequireFromString(q64), 40)
	priceAPerB := sqrtPriceDecimal.Mul(sqrtPriceDecimal)

	var midPriceToken decimal.Decimal
	switch dir {
	case DirectionBaseToQuote:
		midPriceToken = priceAPerB
	case DirectionQuoteToBase:
		midPriceToken = decimal.NewFromInt(1).DivRound(priceAPerB, 30)
	}

	return rescale(midPriceToken, fromDecimals, toDecimals), nil
}
