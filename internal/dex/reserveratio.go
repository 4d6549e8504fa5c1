package dex

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// reserves holds the most recently observed vault token balances for a
// reserve-ratio-priced pool. The fixed-size account layout for these dex
// kinds carries vault addresses, not live balances, so the registry fetches
// them separately (account cache or RPC) and attaches them with
// WithReserves before MidPrice is called. Zero value means "unknown".
type reserves struct {
	base  uint64
	quote uint64
	known bool
}

// ErrReservesRequired is returned by MidPrice on a reserve-ratio pool that
// has not had vault balances attached via WithReserves.
type ErrReservesRequired struct {
	Kind Kind
	Pool solana.PublicKey
}

func (e *ErrReservesRequired) Error() string {
	return fmt.Sprintf("%s: mid price needs vault reserves, none attached (pool %s)", e.Kind, e.Pool)
}

// reserveRatioMidPrice prices a pool the way every constant-product AMM in
// this registry that does not expose on-chain concentrated-liquidity state
// is priced: quote vault balance divided by base vault balance, inverted
// for the opposite direction, then rescaled for mint decimals.
func reserveRatioMidPrice(kind Kind, pool, baseMint, quoteMint, from, to solana.PublicKey, r reserves, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	if !r.known {
		return decimal.Zero, &ErrReservesRequired{Kind: kind, Pool: pool}
	}

	dir, err := direction(baseMint, quoteMint, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s reserve-ratio mid price: %w", kind, err)
	}
	if r.base == 0 || r.quote == 0 {
		return decimal.Zero, fmt.Errorf("%s reserve-ratio mid price: zero reserve (base=%d quote=%d)", kind, r.base, r.quote)
	}

	baseAmt := decimal.NewFromBigInt(new(big.Int).SetUint64(r.base), 0)
	quoteAmt := decimal.NewFromBigInt(new(big.Int).SetUint64(r.quote), 0)

	var midPriceToken decimal.Decimal
	switch dir {
	case DirectionBaseToQuote: // base -> quote: price is quote per base
		midPriceToken = quoteAmt.DivRound(baseAmt, 30)
	case DirectionQuoteToBase: // quote -> base: price is base per quote
		midPriceToken = baseAmt.DivRound(quoteAmt, 30)
	}

	return rescale(midPriceToken, fromDecimals, toDecimals), nil
}
