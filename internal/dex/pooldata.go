package dex

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// ErrInvalidLayout is returned when decode is handed fewer bytes than the
// discriminator plus the dex-specific fixed payload require.
type ErrInvalidLayout struct {
	Kind Kind
	Got  int
	Want int
}

func (e *ErrInvalidLayout) Error() string {
	return fmt.Sprintf("%s: invalid account layout: got %d bytes, want at least %d", e.Kind, e.Got, e.Want)
}

// ErrMissingDesiredMint is returned when a pool's mint pair does not
// contain the configured anchor mint.
type ErrMissingDesiredMint struct {
	Pool   solana.PublicKey
	Anchor solana.PublicKey
}

func (e *ErrMissingDesiredMint) Error() string {
	return fmt.Sprintf("pool %s does not contain desired mint %s", e.Pool, e.Anchor)
}

// Direction names which side of a pool's pair a quote moves from/to.
type Direction int

const (
	DirectionBaseToQuote Direction = iota
	DirectionQuoteToBase
)

// PoolData is the uniform surface every per-dex decoded account snapshot
// exposes. Implementations are value types holding the raw decoded fields;
// the rest of each record is preserved verbatim in the JSON snapshot stored
// alongside the pool record but otherwise opaque to the core.
type PoolData interface {
	Kind() Kind
	BaseMint() solana.PublicKey
	QuoteMint() solana.PublicKey
	BaseVault() solana.PublicKey
	QuoteVault() solana.PublicKey

	// MidPrice returns how many whole `to` tokens one whole `from` token
	// is worth at the pool's current state, decimal-rescaled for mint
	// decimals. from/to must be the pool's two mints in either order.
	MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error)
}

// direction resolves which way a quote runs given a pool's two mints.
func direction(base, quote, from, to solana.PublicKey) (Direction, error) {
	switch {
	case from.Equals(base) && to.Equals(quote):
		return DirectionBaseToQuote, nil
	case from.Equals(quote) && to.Equals(base):
		return DirectionQuoteToBase, nil
	default:
		return 0, fmt.Errorf("mints (%s -> %s) do not match pool pair (%s, %s)", from, to, base, quote)
	}
}

// rescale converts a raw per-unit price into a whole-token price by
// multiplying by 10^(toDecimals-fromDecimals).
func rescale(price decimal.Decimal, fromDecimals, toDecimals uint8) decimal.Decimal {
	exp := int32(toDecimals) - int32(fromDecimals)
	return price.Shift(exp)
}

// ShallContain fails with ErrMissingDesiredMint unless the pool's pair
// contains anchor.
func ShallContain(d PoolData, anchor solana.PublicKey) error {
	if d.BaseMint().Equals(anchor) || d.QuoteMint().Equals(anchor) {
		return nil
	}
	return &ErrMissingDesiredMint{Anchor: anchor}
}

// MinorMint returns the side of the pair that is not anchor. Callers must
// have already validated the pair contains anchor via ShallContain.
func MinorMint(d PoolData, anchor solana.PublicKey) solana.PublicKey {
	if d.BaseMint().Equals(anchor) {
		return d.QuoteMint()
	}
	return d.BaseMint()
}
