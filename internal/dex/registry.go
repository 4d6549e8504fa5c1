package dex

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrUnknownKind is returned when Decode is asked to decode a pool whose
// kind has no registered decoder.
type ErrUnknownKind struct {
	Kind Kind
}

func (e *ErrUnknownKind) Error() string {
	return fmt.Sprintf("no decoder registered for dex kind %q", e.Kind)
}

// Decode dispatches raw account data to the per-kind decoder for kind and
// returns the uniform PoolData view. pool is the account's own address,
// needed by the reserve-ratio kinds to identify themselves in
// ErrReservesRequired.
func Decode(kind Kind, pool solana.PublicKey, data []byte) (PoolData, error) {
	switch kind {
	case KindRaydiumV4:
		return DecodeRaydiumV4(pool, data)
	case KindRaydiumCpmm:
		return DecodeRaydiumCpmm(pool, data)
	case KindRaydiumClmm:
		return DecodeRaydiumClmm(pool, data)
	case KindPump:
		return DecodePumpBondingCurve(pool, data)
	case KindPumpAmm:
		return DecodePumpAmm(pool, data)
	case KindMeteoraDlmm:
		return DecodeMeteoraDlmm(data)
	case KindMeteoraDamm:
		return DecodeMeteoraDamm(pool, data)
	case KindMeteoraDammV2:
		return DecodeMeteoraDammV2(data)
	case KindWhirlpool:
		return DecodeWhirlpool(pool, data)
	case KindSolFi:
		return DecodeSolFi(pool, data)
	case KindVertigo:
		return DecodeVertigo(pool, data)
	default:
		return nil, &ErrUnknownKind{Kind: kind}
	}
}

// NeedsReserves reports whether kind's MidPrice requires vault balances to
// be attached via the registry before it can be evaluated.
func NeedsReserves(kind Kind) bool {
	switch kind {
	case KindMeteoraDlmm, KindMeteoraDammV2, KindRaydiumClmm, KindWhirlpool, KindPump:
		return false
	default:
		return true
	}
}

// WithReserves attaches freshly fetched vault balances to a reserve-ratio
// pool snapshot, returning a priceable copy. Kinds that price themselves
// without external reserves (NeedsReserves == false) return d unchanged.
func WithReserves(d PoolData, baseBalance, quoteBalance uint64) (PoolData, error) {
	switch p := d.(type) {
	case *RaydiumV4PoolData:
		return p.WithReserves(baseBalance, quoteBalance), nil
	case *RaydiumCpmmPoolData:
		return p.WithReserves(baseBalance, quoteBalance), nil
	case *MeteoraDammPoolData:
		return p.WithReserves(baseBalance, quoteBalance), nil
	case *PumpAmmPoolData:
		return p.WithReserves(baseBalance, quoteBalance), nil
	case *SolFiPoolData:
		return p.WithReserves(baseBalance, quoteBalance), nil
	case *VertigoPoolData:
		return p.WithReserves(baseBalance, quoteBalance), nil
	default:
		if NeedsReserves(d.Kind()) {
			return nil, fmt.Errorf("%s: reserve-ratio kind missing WithReserves wiring", d.Kind())
		}
		return d, nil
	}
}
