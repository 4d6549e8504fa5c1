package dex

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// PumpBondingCurvePoolData is the decoded fixed-size layout behind a
// pump.fun bonding-curve account's 8-byte discriminator. Unlike every other
// dex kind in this registry, the reserves priced here are virtual
// quantities carried directly in the account, not external vault balances,
// so PumpBondingCurvePoolData needs no WithReserves step.
type PumpBondingCurvePoolData struct {
	VirtualTokenReserves uint64           `bin:"borsh"`
	VirtualSolReserves   uint64           `bin:"borsh"`
	RealTokenReserves    uint64           `bin:"borsh"`
	RealSolReserves      uint64           `bin:"borsh"`
	TokenTotalSupply     uint64           `bin:"borsh"`
	Complete             bool             `bin:"borsh"`
	Creator              solana.PublicKey `bin:"borsh"`

	mint solana.PublicKey
}

// WrappedSolMint is the canonical wrapped-SOL mint every bonding curve
// quotes against.
var WrappedSolMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

// DecodePumpBondingCurve decodes a pump.fun bonding-curve account. mint is
// the curve's token mint, which the account itself does not carry; callers
// derive it from the curve's PDA seeds or from the originating instruction.
func DecodePumpBondingCurve(mint solana.PublicKey, data []byte) (*PumpBondingCurvePoolData, error) {
	var p PumpBondingCurvePoolData
	if err := decodeBorsh(KindPump, data, 0, &p); err != nil {
		return nil, err
	}
	p.mint = mint
	return &p, nil
}

func (p *PumpBondingCurvePoolData) Kind() Kind { return KindPump }

// BaseMint is the curve's own token; QuoteMint is wrapped SOL, the only
// asset a bonding curve ever quotes against.
func (p *PumpBondingCurvePoolData) BaseMint() solana.PublicKey  { return p.mint }
func (p *PumpBondingCurvePoolData) QuoteMint() solana.PublicKey { return WrappedSolMint }

// BaseVault and QuoteVault have no meaning for a bonding curve: its
// reserves are virtual counters on the account itself, not token accounts.
// Callers that need an associated token account derive it from the curve
// PDA; the zero key signals "not applicable" here.
func (p *PumpBondingCurvePoolData) BaseVault() solana.PublicKey  { return solana.PublicKey{} }
func (p *PumpBondingCurvePoolData) QuoteVault() solana.PublicKey { return solana.PublicKey{} }

// MidPrice implements the constant-product bonding-curve quote:
// virtual_sol_reserves / virtual_token_reserves gives SOL per token.
func (p *PumpBondingCurvePoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	dir, err := direction(p.mint, WrappedSolMint, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("pump bonding curve mid price: %w", err)
	}
	if p.VirtualTokenReserves == 0 || p.VirtualSolReserves == 0 {
		return decimal.Zero, fmt.Errorf("pump bonding curve mid price: zero virtual reserve")
	}

	sol := decimal.NewFromInt(int64(p.VirtualSolReserves))
	tok := decimal.NewFromInt(int64(p.VirtualTokenReserves))

	var midPriceToken decimal.Decimal
	switch dir {
	case DirectionBaseToQuote: // token -> SOL
		midPriceToken = sol.DivRound(tok, 30)
	case DirectionQuoteToBase: // SOL -> token
		midPriceToken = tok.DivRound(sol, 30)
	}

	return rescale(midPriceToken, fromDecimals, toDecimals), nil
}
