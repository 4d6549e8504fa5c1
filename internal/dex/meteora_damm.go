package dex

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// MeteoraDammPoolData is the decoded fixed-size layout behind a Meteora
// DAMM v1 ("dynamic AMM") pool account's 8-byte discriminator — the
// predecessor to DAMM-v2, priced the same reserve-ratio way as Raydium
// CPMM rather than through a sqrt-price curve.
type MeteoraDammPoolData struct {
	LpMint          solana.PublicKey `bin:"borsh"`
	TokenAMintField solana.PublicKey `bin:"borsh"`
	TokenBMintField solana.PublicKey `bin:"borsh"`
	AVaultField     solana.PublicKey `bin:"borsh"`
	BVaultField     solana.PublicKey `bin:"borsh"`
	AVaultLp        solana.PublicKey `bin:"borsh"`
	BVaultLp        solana.PublicKey `bin:"borsh"`
	AVaultLpBump    uint8            `bin:"borsh"`
	Enabled         bool             `bin:"borsh"`
	Padding         [30]uint8        `bin:"borsh"`

	pool     solana.PublicKey
	reserves reserves
}

// DecodeMeteoraDamm decodes a Meteora DAMM v1 pool account.
func DecodeMeteoraDamm(pool solana.PublicKey, data []byte) (*MeteoraDammPoolData, error) {
	var p MeteoraDammPoolData
	if err := decodeBorsh(KindMeteoraDamm, data, 0, &p); err != nil {
		return nil, err
	}
	p.pool = pool
	return &p, nil
}

func (p *MeteoraDammPoolData) Kind() Kind                   { return KindMeteoraDamm }
func (p *MeteoraDammPoolData) BaseMint() solana.PublicKey   { return p.TokenAMintField }
func (p *MeteoraDammPoolData) QuoteMint() solana.PublicKey  { return p.TokenBMintField }
func (p *MeteoraDammPoolData) BaseVault() solana.PublicKey  { return p.AVaultField }
func (p *MeteoraDammPoolData) QuoteVault() solana.PublicKey { return p.BVaultField }

// WithReserves attaches the underlying vaults' live token balances, as
// fetched by the registry, returning a priceable copy of the pool snapshot.
func (p *MeteoraDammPoolData) WithReserves(baseBalance, quoteBalance uint64) *MeteoraDammPoolData {
	clone := *p
	clone.reserves = reserves{base: baseBalance, quote: quoteBalance, known: true}
	return &clone
}

// MidPrice implements the reserve-ratio quote. See spec §4.1.
func (p *MeteoraDammPoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	return reserveRatioMidPrice(KindMeteoraDamm, p.pool, p.TokenAMintField, p.TokenBMintField, from, to, p.reserves, fromDecimals, toDecimals)
}
