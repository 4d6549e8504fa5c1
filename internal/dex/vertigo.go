package dex

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// VertigoPoolData is the decoded fixed-size layout behind a Vertigo pool
// account's 8-byte discriminator. Vertigo pairs a single-sided bonding
// curve at launch with a constant-product regime after graduation; the
// core treats both as reserve-ratio over the pool's current vault balances.
type VertigoPoolData struct {
	Owner           solana.PublicKey `bin:"borsh"`
	BaseMintField   solana.PublicKey `bin:"borsh"`
	QuoteMintField  solana.PublicKey `bin:"borsh"`
	BaseVaultField  solana.PublicKey `bin:"borsh"`
	QuoteVaultField solana.PublicKey `bin:"borsh"`
	ShiftFactor     uint64           `bin:"borsh"`
	RoyaltiesBps    uint16           `bin:"borsh"`
	Nonce           uint8            `bin:"borsh"`
	Padding         [5]uint8         `bin:"borsh"`

	pool     solana.PublicKey
	reserves reserves
}

// DecodeVertigo decodes a Vertigo pool account.
func DecodeVertigo(pool solana.PublicKey, data []byte) (*VertigoPoolData, error) {
	var p VertigoPoolData
	if err := decodeBorsh(KindVertigo, data, 0, &p); err != nil {
		return nil, err
	}
	p.pool = pool
	return &p, nil
}

func (p *VertigoPoolData) Kind() Kind                   { return KindVertigo }
func (p *VertigoPoolData) BaseMint() solana.PublicKey   { return p.BaseMintField }
func (p *VertigoPoolData) QuoteMint() solana.PublicKey  { return p.QuoteMintField }
func (p *VertigoPoolData) BaseVault() solana.PublicKey  { return p.BaseVaultField }
func (p *VertigoPoolData) QuoteVault() solana.PublicKey { return p.QuoteVaultField }

// WithReserves attaches the vaults' live token balances, as fetched by the
// registry, returning a priceable copy of the pool snapshot.
func (p *VertigoPoolData) WithReserves(baseBalance, quoteBalance uint64) *VertigoPoolData {
	clone := *p
	clone.reserves = reserves{base: baseBalance, quote: quoteBalance, known: true}
	return &clone
}

// MidPrice implements the reserve-ratio quote. See spec §4.1.
func (p *VertigoPoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	return reserveRatioMidPrice(KindVertigo, p.pool, p.BaseMintField, p.QuoteMintField, from, to, p.reserves, fromDecimals, toDecimals)
}
