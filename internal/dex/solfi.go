package dex

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// SolFiPoolData is the decoded fixed-size layout behind a SolFi pool
// account's 8-byte discriminator. SolFi runs a plain constant-product
// market maker; only the fields the core needs are named.
type SolFiPoolData struct {
	Authority       solana.PublicKey `bin:"borsh"`
	BaseMintField   solana.PublicKey `bin:"borsh"`
	QuoteMintField  solana.PublicKey `bin:"borsh"`
	BaseVaultField  solana.PublicKey `bin:"borsh"`
	QuoteVaultField solana.PublicKey `bin:"borsh"`
	BaseDecimals    uint8            `bin:"borsh"`
	QuoteDecimals   uint8            `bin:"borsh"`
	Status          uint8            `bin:"borsh"`
	Padding         [29]uint8        `bin:"borsh"`

	pool     solana.PublicKey
	reserves reserves
}

// DecodeSolFi decodes a SolFi pool account.
func DecodeSolFi(pool solana.PublicKey, data []byte) (*SolFiPoolData, error) {
	var p SolFiPoolData
	if err := decodeBorsh(KindSolFi, data, 0, &p); err != nil {
		return nil, err
	}
	p.pool = pool
	return &p, nil
}

func (p *SolFiPoolData) Kind() Kind                   { return KindSolFi }
func (p *SolFiPoolData) BaseMint() solana.PublicKey   { return p.BaseMintField }
func (p *SolFiPoolData) QuoteMint() solana.PublicKey  { return p.QuoteMintField }
func (p *SolFiPoolData) BaseVault() solana.PublicKey  { return p.BaseVaultField }
func (p *SolFiPoolData) QuoteVault() solana.PublicKey { return p.QuoteVaultField }

// WithReserves attaches the vaults' live token balances, as fetched by the
// registry, returning a priceable copy of the pool snapshot.
func (p *SolFiPoolData) WithReserves(baseBalance, quoteBalance uint64) *SolFiPoolData {
	clone := *p
	clone.reserves = reserves{base: baseBalance, quote: quoteBalance, known: true}
	return &clone
}

// MidPrice implements the reserve-ratio quote. See spec §4.1.
func (p *SolFiPoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	return reserveRatioMidPrice(KindSolFi, p.pool, p.BaseMintField, p.QuoteMintField, from, to, p.reserves, fromDecimals, toDecimals)
}
