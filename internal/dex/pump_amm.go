package dex

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// PumpAmmPoolData is the decoded fixed-size layout behind a pump.fun AMM
// ("PumpSwap") pool account's 8-byte discriminator — the graduated-curve
// successor to the bonding-curve record in pump.go.
type PumpAmmPoolData struct {
	PoolBump             uint8            `bin:"borsh"`
	Index                uint16           `bin:"borsh"`
	Creator              solana.PublicKey `bin:"borsh"`
	BaseMintField        solana.PublicKey `bin:"borsh"`
	QuoteMintField       solana.PublicKey `bin:"borsh"`
	LpMint               solana.PublicKey `bin:"borsh"`
	PoolBaseTokenAccount solana.PublicKey `bin:"borsh"`
	PoolQuoteTokenAccount solana.PublicKey `bin:"borsh"`
	LpSupply             uint64           `bin:"borsh"`
	CoinCreator          solana.PublicKey `bin:"borsh"`
	Padding              [57]uint8        `bin:"borsh"`

	pool     solana.PublicKey
	reserves reserves
}

// DecodePumpAmm decodes a pump.fun AMM pool account.
func DecodePumpAmm(pool solana.PublicKey, data []byte) (*PumpAmmPoolData, error) {
	var p PumpAmmPoolData
	if err := decodeBorsh(KindPumpAmm, data, 0, &p); err != nil {
		return nil, err
	}
	p.pool = pool
	return &p, nil
}

func (p *PumpAmmPoolData) Kind() Kind                   { return KindPumpAmm }
func (p *PumpAmmPoolData) BaseMint() solana.PublicKey   { return p.BaseMintField }
func (p *PumpAmmPoolData) QuoteMint() solana.PublicKey  { return p.QuoteMintField }
func (p *PumpAmmPoolData) BaseVault() solana.PublicKey  { return p.PoolBaseTokenAccount }
func (p *PumpAmmPoolData) QuoteVault() solana.PublicKey { return p.PoolQuoteTokenAccount }

// WithReserves attaches the vaults' live token balances, as fetched by the
// registry, returning a priceable copy of the pool snapshot.
func (p *PumpAmmPoolData) WithReserves(baseBalance, quoteBalance uint64) *PumpAmmPoolData {
	clone := *p
	clone.reserves = reserves{base: baseBalance, quote: quoteBalance, known: true}
	return &clone
}

// MidPrice implements the reserve-ratio quote. See spec §4.1.
func (p *PumpAmmPoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	return reserveRatioMidPrice(KindPumpAmm, p.pool, p.BaseMintField, p.QuoteMintField, from, to, p.reserves, fromDecimals, toDecimals)
}
