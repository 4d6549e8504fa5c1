package dex

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// RaydiumCpmmPoolData is the decoded fixed-size layout behind a Raydium
// constant-product ("CPMM") pool state account's 8-byte discriminator.
type RaydiumCpmmPoolData struct {
	AmmConfig          solana.PublicKey `bin:"borsh"`
	PoolCreator        solana.PublicKey `bin:"borsh"`
	Token0Vault        solana.PublicKey `bin:"borsh"`
	Token1Vault        solana.PublicKey `bin:"borsh"`
	LpMint             solana.PublicKey `bin:"borsh"`
	Token0Mint         solana.PublicKey `bin:"borsh"`
	Token1Mint         solana.PublicKey `bin:"borsh"`
	Token0Program      solana.PublicKey `bin:"borsh"`
	Token1Program      solana.PublicKey `bin:"borsh"`
	ObservationKey     solana.PublicKey `bin:"borsh"`
	AuthBump           uint8            `bin:"borsh"`
	Status             uint8            `bin:"borsh"`
	LpMintDecimals     uint8            `bin:"borsh"`
	Mint0Decimals      uint8            `bin:"borsh"`
	Mint1Decimals      uint8            `bin:"borsh"`
	LpSupply           uint64           `bin:"borsh"`
	ProtocolFeesToken0 uint64           `bin:"borsh"`
	ProtocolFeesToken1 uint64           `bin:"borsh"`
	FundFeesToken0     uint64           `bin:"borsh"`
	FundFeesToken1     uint64           `bin:"borsh"`
	OpenTime           uint64           `bin:"borsh"`
	RecentEpoch        uint64           `bin:"borsh"`
	Padding            [31]uint64       `bin:"borsh"`

	pool     solana.PublicKey
	reserves reserves
}

// DecodeRaydiumCpmm decodes a Raydium CPMM pool state account.
func DecodeRaydiumCpmm(pool solana.PublicKey, data []byte) (*RaydiumCpmmPoolData, error) {
	var p RaydiumCpmmPoolData
	if err := decodeBorsh(KindRaydiumCpmm, data, 0, &p); err != nil {
		return nil, err
	}
	p.pool = pool
	return &p, nil
}

func (p *RaydiumCpmmPoolData) Kind() Kind                   { return KindRaydiumCpmm }
func (p *RaydiumCpmmPoolData) BaseMint() solana.PublicKey   { return p.Token0Mint }
func (p *RaydiumCpmmPoolData) QuoteMint() solana.PublicKey  { return p.Token1Mint }
func (p *RaydiumCpmmPoolData) BaseVault() solana.PublicKey  { return p.Token0Vault }
func (p *RaydiumCpmmPoolData) QuoteVault() solana.PublicKey { return p.Token1Vault }

// WithReserves attaches the vaults' live token balances, as fetched by the
// registry, returning a priceable copy of the pool snapshot.
func (p *RaydiumCpmmPoolData) WithReserves(baseBalance, quoteBalance uint64) *RaydiumCpmmPoolData {
	clone := *p
	clone.reserves = reserves{base: baseBalance, quote: quoteBalance, known: true}
	return &clone
}

// MidPrice implements the reserve-ratio quote shared by every constant-
// product AMM in this registry: token_1_vault_balance / token_0_vault_balance,
// inverted for the opposite direction, rescaled for decimals. See spec §4.1.
func (p *RaydiumCpmmPoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	return reserveRatioMidPrice(KindRaydiumCpmm, p.pool, p.Token0Mint, p.Token1Mint, from, to, p.reserves, fromDecimals, toDecimals)
}
