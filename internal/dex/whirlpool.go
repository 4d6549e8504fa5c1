package dex

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// WhirlpoolPoolData is the decoded fixed-size layout behind an Orca
// Whirlpool concentrated-liquidity pool account's 8-byte discriminator.
type WhirlpoolPoolData struct {
	WhirlpoolsConfig   solana.PublicKey `bin:"borsh"`
	WhirlpoolBump      [1]uint8         `bin:"borsh"`
	TickSpacing        uint16           `bin:"borsh"`
	TickSpacingSeed    [2]uint8         `bin:"borsh"`
	FeeRate            uint16           `bin:"borsh"`
	ProtocolFeeRate    uint16           `bin:"borsh"`
	Liquidity          [16]uint8        `bin:"borsh"`
	SqrtPrice          [16]uint8        `bin:"borsh"`
	TickCurrentIndex   int32            `bin:"borsh"`
	ProtocolFeeOwedA   uint64           `bin:"borsh"`
	ProtocolFeeOwedB   uint64           `bin:"borsh"`
	TokenMintA         solana.PublicKey `bin:"borsh"`
	TokenVaultA        solana.PublicKey `bin:"borsh"`
	FeeGrowthGlobalA   [16]uint8        `bin:"borsh"`
	TokenMintB         solana.PublicKey `bin:"borsh"`
	TokenVaultB        solana.PublicKey `bin:"borsh"`
	FeeGrowthGlobalB   [16]uint8        `bin:"borsh"`
	RewardLastUpdated  int64            `bin:"borsh"`
	RewardInfos        [384]uint8       `bin:"borsh"`

	pool solana.PublicKey
}

// DecodeWhirlpool decodes an Orca Whirlpool pool account.
func DecodeWhirlpool(pool solana.PublicKey, data []byte) (*WhirlpoolPoolData, error) {
	var p WhirlpoolPoolData
	if err := decodeBorsh(KindWhirlpool, data, 0, &p); err != nil {
		return nil, err
	}
	p.pool = pool
	return &p, nil
}

func (p *WhirlpoolPoolData) Kind() Kind                   { return KindWhirlpool }
func (p *WhirlpoolPoolData) BaseMint() solana.PublicKey   { return p.TokenMintA }
func (p *WhirlpoolPoolData) QuoteMint() solana.PublicKey  { return p.TokenMintB }
func (p *WhirlpoolPoolData) BaseVault() solana.PublicKey  { return p.TokenVaultA }
func (p *WhirlpoolPoolData) QuoteVault() solana.PublicKey { return p.TokenVaultB }

// MidPrice implements the Q64.64 concentrated-liquidity quote shared with
// DAMM-v2 and Raydium CLMM.
func (p *WhirlpoolPoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	low := binary.LittleEndian.Uint64(p.SqrtPrice[:8])
	return sqrtPriceMidPrice(KindWhirlpool, low, p.TokenMintA, p.TokenMintB, from, to, fromDecimals, toDecimals)
}
