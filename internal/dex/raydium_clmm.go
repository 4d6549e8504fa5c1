package dex

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// RaydiumClmmPoolData is the decoded fixed-size layout behind a Raydium
// concentrated-liquidity ("CLMM") pool state account's 8-byte discriminator.
type RaydiumClmmPoolData struct {
	Bump               [1]uint8         `bin:"borsh"`
	AmmConfig          solana.PublicKey `bin:"borsh"`
	Owner              solana.PublicKey `bin:"borsh"`
	TokenMint0         solana.PublicKey `bin:"borsh"`
	TokenMint1         solana.PublicKey `bin:"borsh"`
	TokenVault0        solana.PublicKey `bin:"borsh"`
	TokenVault1        solana.PublicKey `bin:"borsh"`
	ObservationKey     solana.PublicKey `bin:"borsh"`
	MintDecimals0      uint8            `bin:"borsh"`
	MintDecimals1      uint8            `bin:"borsh"`
	TickSpacing        uint16           `bin:"borsh"`
	Liquidity          [16]uint8        `bin:"borsh"`
	SqrtPriceX64       [16]uint8        `bin:"borsh"`
	TickCurrent        int32            `bin:"borsh"`
	Padding            [4]uint8         `bin:"borsh"`
	FeeGrowthGlobal0X64 [16]uint8       `bin:"borsh"`
	FeeGrowthGlobal1X64 [16]uint8       `bin:"borsh"`
	ProtocolFeesToken0 uint64           `bin:"borsh"`
	ProtocolFeesToken1 uint64           `bin:"borsh"`
	Status             uint8            `bin:"borsh"`
	Reserved           [31]uint8        `bin:"borsh"`

	pool solana.PublicKey
}

// DecodeRaydiumClmm decodes a Raydium CLMM pool state account.
func DecodeRaydiumClmm(pool solana.PublicKey, data []byte) (*RaydiumClmmPoolData, error) {
	var p RaydiumClmmPoolData
	if err := decodeBorsh(KindRaydiumClmm, data, 0, &p); err != nil {
		return nil, err
	}
	p.pool = pool
	return &p, nil
}

func (p *RaydiumClmmPoolData) Kind() Kind                   { return KindRaydiumClmm }
func (p *RaydiumClmmPoolData) BaseMint() solana.PublicKey   { return p.TokenMint0 }
func (p *RaydiumClmmPoolData) QuoteMint() solana.PublicKey  { return p.TokenMint1 }
func (p *RaydiumClmmPoolData) BaseVault() solana.PublicKey  { return p.TokenVault0 }
func (p *RaydiumClmmPoolData) QuoteVault() solana.PublicKey { return p.TokenVault1 }

// MidPrice implements the Q64.64 concentrated-liquidity quote shared with
// DAMM-v2 and Whirlpool. SqrtPriceX64 is stored on-chain as a u128; prices
// that survive decimal rescaling fit comfortably in the low 64 bits, so
// only those are read.
func (p *RaydiumClmmPoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	low := binary.LittleEndian.Uint64(p.SqrtPriceX64[:8])
	return sqrtPriceMidPrice(KindRaydiumClmm, low, p.TokenMint0, p.TokenMint1, from, to, fromDecimals, toDecimals)
}
