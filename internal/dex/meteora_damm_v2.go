package dex

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// MeteoraDammV2PoolData is the decoded fixed-size layout behind a Meteora
// DAMM-v2 ("cp-amm") pool account's 8-byte discriminator. Fee and
// volatility bookkeeping fields are preserved positionally but, like the
// DLMM record, are otherwise opaque to the core.
type MeteoraDammV2PoolData struct {
	PoolFees           [136]uint8       `bin:"borsh"`
	TokenAMint         solana.PublicKey `bin:"borsh"`
	TokenBMint         solana.PublicKey `bin:"borsh"`
	TokenAVault        solana.PublicKey `bin:"borsh"`
	TokenBVault        solana.PublicKey `bin:"borsh"`
	WhitelistedVault   solana.PublicKey `bin:"borsh"`
	PartnerInfo        solana.PublicKey `bin:"borsh"`
	Padding            [8]uint64        `bin:"borsh"`
	SqrtMinPrice       uint64           `bin:"borsh"`
	SqrtMaxPrice       uint64           `bin:"borsh"`
	SqrtPrice          uint64           `bin:"borsh"`
	ActivationPoint    uint64           `bin:"borsh"`
	ActivationType     uint8            `bin:"borsh"`
	PoolStatus         uint8            `bin:"borsh"`
	TokenAFlag         uint8            `bin:"borsh"`
	TokenBFlag         uint8            `bin:"borsh"`
	CollectFeeMode     uint8            `bin:"borsh"`
	PoolType           uint8            `bin:"borsh"`
	Padding0           [2]uint8         `bin:"borsh"`
	Liquidity          [16]uint8        `bin:"borsh"`
	Reserved           [32]uint8        `bin:"borsh"`
}

// DecodeMeteoraDammV2 decodes a Meteora DAMM-v2 pool account.
func DecodeMeteoraDammV2(data []byte) (*MeteoraDammV2PoolData, error) {
	var p MeteoraDammV2PoolData
	if err := decodeBorsh(KindMeteoraDammV2, data, 0, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *MeteoraDammV2PoolData) Kind() Kind                   { return KindMeteoraDammV2 }
func (p *MeteoraDammV2PoolData) BaseMint() solana.PublicKey   { return p.TokenAMint }
func (p *MeteoraDammV2PoolData) QuoteMint() solana.PublicKey  { return p.TokenBMint }
func (p *MeteoraDammV2PoolData) BaseVault() solana.PublicKey  { return p.TokenAVault }
func (p *MeteoraDammV2PoolData) QuoteVault() solana.PublicKey { return p.TokenBVault }

// MidPrice implements the DAMM-v2 quote: (sqrt_price / 2^64)^2 gives A per
// B; the inverse gives B per A. See spec §4.1.
func (p *MeteoraDammV2PoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	return sqrtPriceMidPrice(KindMeteoraDammV2, p.SqrtPrice, p.TokenAMint, p.TokenBMint, from, to, fromDecimals, toDecimals)
}
