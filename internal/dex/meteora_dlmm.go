package dex

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// meteoraDlmmStaticParams and meteoraDlmmVariableParams are the fee/
// volatility parameter blocks embedded in the DLMM pair account, preserved
// verbatim in the decoded snapshot but not otherwise consumed by the core.
type meteoraDlmmStaticParams struct {
	BaseFactor               uint16   `bin:"borsh"`
	FilterPeriod             uint16   `bin:"borsh"`
	DecayPeriod              uint16   `bin:"borsh"`
	ReductionFactor          uint16   `bin:"borsh"`
	VariableFeeControl       uint32   `bin:"borsh"`
	MaxVolatilityAccumulator uint32   `bin:"borsh"`
	MinBinID                 int32    `bin:"borsh"`
	MaxBinID                 int32    `bin:"borsh"`
	ProtocolShare            uint16   `bin:"borsh"`
	BaseFeePowerFactor       uint8    `bin:"borsh"`
	Padding                  [5]uint8 `bin:"borsh"`
}

type meteoraDlmmVariableParams struct {
	VolatilityAccumulator uint32   `bin:"borsh"`
	VolatilityReference   uint32   `bin:"borsh"`
	IndexReference        int32    `bin:"borsh"`
	Padding               [4]uint8 `bin:"borsh"`
	LastUpdateTimestamp   int64    `bin:"borsh"`
	Padding1              [8]uint8 `bin:"borsh"`
}

type meteoraDlmmProtocolFee struct {
	AmountX uint64 `bin:"borsh"`
	AmountY uint64 `bin:"borsh"`
}

type meteoraDlmmRewardInfo struct {
	Mint                                      solana.PublicKey `bin:"borsh"`
	Vault                                     solana.PublicKey `bin:"borsh"`
	Funder                                    solana.PublicKey `bin:"borsh"`
	RewardDuration                            int64            `bin:"borsh"`
	RewardDurationEnd                         int64            `bin:"borsh"`
	RewardRate                                int64            `bin:"borsh"`
	LastUpdateTime                            int64            `bin:"borsh"`
	CumulativeSecondsWithEmptyLiquidityReward int64            `bin:"borsh"`
}

// MeteoraDlmmPoolData is the decoded fixed-size layout behind a Meteora
// DLMM (Dynamic Liquidity Market Maker) "lb_pair" account's 8-byte
// discriminator.
type MeteoraDlmmPoolData struct {
	Parameters              meteoraDlmmStaticParams   `bin:"borsh"`
	VParameters             meteoraDlmmVariableParams `bin:"borsh"`
	BumpSeed                [1]uint8                  `bin:"borsh"`
	BinStepSeed             [2]uint8                  `bin:"borsh"`
	PairType                uint8                     `bin:"borsh"`
	ActiveID                int32                     `bin:"borsh"`
	BinStep                 uint16                    `bin:"borsh"`
	Status                  uint8                     `bin:"borsh"`
	RequireBaseFactorSeed   uint8                     `bin:"borsh"`
	BaseFactorSeed          [2]uint8                  `bin:"borsh"`
	ActivationType          uint8                     `bin:"borsh"`
	CreatorPoolOnOffControl uint8                     `bin:"borsh"`
	TokenXMint              solana.PublicKey          `bin:"borsh"`
	TokenYMint              solana.PublicKey          `bin:"borsh"`
	ReserveX                solana.PublicKey          `bin:"borsh"`
	ReserveY                solana.PublicKey          `bin:"borsh"`
	ProtocolFee             meteoraDlmmProtocolFee    `bin:"borsh"`
	Padding1                [32]uint8                 `bin:"borsh"`
	RewardInfos             [2]meteoraDlmmRewardInfo  `bin:"borsh"`
	Oracle                  solana.PublicKey          `bin:"borsh"`
	BinArrayBitmap          [16]uint64                `bin:"borsh"`
	LastUpdatedAt           int64                     `bin:"borsh"`
	Padding2                [32]uint8                 `bin:"borsh"`
	PreActivationSwapAddr   solana.PublicKey          `bin:"borsh"`
	BaseKey                 solana.PublicKey          `bin:"borsh"`
	ActivationPoint         uint64                    `bin:"borsh"`
	PreActivationDuration   uint64                    `bin:"borsh"`
	Padding3                [8]uint8                  `bin:"borsh"`
	Padding4                uint64                    `bin:"borsh"`
	Creator                 solana.PublicKey          `bin:"borsh"`
	TokenMintXProgramFlag   uint8                     `bin:"borsh"`
	TokenMintYProgramFlag   uint8                     `bin:"borsh"`
	Reserved                [22]uint8                 `bin:"borsh"`
}

// DecodeMeteoraDlmm decodes a Meteora DLMM "lb_pair" account.
func DecodeMeteoraDlmm(data []byte) (*MeteoraDlmmPoolData, error) {
	var p MeteoraDlmmPoolData
	if err := decodeBorsh(KindMeteoraDlmm, data, 0, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *MeteoraDlmmPoolData) Kind() Kind                     { return KindMeteoraDlmm }
func (p *MeteoraDlmmPoolData) BaseMint() solana.PublicKey     { return p.TokenXMint }
func (p *MeteoraDlmmPoolData) QuoteMint() solana.PublicKey    { return p.TokenYMint }
func (p *MeteoraDlmmPoolData) BaseVault() solana.PublicKey    { return p.ReserveX }
func (p *MeteoraDlmmPoolData) QuoteVault() solana.PublicKey   { return p.ReserveY }

// MidPrice implements the DLMM 0-slippage quote: (1 + bin_step/10000)^active_id
// gives X per Y; the inverse gives Y per X. See spec §4.1.
func (p *MeteoraDlmmPoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	dir, err := direction(p.TokenXMint, p.TokenYMint, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("dlmm mid price: %w", err)
	}

	base := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(p.BinStep)).Div(decimal.NewFromInt(10_000)))
	pxXPerY := base.Pow(decimal.NewFromInt(int64(p.ActiveID)))

	var midPriceToken decimal.Decimal
	switch dir {
	case DirectionBaseToQuote: // X -> Y
		midPriceToken = pxXPerY
	case DirectionQuoteToBase: // Y -> X
		midPriceToken = decimal.NewFromInt(1).DivRound(pxXPerY, 30)
	}

	return rescale(midPriceToken, fromDecimals, toDecimals), nil
}
