package dex

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// RaydiumV4PoolData is the decoded fixed-size layout behind a legacy
// Raydium AMM v4 ("liquidity pool v4") state account's 8-byte discriminator.
// Only the fields the core consumes are kept positionally meaningful; the
// rest of the record exists purely to keep field offsets aligned.
type RaydiumV4PoolData struct {
	Status             uint64           `bin:"borsh"`
	Nonce              uint64           `bin:"borsh"`
	MaxOrder           uint64           `bin:"borsh"`
	Depth              uint64           `bin:"borsh"`
	BaseDecimal        uint64           `bin:"borsh"`
	QuoteDecimal       uint64           `bin:"borsh"`
	State              uint64           `bin:"borsh"`
	ResetFlag          uint64           `bin:"borsh"`
	MinSize            uint64           `bin:"borsh"`
	VolMaxCutRatio     uint64           `bin:"borsh"`
	AmountWaveRatio    uint64           `bin:"borsh"`
	BaseLotSize        uint64           `bin:"borsh"`
	QuoteLotSize       uint64           `bin:"borsh"`
	MinPriceMultiplier uint64           `bin:"borsh"`
	MaxPriceMultiplier uint64           `bin:"borsh"`
	SystemDecimalValue uint64           `bin:"borsh"`
	MinSeparateNumer   uint64           `bin:"borsh"`
	MinSeparateDenom   uint64           `bin:"borsh"`
	TradeFeeNumer      uint64           `bin:"borsh"`
	TradeFeeDenom      uint64           `bin:"borsh"`
	PnlNumer           uint64           `bin:"borsh"`
	PnlDenom           uint64           `bin:"borsh"`
	SwapFeeNumer       uint64           `bin:"borsh"`
	SwapFeeDenom       uint64           `bin:"borsh"`
	BaseNeedTakePnl    uint64           `bin:"borsh"`
	QuoteNeedTakePnl   uint64           `bin:"borsh"`
	QuoteTotalPnl      uint64           `bin:"borsh"`
	BaseTotalPnl       uint64           `bin:"borsh"`
	PoolOpenTime       uint64           `bin:"borsh"`
	PunishPcAmount     uint64           `bin:"borsh"`
	PunishCoinAmount   uint64           `bin:"borsh"`
	OrderbookToInitTime uint64          `bin:"borsh"`
	SwapBaseInAmount   [2]uint64        `bin:"borsh"`
	SwapQuoteOutAmount [2]uint64        `bin:"borsh"`
	SwapBase2QuoteFee  uint64           `bin:"borsh"`
	SwapQuoteInAmount  [2]uint64        `bin:"borsh"`
	SwapBaseOutAmount  [2]uint64        `bin:"borsh"`
	SwapQuote2BaseFee  uint64           `bin:"borsh"`
	BaseVaultField     solana.PublicKey `bin:"borsh"`
	QuoteVaultField    solana.PublicKey `bin:"borsh"`
	BaseMintField      solana.PublicKey `bin:"borsh"`
	QuoteMintField     solana.PublicKey `bin:"borsh"`
	LpMint             solana.PublicKey `bin:"borsh"`
	OpenOrders         solana.PublicKey `bin:"borsh"`
	MarketID           solana.PublicKey `bin:"borsh"`
	MarketProgramID    solana.PublicKey `bin:"borsh"`
	TargetOrders       solana.PublicKey `bin:"borsh"`
	WithdrawQueue      solana.PublicKey `bin:"borsh"`
	LpVault            solana.PublicKey `bin:"borsh"`
	Owner              solana.PublicKey `bin:"borsh"`
	LpReserve          uint64           `bin:"borsh"`
	Padding            [3]uint64        `bin:"borsh"`

	pool     solana.PublicKey
	reserves reserves
}

// DecodeRaydiumV4 decodes a legacy Raydium AMM v4 pool state account.
func DecodeRaydiumV4(pool solana.PublicKey, data []byte) (*RaydiumV4PoolData, error) {
	var p RaydiumV4PoolData
	if err := decodeBorsh(KindRaydiumV4, data, 0, &p); err != nil {
		return nil, err
	}
	p.pool = pool
	return &p, nil
}

func (p *RaydiumV4PoolData) Kind() Kind                   { return KindRaydiumV4 }
func (p *RaydiumV4PoolData) BaseMint() solana.PublicKey   { return p.BaseMintField }
func (p *RaydiumV4PoolData) QuoteMint() solana.PublicKey  { return p.QuoteMintField }
func (p *RaydiumV4PoolData) BaseVault() solana.PublicKey  { return p.BaseVaultField }
func (p *RaydiumV4PoolData) QuoteVault() solana.PublicKey { return p.QuoteVaultField }

// WithReserves attaches the vaults' live token balances, as fetched by the
// registry, returning a priceable copy of the pool snapshot.
func (p *RaydiumV4PoolData) WithReserves(baseBalance, quoteBalance uint64) *RaydiumV4PoolData {
	clone := *p
	clone.reserves = reserves{base: baseBalance, quote: quoteBalance, known: true}
	return &clone
}

// MidPrice implements the reserve-ratio quote. See spec §4.1.
func (p *RaydiumV4PoolData) MidPrice(from, to solana.PublicKey, fromDecimals, toDecimals uint8) (decimal.Decimal, error) {
	return reserveRatioMidPrice(KindRaydiumV4, p.pool, p.BaseMintField, p.QuoteMintField, from, to, p.reserves, fromDecimals, toDecimals)
}
