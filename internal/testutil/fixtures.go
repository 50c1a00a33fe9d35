package testutil

import (
	"math/big"

	"github.com/bimakw/ivg-dashboard/internal/config"
	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
)

// Common test addresses
const (
	MintAddress   = "So11111111111111111111111111111111111111112"
	WalletAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	QuoteMint     = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	APIKey        = "test-api-key"
)

// PairsBody is a DexScreener token-pairs response with two pairs; the
// second has no numeric liquidity
const PairsBody = `[{"chainId":"solana","dexId":"raydium","url":"https://dexscreener.com/solana/pair1","pairAddress":"pair1","baseToken":{"address":"So11111111111111111111111111111111111111112","symbol":"IVG"},"priceUsd":"0.0125","liquidity":{"usd":25000.5},"volume":{"h24":1234.5},"priceChange":{"h24":-3.2},"txns":{"h24":{"buys":40,"sells":12}},"marketCap":125000,"fdv":130000},{"chainId":"solana","dexId":"orca","pairAddress":"pair2","priceUsd":"0.0126","liquidity":{"usd":null}}]`

// PnlBody is a SolanaTracker PnL response for WalletAddress
const PnlBody = `{"tokens":{"So11111111111111111111111111111111111111112":{"holding":1500.25,"current_value":18.75,"buy_transactions":3,"sell_transactions":1,"total_transactions":4}},"summary":{"totalInvested":500,"realized":12.5,"unrealized":-3.25,"total":9.25,"winPercentage":66.7,"lossPercentage":33.3},"pnl_since":1704067200000}`

// TestDashboardConfig returns a complete dashboard configuration
func TestDashboardConfig() config.DashboardConfig {
	return config.DashboardConfig{
		Mint:   MintAddress,
		Wallet: WalletAddress,
		APIKey: APIKey,
	}
}

// CreateTestPair creates a pair with default values
func CreateTestPair(opts ...PairOption) entities.MarketPair {
	p := entities.MarketPair{
		ChainID:     "solana",
		DexID:       "raydium",
		URL:         "https://dexscreener.com/solana/pair1",
		PairAddress: "pair1",
		BaseToken:   entities.PairToken{Address: MintAddress, Symbol: "IVG"},
		QuoteToken:  entities.PairToken{Address: QuoteMint, Symbol: "USDC"},
		PriceUsd:    "0.0125",
		MarketCap:   entities.NewNumber(125000),
		Fdv:         entities.NewNumber(130000),
		Liquidity:   entities.PairLiquidity{Usd: entities.NewNumber(25000.5)},
	}
	p.Volume.H24 = entities.NewNumber(1234.5)
	p.PriceChange.H24 = entities.NewNumber(-3.2)
	p.Txns.H24 = entities.TxnCount{Buys: entities.NewNumber(40), Sells: entities.NewNumber(12)}

	for _, opt := range opts {
		opt(&p)
	}
	return p
}

type PairOption func(*entities.MarketPair)

func PairWithDex(dex string) PairOption {
	return func(p *entities.MarketPair) {
		p.DexID = dex
	}
}

func PairWithAddress(addr string) PairOption {
	return func(p *entities.MarketPair) {
		p.PairAddress = addr
	}
}

func PairWithLiquidity(usd float64) PairOption {
	return func(p *entities.MarketPair) {
		p.Liquidity.Usd = entities.NewNumber(usd)
	}
}

func PairWithoutLiquidity() PairOption {
	return func(p *entities.MarketPair) {
		p.Liquidity.Usd = entities.Number{}
	}
}

func PairWithPrice(price string) PairOption {
	return func(p *entities.MarketPair) {
		p.PriceUsd = price
	}
}

// DefaultPairs mirrors PairsBody
func DefaultPairs() []entities.MarketPair {
	return []entities.MarketPair{
		CreateTestPair(),
		CreateTestPair(PairWithDex("orca"), PairWithAddress("pair2"), PairWithPrice("0.0126"), PairWithoutLiquidity()),
	}
}

// CreateTestPnl mirrors PnlBody
func CreateTestPnl() *entities.WalletPnl {
	return &entities.WalletPnl{
		Summary: entities.PnlSummary{
			TotalInvested:  entities.NewNumber(500),
			Realized:       entities.NewNumber(12.5),
			Unrealized:     entities.NewNumber(-3.25),
			Total:          entities.NewNumber(9.25),
			WinPercentage:  entities.NewNumber(66.7),
			LossPercentage: entities.NewNumber(33.3),
		},
		PnlSince: entities.NewNumber(1704067200000),
		Tokens: map[string]entities.TokenPnl{
			MintAddress: {
				Holding:           entities.NewNumber(1500.25),
				CurrentValue:      entities.NewNumber(18.75),
				BuyTransactions:   entities.NewNumber(3),
				SellTransactions:  entities.NewNumber(1),
				TotalTransactions: entities.NewNumber(4),
			},
		},
	}
}

// CreateTestHolding returns 1500.25 tokens with 6 decimals
func CreateTestHolding() *entities.Holding {
	raw := big.NewInt(1500250000)
	return &entities.Holding{
		Owner:    WalletAddress,
		Mint:     MintAddress,
		Raw:      raw,
		RawStr:   raw.String(),
		Decimals: 6,
		Display:  "1500.25",
		Numeric:  1500.25,
		Accounts: 2,
	}
}
