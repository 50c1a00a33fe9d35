package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketPair_MalformedNestedFieldsAreAbsent(t *testing.T) {
	body := `{
		"dexId": "b",
		"pairAddress": 42,
		"baseToken": "IVG",
		"liquidity": {"usd": 500, "base": {"x": 1}},
		"volume": [1, 2],
		"priceChange": {"h24": -1.5, "h1": "n/a"},
		"txns": {"h24": "n/a", "h1": {"buys": 3, "sells": "many"}}
	}`

	var pair MarketPair
	require.NoError(t, json.Unmarshal([]byte(body), &pair))

	assert.Equal(t, "b", pair.DexID)
	assert.Empty(t, pair.PairAddress)
	assert.Empty(t, pair.BaseToken.Symbol)

	usd, ok := pair.LiquidityUSD()
	require.True(t, ok)
	assert.Equal(t, 500.0, usd)
	assert.False(t, pair.Liquidity.Base.Valid())

	assert.False(t, pair.Volume.H24.Valid())
	assert.Equal(t, -1.5, pair.PriceChange.H24.Float())
	assert.False(t, pair.PriceChange.H1.Valid())

	assert.False(t, pair.Txns.H24.Buys.Valid())
	assert.Equal(t, 3.0, pair.Txns.H1.Buys.Float())
	assert.False(t, pair.Txns.H1.Sells.Valid())
}

func TestMarketPair_LiquidityNotAnObject(t *testing.T) {
	var pair MarketPair
	require.NoError(t, json.Unmarshal([]byte(`{"dexId":"a","liquidity":"x","priceUsd":"0.1"}`), &pair))

	assert.Equal(t, "a", pair.DexID)
	assert.Equal(t, "0.1", pair.PriceUsd)
	_, ok := pair.LiquidityUSD()
	assert.False(t, ok)
}

func TestWalletPnl_MalformedTokenEntry(t *testing.T) {
	body := `{
		"summary": {"total": 9.25, "realized": "?"},
		"pnl_since": 1704067200000,
		"tokens": {
			"good": {"holding": 10, "buy_transactions": 2, "sold": {"a": 1}},
			"bad": "n/a"
		}
	}`

	var pnl WalletPnl
	require.NoError(t, json.Unmarshal([]byte(body), &pnl))

	assert.Equal(t, 9.25, pnl.Summary.Total.Float())
	assert.False(t, pnl.Summary.Realized.Valid())
	assert.True(t, pnl.PnlSince.Valid())

	good := pnl.Token("good")
	assert.Equal(t, 10.0, good.Holding.Float())
	assert.Equal(t, 2.0, good.BuyTransactions.Float())
	assert.False(t, good.Sold.Valid())
	assert.False(t, pnl.Token("bad").Holding.Valid())
}

func TestWalletPnl_TokensNotAnObject(t *testing.T) {
	var pnl WalletPnl
	require.NoError(t, json.Unmarshal([]byte(`{"summary":{"total":1},"tokens":[1,2]}`), &pnl))

	assert.Equal(t, 1.0, pnl.Summary.Total.Float())
	assert.Nil(t, pnl.Tokens)
}

func TestIsObject(t *testing.T) {
	assert.True(t, IsObject([]byte(" \n{\"a\":1}")))
	assert.False(t, IsObject([]byte(`[1]`)))
	assert.False(t, IsObject([]byte(`"x"`)))
	assert.False(t, IsObject(nil))
}
