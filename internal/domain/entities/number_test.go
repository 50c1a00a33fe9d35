package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		value float64
	}{
		{"integer", `42`, true, 42},
		{"negative float", `-1.5`, true, -1.5},
		{"exponent", `1e9`, true, 1e9},
		{"null", `null`, false, 0},
		{"string", `"123"`, false, 0},
		{"bool", `true`, false, 0},
		{"object", `{"a":1}`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.valid, n.Valid())
			if tt.valid {
				assert.Equal(t, tt.value, n.Float())
			} else {
				assert.True(t, math.IsNaN(n.Float()))
			}
		})
	}
}

func TestNumber_NonNumericFieldDoesNotFailDocument(t *testing.T) {
	body := `{"dexId":"raydium","liquidity":{"usd":"lots","base":10},"priceUsd":"0.5"}`

	var pair MarketPair
	require.NoError(t, json.Unmarshal([]byte(body), &pair))

	assert.Equal(t, "raydium", pair.DexID)
	_, ok := pair.LiquidityUSD()
	assert.False(t, ok)
	assert.Equal(t, 10.0, pair.Liquidity.Base.Float())
}

func TestNumber_MissingFieldIsAbsent(t *testing.T) {
	var pnl WalletPnl
	require.NoError(t, json.Unmarshal([]byte(`{"summary":{"total":12.5}}`), &pnl))

	assert.Equal(t, 12.5, pnl.Summary.Total.Float())
	assert.False(t, pnl.Summary.Realized.Valid())
	assert.False(t, pnl.PnlSince.Valid())
	assert.False(t, pnl.Token("anything").Holding.Valid())
}

func TestNumber_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}{A: NewNumber(1.25)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.25,"b":null}`, string(out))
}

func TestFetchResult(t *testing.T) {
	ok := Succeeded([]MarketPair{})
	assert.True(t, ok.OK())

	failed := Failed[*WalletPnl](&WalletPnl{}, assert.AnError)
	assert.False(t, failed.OK())
	assert.NotNil(t, failed.Value)
}
