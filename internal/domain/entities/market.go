package entities

// MarketPair is one trading venue's quote for a token, as returned by
// the DexScreener token-pairs endpoint
type MarketPair struct {
	ChainID       string        `json:"chainId,omitempty"`
	DexID         string        `json:"dexId,omitempty"`
	URL           string        `json:"url,omitempty"`
	PairAddress   string        `json:"pairAddress,omitempty"`
	BaseToken     PairToken     `json:"baseToken"`
	QuoteToken    PairToken     `json:"quoteToken"`
	PriceNative   string        `json:"priceNative,omitempty"`
	PriceUsd      string        `json:"priceUsd,omitempty"`
	MarketCap     Number        `json:"marketCap"`
	Fdv           Number        `json:"fdv"`
	Liquidity     PairLiquidity `json:"liquidity"`
	Volume        PairWindows   `json:"volume"`
	PriceChange   PairWindows   `json:"priceChange"`
	Txns          PairTxns      `json:"txns"`
	PairCreatedAt Number        `json:"pairCreatedAt"`
}

// PairToken identifies one side of a trading pair
type PairToken struct {
	Address string `json:"address,omitempty"`
	Name    string `json:"name,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
}

// PairLiquidity is the pooled depth of a pair
type PairLiquidity struct {
	Usd   Number `json:"usd"`
	Base  Number `json:"base"`
	Quote Number `json:"quote"`
}

// PairWindows holds a metric over the standard DexScreener windows
type PairWindows struct {
	M5  Number `json:"m5"`
	H1  Number `json:"h1"`
	H6  Number `json:"h6"`
	H24 Number `json:"h24"`
}

// PairTxns holds buy/sell counts per window
type PairTxns struct {
	M5  TxnCount `json:"m5"`
	H1  TxnCount `json:"h1"`
	H6  TxnCount `json:"h6"`
	H24 TxnCount `json:"h24"`
}

// TxnCount contains buy and sell counts
type TxnCount struct {
	Buys  Number `json:"buys"`
	Sells Number `json:"sells"`
}

// LiquidityUSD returns the pair's USD liquidity and whether it is numeric
func (p MarketPair) LiquidityUSD() (float64, bool) {
	return p.Liquidity.Usd.Value()
}

// UnmarshalJSON decodes field by field; a malformed field is left absent
// and does not drop the pair
func (p *MarketPair) UnmarshalJSON(data []byte) error {
	*p = MarketPair{}
	decodeObject(data, fields{
		"chainId":       &p.ChainID,
		"dexId":         &p.DexID,
		"url":           &p.URL,
		"pairAddress":   &p.PairAddress,
		"baseToken":     &p.BaseToken,
		"quoteToken":    &p.QuoteToken,
		"priceNative":   &p.PriceNative,
		"priceUsd":      &p.PriceUsd,
		"marketCap":     &p.MarketCap,
		"fdv":           &p.Fdv,
		"liquidity":     &p.Liquidity,
		"volume":        &p.Volume,
		"priceChange":   &p.PriceChange,
		"txns":          &p.Txns,
		"pairCreatedAt": &p.PairCreatedAt,
	})
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *PairToken) UnmarshalJSON(data []byte) error {
	*t = PairToken{}
	decodeObject(data, fields{
		"address": &t.Address,
		"name":    &t.Name,
		"symbol":  &t.Symbol,
	})
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (l *PairLiquidity) UnmarshalJSON(data []byte) error {
	*l = PairLiquidity{}
	decodeObject(data, fields{
		"usd":   &l.Usd,
		"base":  &l.Base,
		"quote": &l.Quote,
	})
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (w *PairWindows) UnmarshalJSON(data []byte) error {
	*w = PairWindows{}
	decodeObject(data, fields{
		"m5":  &w.M5,
		"h1":  &w.H1,
		"h6":  &w.H6,
		"h24": &w.H24,
	})
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *PairTxns) UnmarshalJSON(data []byte) error {
	*t = PairTxns{}
	decodeObject(data, fields{
		"m5":  &t.M5,
		"h1":  &t.H1,
		"h6":  &t.H6,
		"h24": &t.H24,
	})
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (c *TxnCount) UnmarshalJSON(data []byte) error {
	*c = TxnCount{}
	decodeObject(data, fields{
		"buys":  &c.Buys,
		"sells": &c.Sells,
	})
	return nil
}
