package entities

// WalletPnl is the SolanaTracker profit/loss document for a wallet.
// Every numeric field is optional; the zero value is the empty summary.
type WalletPnl struct {
	Summary  PnlSummary          `json:"summary"`
	PnlSince Number              `json:"pnl_since"`
	Tokens   map[string]TokenPnl `json:"tokens,omitempty"`
}

// PnlSummary holds wallet-wide aggregates
type PnlSummary struct {
	TotalInvested  Number `json:"totalInvested"`
	Realized       Number `json:"realized"`
	Unrealized     Number `json:"unrealized"`
	Total          Number `json:"total"`
	WinPercentage  Number `json:"winPercentage"`
	LossPercentage Number `json:"lossPercentage"`
}

// TokenPnl holds per-token figures keyed by mint in WalletPnl.Tokens
type TokenPnl struct {
	Holding           Number `json:"holding"`
	Held              Number `json:"held"`
	Sold              Number `json:"sold"`
	Realized          Number `json:"realized"`
	Unrealized        Number `json:"unrealized"`
	Total             Number `json:"total"`
	TotalInvested     Number `json:"total_invested"`
	CurrentValue      Number `json:"current_value"`
	BuyTransactions   Number `json:"buy_transactions"`
	SellTransactions  Number `json:"sell_transactions"`
	TotalTransactions Number `json:"total_transactions"`
}

// Token returns the per-token record for mint, or an empty record
func (w *WalletPnl) Token(mint string) TokenPnl {
	if w == nil || w.Tokens == nil {
		return TokenPnl{}
	}
	return w.Tokens[mint]
}

// UnmarshalJSON decodes field by field; a malformed token entry is left
// empty instead of failing the document
func (w *WalletPnl) UnmarshalJSON(data []byte) error {
	*w = WalletPnl{}
	var tokens map[string]TokenPnl
	decodeObject(data, fields{
		"summary":   &w.Summary,
		"pnl_since": &w.PnlSince,
		"tokens":    &tokens,
	})
	w.Tokens = tokens
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (s *PnlSummary) UnmarshalJSON(data []byte) error {
	*s = PnlSummary{}
	decodeObject(data, fields{
		"totalInvested":  &s.TotalInvested,
		"realized":       &s.Realized,
		"unrealized":     &s.Unrealized,
		"total":          &s.Total,
		"winPercentage":  &s.WinPercentage,
		"lossPercentage": &s.LossPercentage,
	})
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *TokenPnl) UnmarshalJSON(data []byte) error {
	*t = TokenPnl{}
	decodeObject(data, fields{
		"holding":            &t.Holding,
		"held":               &t.Held,
		"sold":               &t.Sold,
		"realized":           &t.Realized,
		"unrealized":         &t.Unrealized,
		"total":              &t.Total,
		"total_invested":     &t.TotalInvested,
		"current_value":      &t.CurrentValue,
		"buy_transactions":   &t.BuyTransactions,
		"sell_transactions":  &t.SellTransactions,
		"total_transactions": &t.TotalTransactions,
	})
	return nil
}
