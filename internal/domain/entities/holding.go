package entities

import (
	"math/big"
)

// TokenAccountRecord is one parsed token account returned by
// getTokenAccountsByOwner
type TokenAccountRecord struct {
	Pubkey    string   `json:"pubkey"`
	Owner     string   `json:"owner"`
	ProgramID string   `json:"program_id"`
	Mint      string   `json:"mint"`
	Amount    *big.Int `json:"-"`
	Decimals  int      `json:"decimals"`
}

// Holding is the sum of an owner's token accounts for a single mint
type Holding struct {
	Owner    string   `json:"owner"`
	Mint     string   `json:"mint"`
	Raw      *big.Int `json:"-"`
	RawStr   string   `json:"raw"`     // Unscaled integer
	Decimals int      `json:"decimals"`
	Display  string   `json:"display"` // Exact decimal representation
	Numeric  float64  `json:"numeric"` // UI magnitude only
	Accounts int      `json:"accounts"`

	// Token programs whose account lookup failed
	FailedPrograms []string `json:"failed_programs,omitempty"`
}

// Partial reports whether some program lookups failed
func (h *Holding) Partial() bool {
	return h != nil && len(h.FailedPrograms) > 0
}
