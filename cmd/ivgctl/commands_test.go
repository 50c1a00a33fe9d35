package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimakw/ivg-dashboard/internal/application/services"
	"github.com/bimakw/ivg-dashboard/internal/config"
)

func TestRequireKeys(t *testing.T) {
	err := requireKeys(map[string]string{config.EnvAPIKey: "", config.EnvMint: "", config.EnvWallet: "w"})
	require.Error(t, err)
	assert.Equal(t, "Missing IVG_MINT; Missing SOLANA_TRACKER_API_KEY", err.Error())

	assert.NoError(t, requireKeys(map[string]string{config.EnvMint: "m"}))
}

func TestPanelErrors(t *testing.T) {
	view := &services.DashboardView{}
	assert.NoError(t, panelErrors(view))

	view.PnL.Error = "Wallet PnL unavailable"
	view.Market.Error = "Market data unavailable"
	err := panelErrors(view)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wallet PnL unavailable")
	assert.Contains(t, err.Error(), "Market data unavailable")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"pairs": 2}))
	assert.JSONEq(t, `{"pairs": 2}`, buf.String())
	assert.Contains(t, buf.String(), "\n  ")
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
