package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bimakw/ivg-dashboard/internal/config"
	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/domain/sources"
	"github.com/bimakw/ivg-dashboard/internal/format"
)

// Stat is one labeled value of a panel
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// WalletPanel shows SolanaTracker figures. Stats are always listed;
// values are placeholders when the fetch failed.
type WalletPanel struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
	Stats     []Stat `json:"stats"`
}

// OnChainPanel shows the reconciled token account balance
type OnChainPanel struct {
	Available      bool     `json:"available"`
	Error          string   `json:"error,omitempty"`
	Display        string   `json:"display"`
	Compact        string   `json:"compact"`
	Raw            string   `json:"raw"`
	Decimals       string   `json:"decimals"`
	Accounts       string   `json:"accounts"`
	FailedPrograms []string `json:"failed_programs,omitempty"`
}

// MarketPanel shows the best pair. Available is false when no pair has
// numeric liquidity.
type MarketPanel struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
	Stats     []Stat `json:"stats,omitempty"`
	URL       string `json:"url,omitempty"`
}

// PairRow is one row of the pairs table
type PairRow struct {
	Dex         string `json:"dex"`
	PairAddress string `json:"pair_address"`
	Quote       string `json:"quote"`
	URL         string `json:"url,omitempty"`
	Price       string `json:"price"`
	Liquidity   string `json:"liquidity"`
	Volume24h   string `json:"volume_24h"`
	Change24h   string `json:"change_24h"`
	Txns24h     string `json:"txns_24h"`
}

// DashboardView is the page view model
type DashboardView struct {
	Mint         string       `json:"mint"`
	Wallet       string       `json:"wallet"`
	ConfigErrors []string     `json:"config_errors,omitempty"`
	PnL          WalletPanel  `json:"pnl"`
	OnChain      OnChainPanel `json:"on_chain"`
	Market       MarketPanel  `json:"market"`
	HoldingValue string       `json:"holding_value"`
	Pairs        []PairRow    `json:"pairs"`
	GeneratedAt  string       `json:"generated_at"`
}

// Ready reports whether configuration allowed the data to be fetched
func (v *DashboardView) Ready() bool {
	return len(v.ConfigErrors) == 0
}

// DashboardService composes the page from the three data sources
type DashboardService struct {
	dashboard config.DashboardConfig
	holdings  sources.HoldingReader
	market    *MarketService
	pnl       *PnlService
	logger    *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	dashboard config.DashboardConfig,
	holdings sources.HoldingReader,
	market *MarketService,
	pnl *PnlService,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		dashboard: dashboard,
		holdings:  holdings,
		market:    market,
		pnl:       pnl,
		logger:    logger,
	}
}

// Snapshot holds the raw results of one fetch round
type Snapshot struct {
	Pnl     entities.FetchResult[*entities.WalletPnl]
	Pairs   entities.FetchResult[[]entities.MarketPair]
	Holding entities.FetchResult[*entities.Holding]
}

// Fetch runs the three fetches concurrently. A failure in one does not
// affect the others.
func (s *DashboardService) Fetch(ctx context.Context) Snapshot {
	var snap Snapshot
	mint, wallet := s.dashboard.Mint, s.dashboard.Wallet

	var g errgroup.Group
	g.Go(func() error {
		snap.Pnl = s.pnl.FetchWalletPnl(ctx, wallet)
		return nil
	})
	g.Go(func() error {
		snap.Pairs = s.market.FetchPairs(ctx, mint)
		return nil
	})
	g.Go(func() error {
		snap.Holding = s.readHolding(ctx, wallet, mint)
		return nil
	})
	_ = g.Wait()

	return snap
}

func (s *DashboardService) readHolding(ctx context.Context, owner, mint string) entities.FetchResult[*entities.Holding] {
	holding, err := s.holdings.ReadHolding(ctx, owner, mint)
	if err != nil {
		s.logger.Warn("On-chain holding unavailable", zap.String("owner", owner), zap.Error(err))
		return entities.Failed[*entities.Holding](nil, fmt.Errorf("failed to read holding: %w", err))
	}
	return entities.Succeeded(holding)
}

// Compose builds the page view. With missing or invalid configuration
// the view only lists the problems and nothing is fetched.
func (s *DashboardService) Compose(ctx context.Context) *DashboardView {
	view := &DashboardView{
		Mint:        s.dashboard.Mint,
		Wallet:      s.dashboard.Wallet,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if problems := s.dashboard.Problems(); len(problems) > 0 {
		view.ConfigErrors = problems
		return view
	}

	return BuildView(view, s.Fetch(ctx))
}

// BuildView fills view from a fetched snapshot
func BuildView(view *DashboardView, snap Snapshot) *DashboardView {
	mint := view.Mint

	view.PnL = buildWalletPanel(snap.Pnl, mint)
	view.OnChain = buildOnChainPanel(snap.Holding)

	best, hasBest := SelectBestPair(snap.Pairs.Value)
	view.Market = buildMarketPanel(snap.Pairs, best, hasBest)

	view.HoldingValue = format.Placeholder
	if hasBest && snap.Holding.OK() && snap.Holding.Value != nil {
		view.HoldingValue = HoldingValue(snap.Holding.Value.Display, best.PriceUsd)
	}

	ranked := RankPairs(snap.Pairs.Value, DefaultPairsLimit)
	view.Pairs = make([]PairRow, 0, len(ranked))
	for _, p := range ranked {
		view.Pairs = append(view.Pairs, buildPairRow(p))
	}

	return view
}

func buildWalletPanel(res entities.FetchResult[*entities.WalletPnl], mint string) WalletPanel {
	pnl := res.Value
	if pnl == nil {
		pnl = &entities.WalletPnl{}
	}
	token := pnl.Token(mint)
	sum := pnl.Summary

	panel := WalletPanel{
		Available: res.OK(),
		Stats: []Stat{
			{"Total Invested", format.USD(sum.TotalInvested.Float())},
			{"Token Holding", format.Amount(token.Holding.Float(), 4)},
			{"Current Value", format.USD(token.CurrentValue.Float())},
			{"Realized PnL", format.USD(sum.Realized.Float())},
			{"Unrealized PnL", format.USD(sum.Unrealized.Float())},
			{"Total PnL", format.USD(sum.Total.Float())},
			{"Win Rate", format.Share(sum.WinPercentage.Float())},
			{"Buys", format.Count(token.BuyTransactions.Float())},
			{"Sells", format.Count(token.SellTransactions.Float())},
			{"Total Txns", format.Count(token.TotalTransactions.Float())},
			{"PnL Since", format.Timestamp(pnl.PnlSince.Float())},
		},
	}
	if !res.OK() {
		panel.Error = "Wallet PnL unavailable"
	}
	return panel
}

func buildOnChainPanel(res entities.FetchResult[*entities.Holding]) OnChainPanel {
	if !res.OK() || res.Value == nil {
		return OnChainPanel{
			Error:    "On-chain balance unavailable",
			Display:  format.Placeholder,
			Compact:  format.Placeholder,
			Raw:      format.Placeholder,
			Decimals: format.Placeholder,
			Accounts: format.Placeholder,
		}
	}

	h := res.Value
	panel := OnChainPanel{
		Available:      true,
		Display:        h.Display,
		Compact:        format.Compact(h.Numeric, 2),
		Raw:            h.RawStr,
		Decimals:       strconv.Itoa(h.Decimals),
		Accounts:       strconv.Itoa(h.Accounts),
		FailedPrograms: h.FailedPrograms,
	}
	if h.Partial() {
		panel.Error = "Some token program lookups failed; balance may be incomplete"
	}
	return panel
}

func buildMarketPanel(res entities.FetchResult[[]entities.MarketPair], best entities.MarketPair, ok bool) MarketPanel {
	panel := MarketPanel{Available: ok}
	if !res.OK() {
		panel.Error = "Market data unavailable"
	}
	if !ok {
		return panel
	}

	panel.URL = best.URL
	panel.Stats = []Stat{
		{"DEX", textOrPlaceholder(best.DexID)},
		{"Pair", textOrPlaceholder(best.PairAddress)},
		{"Price", format.USD(priceUSD(best))},
		{"Liquidity", format.USD(best.Liquidity.Usd.Float())},
		{"24h Volume", format.USD(best.Volume.H24.Float())},
		{"24h Buys / Sells", format.Count(best.Txns.H24.Buys.Float()) + " / " + format.Count(best.Txns.H24.Sells.Float())},
		{"24h Change", format.Percent(best.PriceChange.H24.Float())},
		{"Market Cap", format.USD(best.MarketCap.Float())},
		{"FDV", format.USD(best.Fdv.Float())},
	}
	return panel
}

func buildPairRow(p entities.MarketPair) PairRow {
	return PairRow{
		Dex:         textOrPlaceholder(p.DexID),
		PairAddress: textOrPlaceholder(p.PairAddress),
		Quote:       textOrPlaceholder(p.QuoteToken.Symbol),
		URL:         p.URL,
		Price:       format.USD(priceUSD(p)),
		Liquidity:   format.Compact(p.Liquidity.Usd.Float(), 2),
		Volume24h:   format.Compact(p.Volume.H24.Float(), 2),
		Change24h:   format.Percent(p.PriceChange.H24.Float()),
		Txns24h:     format.Count(p.Txns.H24.Buys.Float()) + " / " + format.Count(p.Txns.H24.Sells.Float()),
	}
}

// HoldingValue multiplies an exact display amount by a USD price string.
// Either side being unparseable yields the placeholder.
func HoldingValue(display, priceUsd string) string {
	amount, err := decimal.NewFromString(display)
	if err != nil {
		return format.Placeholder
	}
	price, err := decimal.NewFromString(priceUsd)
	if err != nil {
		return format.Placeholder
	}
	return format.USD(amount.Mul(price).Round(2).InexactFloat64())
}

func priceUSD(p entities.MarketPair) float64 {
	if p.PriceUsd == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(p.PriceUsd, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func textOrPlaceholder(s string) string {
	if s == "" {
		return format.Placeholder
	}
	return s
}
