package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	"github.com/bimakw/ivg-dashboard/internal/application/services"
	"github.com/bimakw/ivg-dashboard/internal/config"
	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/dexscreener"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/solana"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/solanatracker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func holdingCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "holding",
		Usage: "Sum the owner's on-chain token accounts for the mint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Usage: "Wallet address (default: IVG_WALLET)"},
			&cli.StringFlag{Name: "mint", Usage: "Token mint (default: IVG_MINT)"},
		},
		Action: func(c *cli.Context) error {
			owner := firstNonEmpty(c.String("owner"), e.cfg.Dashboard.Wallet)
			mint := firstNonEmpty(c.String("mint"), e.cfg.Dashboard.Mint)
			if err := requireKeys(map[string]string{config.EnvWallet: owner, config.EnvMint: mint}); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Context, e.cfg.Solana.RequestTimeout)
			defer cancel()

			client, err := solana.NewClient(ctx, e.cfg.Solana, e.logger)
			if err != nil {
				return err
			}
			defer client.Close()

			holding, err := solana.NewHoldingReader(client, e.cfg.Solana.TokenPrograms, e.logger).ReadHolding(ctx, owner, mint)
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, holding)
		},
	}
}

type pairsOutput struct {
	Best  *entities.MarketPair  `json:"best"`
	Pairs []entities.MarketPair `json:"pairs"`
}

func pairsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "pairs",
		Usage: "List DexScreener pairs for the mint ranked by liquidity",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mint", Usage: "Token mint (default: IVG_MINT)"},
			&cli.IntFlag{Name: "limit", Value: services.DefaultPairsLimit, Usage: "Maximum pairs listed, 0 for all"},
		},
		Action: func(c *cli.Context) error {
			mint := firstNonEmpty(c.String("mint"), e.cfg.Dashboard.Mint)
			if err := requireKeys(map[string]string{config.EnvMint: mint}); err != nil {
				return err
			}

			market := services.NewMarketService(dexscreener.NewClient(e.cfg.DexScreener, e.logger), e.logger)
			res := market.FetchPairs(c.Context, mint)
			if !res.OK() {
				return res.Err
			}

			out := pairsOutput{Pairs: services.RankPairs(res.Value, c.Int("limit"))}
			if best, ok := services.SelectBestPair(res.Value); ok {
				out.Best = &best
			}
			return writeJSON(c.App.Writer, out)
		},
	}
}

func pnlCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "pnl",
		Usage: "Fetch the SolanaTracker PnL document for the wallet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "wallet", Usage: "Wallet address (default: IVG_WALLET)"},
		},
		Action: func(c *cli.Context) error {
			wallet := firstNonEmpty(c.String("wallet"), e.cfg.Dashboard.Wallet)
			if err := requireKeys(map[string]string{config.EnvAPIKey: e.cfg.Dashboard.APIKey, config.EnvWallet: wallet}); err != nil {
				return err
			}

			tracker := solanatracker.NewClient(e.cfg.SolanaTracker, e.cfg.Dashboard.APIKey, e.logger)
			res := services.NewPnlService(tracker, e.logger).FetchWalletPnl(c.Context, wallet)
			if !res.OK() {
				return res.Err
			}
			return writeJSON(c.App.Writer, res.Value)
		},
	}
}

func dashboardCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Compose the full dashboard view model",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "strict", Usage: "Fail when any panel could not be loaded"},
		},
		Action: func(c *cli.Context) error {
			client, err := solana.NewClient(c.Context, e.cfg.Solana, e.logger)
			if err != nil {
				return err
			}
			defer client.Close()

			dexClient := dexscreener.NewClient(e.cfg.DexScreener, e.logger)
			tracker := solanatracker.NewClient(e.cfg.SolanaTracker, e.cfg.Dashboard.APIKey, e.logger)
			service := services.NewDashboardService(
				e.cfg.Dashboard,
				solana.NewHoldingReader(client, e.cfg.Solana.TokenPrograms, e.logger),
				services.NewMarketService(dexClient, e.logger),
				services.NewPnlService(tracker, e.logger),
				e.logger,
			)

			view := service.Compose(c.Context)
			if err := writeJSON(c.App.Writer, view); err != nil {
				return err
			}
			if !view.Ready() {
				return errors.New(strings.Join(view.ConfigErrors, "; "))
			}
			if c.Bool("strict") {
				return panelErrors(view)
			}
			return nil
		},
	}
}

// requireKeys reports unset values as "Missing NAME" in the order mint,
// wallet, API key. Names absent from values are not checked.
func requireKeys(values map[string]string) error {
	var missing []string
	for _, name := range []string{config.EnvMint, config.EnvWallet, config.EnvAPIKey} {
		v, ok := values[name]
		if ok && v == "" {
			missing = append(missing, "Missing "+name)
		}
	}
	if len(missing) > 0 {
		return errors.New(strings.Join(missing, "; "))
	}
	return nil
}

func panelErrors(view *services.DashboardView) error {
	var errs []error
	for _, msg := range []string{view.PnL.Error, view.OnChain.Error, view.Market.Error} {
		if msg != "" {
			errs = append(errs, errors.New(msg))
		}
	}
	return errors.Join(errs...)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
