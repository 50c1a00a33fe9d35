package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/ivg-dashboard/internal/config"
)

// env is shared by all commands; it is filled in the app's Before hook
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	e := &env{}

	app := &cli.App{
		Name:  "ivgctl",
		Usage: "One-shot queries against the IVG dashboard data sources",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug output to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			level := cfg.Log.Level
			if c.Bool("verbose") {
				level = "debug"
			}
			e.cfg = cfg
			e.logger = setupLogger(level)
			return nil
		},
		After: func(c *cli.Context) error {
			if e.logger != nil {
				e.logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			holdingCommand(e),
			pairsCommand(e),
			pnlCommand(e),
			dashboardCommand(e),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger logs to stderr so stdout only carries the JSON result
func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.WarnLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
