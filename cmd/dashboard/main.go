package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/ivg-dashboard/internal/application/services"
	"github.com/bimakw/ivg-dashboard/internal/config"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/cache"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/dexscreener"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/observability"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/solana"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/solanatracker"
	"github.com/bimakw/ivg-dashboard/internal/presentation/handlers"
	"github.com/bimakw/ivg-dashboard/internal/presentation/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	logger.Info("Starting IVG dashboard",
		zap.Int("port", cfg.API.Port),
		zap.String("rpc_url", cfg.Solana.RPCURL),
	)

	// missing values are shown on the page, the server still starts
	if problems := cfg.Dashboard.Problems(); len(problems) > 0 {
		logger.Warn("Dashboard configuration incomplete", zap.Strings("problems", problems))
	}

	// Connect to Solana RPC
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Solana.RequestTimeout)
	rpcClient, err := solana.NewClient(ctx, cfg.Solana, logger)
	cancel()
	if err != nil {
		logger.Fatal("Failed to create Solana RPC client", zap.Error(err))
	}
	defer rpcClient.Close()

	// Proxy cache: Redis when enabled and reachable, in-process otherwise
	var store cache.Store
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Failed to connect to Redis, using in-memory cache", zap.Error(err))
		} else {
			defer redisCache.Close()
			store = redisCache
		}
	}
	if store == nil {
		store = cache.NewMemoryCache(time.Minute)
	}

	// Create upstream clients
	holdingReader := solana.NewHoldingReader(rpcClient, cfg.Solana.TokenPrograms, logger)
	dexClient := dexscreener.NewClient(cfg.DexScreener, logger)
	trackerClient := solanatracker.NewClient(cfg.SolanaTracker, cfg.Dashboard.APIKey, logger)

	// Create services
	marketService := services.NewMarketService(dexClient, logger)
	pnlService := services.NewPnlService(trackerClient, logger)
	dashboardService := services.NewDashboardService(cfg.Dashboard, holdingReader, marketService, pnlService, logger)
	proxyService := services.NewProxyService(
		cfg.Dashboard,
		dexClient,
		trackerClient,
		store,
		services.ProxyTTLs{Token: cfg.DexScreener.CacheTTL, Pnl: cfg.SolanaTracker.CacheTTL},
		logger,
	)

	// Create handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)
	proxyHandler := handlers.NewProxyHandler(proxyService, logger)
	healthHandler := handlers.NewHealthHandler(rpcClient, store)

	r := newRouter(logger, cfg.API.RateLimitRPS, dashboardHandler, proxyHandler, healthHandler)

	// Start server
	addr := cfg.API.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Run server in goroutine
	go func() {
		logger.Info("Dashboard server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Received shutdown signal, shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// newRouter builds the HTTP routes. The page, its JSON view and the
// proxies share one per-IP limiter since every uncached hit reaches the
// upstreams; probes and metrics are never limited.
func newRouter(
	logger *zap.Logger,
	rateLimitRPS int,
	dashboardHandler *handlers.DashboardHandler,
	proxyHandler *handlers.ProxyHandler,
	healthHandler *handlers.HealthHandler,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)

	// Health endpoints (no rate limiting)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/live", healthHandler.Live)
	r.Handle("/metrics", observability.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimiter(rateLimitRPS))

		// Page and view model
		dashboardHandler.RegisterRoutes(r)

		// Upstream proxies
		r.Route("/api", func(r chi.Router) {
			proxyHandler.RegisterRoutes(r)
		})
	})

	return r
}

func setupLogger(level, format string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoding := "json"
	encoderConfig := zap.NewProductionEncoderConfig()
	if format == "console" {
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
