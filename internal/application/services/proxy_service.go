package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/bimakw/ivg-dashboard/internal/config"
	"github.com/bimakw/ivg-dashboard/internal/domain/sources"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/cache"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/dexscreener"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/observability"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/solanatracker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConfigMissingError reports a required configuration value that is not set
type ConfigMissingError struct {
	Name string
}

func (e *ConfigMissingError) Error() string {
	return "Missing " + e.Name
}

// UpstreamFailureError reports a failed upstream call made on behalf of a
// proxy caller
type UpstreamFailureError struct {
	Message string // e.g. "Dexscreener error"
	Details string
	Err     error
}

func (e *UpstreamFailureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func (e *UpstreamFailureError) Unwrap() error {
	return e.Err
}

// Proxy error messages
const (
	DexScreenerErrorMessage   = "Dexscreener error"
	SolanaTrackerErrorMessage = "SolanaTracker error"
)

// ProxyTTLs holds the cache lifetime of each proxy endpoint
type ProxyTTLs struct {
	Token time.Duration
	Pnl   time.Duration
}

// ProxyService re-exposes the upstream APIs with short-lived caching.
// Only successful responses are cached.
type ProxyService struct {
	dashboard config.DashboardConfig
	pairs     sources.PairSource
	pnl       sources.PnlSource
	cache     cache.Store
	ttls      ProxyTTLs
	logger    *zap.Logger
}

// NewProxyService creates a new proxy service. cache may be nil.
func NewProxyService(
	dashboard config.DashboardConfig,
	pairs sources.PairSource,
	pnl sources.PnlSource,
	cache cache.Store,
	ttls ProxyTTLs,
	logger *zap.Logger,
) *ProxyService {
	return &ProxyService{
		dashboard: dashboard,
		pairs:     pairs,
		pnl:       pnl,
		cache:     cache,
		ttls:      ttls,
		logger:    logger,
	}
}

// TokenPairs returns {"pairs": [...]} for the configured mint, with the
// upstream pair objects passed through untouched
func (s *ProxyService) TokenPairs(ctx context.Context) ([]byte, error) {
	mint := s.dashboard.Mint
	if mint == "" {
		return nil, &ConfigMissingError{Name: config.EnvMint}
	}

	cacheKey := fmt.Sprintf("proxy:token:%s", mint)
	if body, ok := s.cached(ctx, "token", cacheKey); ok {
		return body, nil
	}

	raw, err := s.pairs.FetchPairsRaw(ctx, mint)
	if err != nil {
		return nil, upstreamFailure(DexScreenerErrorMessage, err)
	}

	pairs, err := dexscreener.DecodeRawPairs(raw)
	if err != nil {
		return nil, &UpstreamFailureError{Message: DexScreenerErrorMessage, Details: err.Error(), Err: err}
	}

	body, err := json.Marshal(map[string]interface{}{"pairs": pairs})
	if err != nil {
		return nil, fmt.Errorf("failed to encode pairs: %w", err)
	}

	s.store(ctx, cacheKey, body, s.ttls.Token)
	return body, nil
}

// WalletPnl returns the upstream PnL document for the configured wallet.
// The API key is checked before the wallet.
func (s *ProxyService) WalletPnl(ctx context.Context) ([]byte, error) {
	if s.dashboard.APIKey == "" {
		return nil, &ConfigMissingError{Name: config.EnvAPIKey}
	}
	wallet := s.dashboard.Wallet
	if wallet == "" {
		return nil, &ConfigMissingError{Name: config.EnvWallet}
	}

	cacheKey := fmt.Sprintf("proxy:pnl:%s", wallet)
	if body, ok := s.cached(ctx, "wallet-pnl", cacheKey); ok {
		return body, nil
	}

	body, err := s.pnl.FetchPnlRaw(ctx, wallet)
	if err != nil {
		return nil, upstreamFailure(SolanaTrackerErrorMessage, err)
	}
	if !solanatracker.ValidJSON(body) {
		err := errors.New("upstream returned malformed JSON")
		return nil, &UpstreamFailureError{Message: SolanaTrackerErrorMessage, Details: err.Error(), Err: err}
	}

	s.store(ctx, cacheKey, body, s.ttls.Pnl)
	return body, nil
}

func (s *ProxyService) cached(ctx context.Context, endpoint, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}

	body, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		observability.ObserveCacheLookup(endpoint, false)
		return nil, false
	}

	s.logger.Debug("Cache hit", zap.String("key", key))
	observability.ObserveCacheLookup(endpoint, true)
	return body, true
}

func (s *ProxyService) store(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, body, ttl); err != nil {
		s.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}

// upstreamFailure echoes the upstream body when there is one, otherwise
// the transport error
func upstreamFailure(message string, err error) *UpstreamFailureError {
	details := err.Error()
	var detailed interface{ Details() string }
	if errors.As(err, &detailed) {
		details = detailed.Details()
	}
	return &UpstreamFailureError{Message: message, Details: details, Err: err}
}
