package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/domain/sources"
)

// DefaultPairsLimit is the size of the dashboard pairs table
const DefaultPairsLimit = 20

// MarketService provides market data for the tracked mint
type MarketService struct {
	pairs  sources.PairSource
	logger *zap.Logger
}

// NewMarketService creates a new market service
func NewMarketService(pairs sources.PairSource, logger *zap.Logger) *MarketService {
	return &MarketService{
		pairs:  pairs,
		logger: logger,
	}
}

// FetchPairs never fails outright: on error the result holds an empty
// list and the cause
func (s *MarketService) FetchPairs(ctx context.Context, mint string) entities.FetchResult[[]entities.MarketPair] {
	pairs, err := s.pairs.FetchPairs(ctx, mint)
	if err != nil {
		s.logger.Warn("Market pairs unavailable", zap.String("mint", mint), zap.Error(err))
		return entities.Failed([]entities.MarketPair{}, fmt.Errorf("failed to fetch market pairs: %w", err))
	}
	if pairs == nil {
		pairs = []entities.MarketPair{}
	}
	return entities.Succeeded(pairs)
}

// SelectBestPair returns the pair with the greatest numeric USD liquidity.
// Pairs without a numeric value are not candidates; ties keep the earliest.
func SelectBestPair(pairs []entities.MarketPair) (entities.MarketPair, bool) {
	candidates := lo.Filter(pairs, func(p entities.MarketPair, _ int) bool {
		_, ok := p.LiquidityUSD()
		return ok
	})
	if len(candidates) == 0 {
		return entities.MarketPair{}, false
	}

	best := lo.MaxBy(candidates, func(a, b entities.MarketPair) bool {
		return a.Liquidity.Usd.Float() > b.Liquidity.Usd.Float()
	})
	return best, true
}

// RankPairs orders pairs by USD liquidity, highest first. Pairs without
// numeric liquidity follow in their original order. The result holds at
// most limit pairs; a non-positive limit keeps all.
func RankPairs(pairs []entities.MarketPair, limit int) []entities.MarketPair {
	hasLiquidity := func(p entities.MarketPair, _ int) bool {
		_, ok := p.LiquidityUSD()
		return ok
	}
	ranked := lo.Filter(pairs, hasLiquidity)
	unranked := lo.Reject(pairs, hasLiquidity)

	slices.SortStableFunc(ranked, func(a, b entities.MarketPair) int {
		la, lb := a.Liquidity.Usd.Float(), b.Liquidity.Usd.Float()
		switch {
		case la > lb:
			return -1
		case la < lb:
			return 1
		default:
			return 0
		}
	})

	out := append(ranked, unranked...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
