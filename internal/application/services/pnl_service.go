package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/domain/sources"
)

// PnlService provides wallet profit/loss data
type PnlService struct {
	pnl    sources.PnlSource
	logger *zap.Logger
}

// NewPnlService creates a new PnL service
func NewPnlService(pnl sources.PnlSource, logger *zap.Logger) *PnlService {
	return &PnlService{
		pnl:    pnl,
		logger: logger,
	}
}

// FetchWalletPnl never fails outright: on error the result holds an
// empty summary with every field absent, and the cause
func (s *PnlService) FetchWalletPnl(ctx context.Context, wallet string) entities.FetchResult[*entities.WalletPnl] {
	pnl, err := s.pnl.FetchPnl(ctx, wallet)
	if err != nil {
		s.logger.Warn("Wallet PnL unavailable", zap.String("wallet", wallet), zap.Error(err))
		return entities.Failed(&entities.WalletPnl{}, fmt.Errorf("failed to fetch wallet pnl: %w", err))
	}
	if pnl == nil {
		pnl = &entities.WalletPnl{}
	}
	return entities.Succeeded(pnl)
}
