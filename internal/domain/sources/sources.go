package sources

import (
	"context"

	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
)

// HoldingReader reads an owner's on-chain balance of a mint
type HoldingReader interface {
	// ReadHolding sums the owner's token accounts for mint across all
	// configured token programs
	ReadHolding(ctx context.Context, owner, mint string) (*entities.Holding, error)
}

// PairSource fetches trading pairs for a mint from the market aggregator
type PairSource interface {
	// FetchPairsRaw returns the upstream response body untouched
	FetchPairsRaw(ctx context.Context, mint string) ([]byte, error)

	// FetchPairs returns the decoded pairs in upstream order
	FetchPairs(ctx context.Context, mint string) ([]entities.MarketPair, error)
}

// PnlSource fetches wallet profit/loss from the analytics provider
type PnlSource interface {
	// FetchPnlRaw returns the upstream response body untouched
	FetchPnlRaw(ctx context.Context, wallet string) ([]byte, error)

	// FetchPnl returns the decoded summary
	FetchPnl(ctx context.Context, wallet string) (*entities.WalletPnl, error)
}
