package solana

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/observability"
)

var (
	// ErrHoldingUnavailable is returned when every token program lookup failed
	ErrHoldingUnavailable = errors.New("holding unavailable")

	// ErrDecimalsMismatch is returned when accounts of one mint report
	// different decimal counts
	ErrDecimalsMismatch = errors.New("token accounts disagree on decimals")
)

// AccountLister lists an owner's parsed token accounts under one program
type AccountLister interface {
	TokenAccountsByOwner(ctx context.Context, owner, programID string) ([]entities.TokenAccountRecord, error)
}

// HoldingReader sums an owner's token accounts for a mint across token programs
type HoldingReader struct {
	accounts AccountLister
	programs []string
	logger   *zap.Logger
}

// NewHoldingReader creates a reader querying each of programs
func NewHoldingReader(accounts AccountLister, programs []string, logger *zap.Logger) *HoldingReader {
	return &HoldingReader{
		accounts: accounts,
		programs: programs,
		logger:   logger,
	}
}

// ReadHolding queries every program concurrently. A failed lookup counts
// as zero accounts and is listed in Holding.FailedPrograms; only when all
// lookups fail is ErrHoldingUnavailable returned.
func (r *HoldingReader) ReadHolding(ctx context.Context, owner, mint string) (*entities.Holding, error) {
	results := make([][]entities.TokenAccountRecord, len(r.programs))
	errs := make([]error, len(r.programs))

	// plain Group: one lookup failing must not cancel the others
	var g errgroup.Group
	for i, program := range r.programs {
		i, program := i, program
		g.Go(func() error {
			results[i], errs[i] = r.accounts.TokenAccountsByOwner(ctx, owner, program)
			return nil
		})
	}
	_ = g.Wait()

	var failed []string
	var records []entities.TokenAccountRecord
	for i, program := range r.programs {
		if errs[i] != nil {
			r.logger.Warn("Token account lookup failed",
				zap.String("owner", owner),
				zap.String("program_id", program),
				zap.Error(errs[i]),
			)
			failed = append(failed, program)
			continue
		}
		records = append(records, results[i]...)
	}

	if len(r.programs) > 0 && len(failed) == len(r.programs) {
		return nil, fmt.Errorf("%w: %w", ErrHoldingUnavailable, errors.Join(errs...))
	}

	holding, err := Aggregate(owner, mint, records)
	if err != nil {
		return nil, err
	}
	holding.FailedPrograms = failed
	if holding.Partial() {
		observability.ObservePartialHolding()
	}

	r.logger.Debug("Holding read",
		zap.String("owner", owner),
		zap.String("mint", mint),
		zap.String("raw", holding.RawStr),
		zap.Int("accounts", holding.Accounts),
	)

	return holding, nil
}

// Aggregate sums the records matching mint exactly. With no matching
// records the holding is zero with zero decimals.
func Aggregate(owner, mint string, records []entities.TokenAccountRecord) (*entities.Holding, error) {
	sum := new(big.Int)
	decimals := -1
	accounts := 0

	for _, rec := range records {
		if rec.Mint != mint || rec.Amount == nil || rec.Amount.Sign() < 0 || rec.Decimals < 0 {
			continue
		}
		if decimals >= 0 && rec.Decimals != decimals {
			return nil, fmt.Errorf("%w: mint %s has %d and %d (account %s)",
				ErrDecimalsMismatch, mint, decimals, rec.Decimals, rec.Pubkey)
		}
		decimals = rec.Decimals
		sum.Add(sum, rec.Amount)
		accounts++
	}

	if decimals < 0 {
		decimals = 0
	}

	display := FormatRawAmount(sum, decimals)
	return &entities.Holding{
		Owner:    owner,
		Mint:     mint,
		Raw:      sum,
		RawStr:   sum.String(),
		Decimals: decimals,
		Display:  display,
		Numeric:  DisplayFloat(display),
		Accounts: accounts,
	}, nil
}
