package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/dexscreener"
	"github.com/bimakw/ivg-dashboard/internal/testutil"
)

func TestSelectBestPair(t *testing.T) {
	t.Run("picks greatest numeric liquidity", func(t *testing.T) {
		pairs := []entities.MarketPair{
			testutil.CreateTestPair(testutil.PairWithAddress("a"), testutil.PairWithLiquidity(100)),
			testutil.CreateTestPair(testutil.PairWithAddress("b"), testutil.PairWithLiquidity(5000)),
			testutil.CreateTestPair(testutil.PairWithAddress("c"), testutil.PairWithLiquidity(250)),
		}

		best, ok := SelectBestPair(pairs)
		if !ok {
			t.Fatal("expected a best pair")
		}
		if best.PairAddress != "b" {
			t.Errorf("expected pair b, got %s", best.PairAddress)
		}
	})

	t.Run("excludes pairs without numeric liquidity", func(t *testing.T) {
		pairs := []entities.MarketPair{
			testutil.CreateTestPair(testutil.PairWithAddress("missing"), testutil.PairWithoutLiquidity()),
			testutil.CreateTestPair(testutil.PairWithAddress("small"), testutil.PairWithLiquidity(1)),
		}

		best, ok := SelectBestPair(pairs)
		if !ok {
			t.Fatal("expected a best pair")
		}
		if best.PairAddress != "small" {
			t.Errorf("expected pair small, got %s", best.PairAddress)
		}
	})

	t.Run("zero liquidity is a candidate", func(t *testing.T) {
		pairs := []entities.MarketPair{
			testutil.CreateTestPair(testutil.PairWithAddress("missing"), testutil.PairWithoutLiquidity()),
			testutil.CreateTestPair(testutil.PairWithAddress("zero"), testutil.PairWithLiquidity(0)),
		}

		best, ok := SelectBestPair(pairs)
		if !ok || best.PairAddress != "zero" {
			t.Errorf("expected pair zero, got %s (ok=%v)", best.PairAddress, ok)
		}
	})

	t.Run("ties keep first encountered", func(t *testing.T) {
		pairs := []entities.MarketPair{
			testutil.CreateTestPair(testutil.PairWithAddress("first"), testutil.PairWithLiquidity(700)),
			testutil.CreateTestPair(testutil.PairWithAddress("second"), testutil.PairWithLiquidity(700)),
		}

		best, _ := SelectBestPair(pairs)
		if best.PairAddress != "first" {
			t.Errorf("expected pair first, got %s", best.PairAddress)
		}
	})

	t.Run("absent when no pair has numeric liquidity", func(t *testing.T) {
		pairs := []entities.MarketPair{
			testutil.CreateTestPair(testutil.PairWithoutLiquidity()),
			testutil.CreateTestPair(testutil.PairWithoutLiquidity()),
		}

		if _, ok := SelectBestPair(pairs); ok {
			t.Error("expected no best pair")
		}
	})

	t.Run("absent for empty list", func(t *testing.T) {
		if _, ok := SelectBestPair(nil); ok {
			t.Error("expected no best pair")
		}
	})
}

func TestRankPairs(t *testing.T) {
	pairs := []entities.MarketPair{
		testutil.CreateTestPair(testutil.PairWithAddress("none1"), testutil.PairWithoutLiquidity()),
		testutil.CreateTestPair(testutil.PairWithAddress("mid"), testutil.PairWithLiquidity(50)),
		testutil.CreateTestPair(testutil.PairWithAddress("top"), testutil.PairWithLiquidity(900)),
		testutil.CreateTestPair(testutil.PairWithAddress("none2"), testutil.PairWithoutLiquidity()),
		testutil.CreateTestPair(testutil.PairWithAddress("mid2"), testutil.PairWithLiquidity(50)),
	}

	t.Run("orders by liquidity then unranked", func(t *testing.T) {
		ranked := RankPairs(pairs, 0)
		expected := []string{"top", "mid", "mid2", "none1", "none2"}

		if len(ranked) != len(expected) {
			t.Fatalf("expected %d pairs, got %d", len(expected), len(ranked))
		}
		for i, addr := range expected {
			if ranked[i].PairAddress != addr {
				t.Errorf("position %d: expected %s, got %s", i, addr, ranked[i].PairAddress)
			}
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		ranked := RankPairs(pairs, 2)
		if len(ranked) != 2 {
			t.Fatalf("expected 2 pairs, got %d", len(ranked))
		}
		if ranked[0].PairAddress != "top" {
			t.Errorf("expected top first, got %s", ranked[0].PairAddress)
		}
	})

	t.Run("does not reorder input", func(t *testing.T) {
		RankPairs(pairs, 0)
		if pairs[0].PairAddress != "none1" {
			t.Errorf("input was reordered: %s", pairs[0].PairAddress)
		}
	})
}

func TestMarketService_FetchPairs(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns pairs", func(t *testing.T) {
		source := testutil.NewMockPairSource()
		service := NewMarketService(source, logger)

		result := service.FetchPairs(ctx, testutil.MintAddress)
		if !result.OK() {
			t.Fatalf("unexpected error: %v", result.Err)
		}
		if len(result.Value) != 2 {
			t.Errorf("expected 2 pairs, got %d", len(result.Value))
		}
	})

	t.Run("failure yields empty list and error", func(t *testing.T) {
		source := testutil.NewMockPairSource()
		source.FetchPairsFunc = func(ctx context.Context, mint string) ([]entities.MarketPair, error) {
			return nil, errors.New("connection refused")
		}
		service := NewMarketService(source, logger)

		result := service.FetchPairs(ctx, testutil.MintAddress)
		if result.OK() {
			t.Fatal("expected failure")
		}
		if result.Value == nil || len(result.Value) != 0 {
			t.Errorf("expected empty non-nil list, got %v", result.Value)
		}
	})

	t.Run("empty answer is success", func(t *testing.T) {
		source := testutil.NewMockPairSource()
		source.FetchPairsFunc = func(ctx context.Context, mint string) ([]entities.MarketPair, error) {
			return nil, nil
		}
		service := NewMarketService(source, logger)

		result := service.FetchPairs(ctx, testutil.MintAddress)
		if !result.OK() {
			t.Fatalf("unexpected error: %v", result.Err)
		}
		if len(result.Value) != 0 {
			t.Errorf("expected no pairs, got %d", len(result.Value))
		}
	})
}

func TestSelectBestPair_MalformedSiblingField(t *testing.T) {
	body := `[
		{"dexId":"a","liquidity":{"usd":"lots"}},
		{"dexId":"b","liquidity":{"usd":500},"txns":{"h24":"n/a"}},
		{"dexId":"c","liquidity":{"usd":100}}
	]`

	pairs, err := dexscreener.DecodePairs([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	best, ok := SelectBestPair(pairs)
	if !ok {
		t.Fatal("expected a best pair")
	}
	if best.DexID != "b" {
		t.Errorf("expected pair b, got %s", best.DexID)
	}
}
