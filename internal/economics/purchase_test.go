package economics

import (
	"testing"

	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/pkg/models"
)

func freshPool() *models.LiquidityPool {
	return &models.LiquidityPool{
		TokenReserve: 10_000 * 1_000_000,
		QuoteReserve: 47_200 * 1_000_000,
		SpotPrice:    4_720_000,
	}
}

func TestApplyPurchaseRejectsNonPositiveAmount(t *testing.T) {
	pool := freshPool()
	_, err := ApplyPurchase(pool, 0, BasePrice)
	if coreerr.KindOf(err) != coreerr.KindInsufficientPool {
		t.Fatalf("expected KindInsufficientPool for zero amount, got %v", coreerr.KindOf(err))
	}
}

func TestApplyPurchaseRejectsEmptyPool(t *testing.T) {
	pool := &models.LiquidityPool{}
	_, err := ApplyPurchase(pool, 1_000_000, BasePrice)
	if coreerr.KindOf(err) != coreerr.KindInsufficientPool {
		t.Fatalf("expected KindInsufficientPool for an empty pool, got %v", coreerr.KindOf(err))
	}
}

func TestApplyPurchaseUpdatesReservesAndFees(t *testing.T) {
	pool := freshPool()
	amount := int64(1_000 * 1_000_000)
	result, err := ApplyPurchase(pool, amount, BasePrice)
	if err != nil {
		t.Fatalf("ApplyPurchase failed: %v", err)
	}
	if result.TokenOut <= 0 {
		t.Fatalf("expected positive token_out, got %d", result.TokenOut)
	}
	wantFee := canonMulFixedForTest(amount, ProtocolFeeFixed)
	if result.FeeCollected != wantFee {
		t.Fatalf("fee collected = %d, want %d", result.FeeCollected, wantFee)
	}
	if pool.Volume24h != amount {
		t.Fatalf("pool volume24h = %d, want %d", pool.Volume24h, amount)
	}
}

func TestApplyPurchaseRejectsTradeDrainingReserve(t *testing.T) {
	pool := &models.LiquidityPool{TokenReserve: 100, QuoteReserve: 100}
	_, err := ApplyPurchase(pool, 1_000_000_000, BasePrice)
	if coreerr.KindOf(err) != coreerr.KindInsufficientPool {
		t.Fatalf("expected KindInsufficientPool for a reserve-draining trade, got %v", coreerr.KindOf(err))
	}
}

func TestApplyPurchaseTriggersRebalanceOnDrift(t *testing.T) {
	// A thin pool with a tiny reserve will see its spot price swing far
	// past the 20% rebalance threshold after a large purchase.
	pool := &models.LiquidityPool{TokenReserve: 1_000 * 1_000_000, QuoteReserve: 1_000 * 1_000_000}
	result, err := ApplyPurchase(pool, 900*1_000_000, BasePrice)
	if err != nil {
		t.Fatalf("ApplyPurchase failed: %v", err)
	}
	if !result.Rebalanced {
		t.Fatal("expected a large trade against a thin pool to trigger rebalancing")
	}
}

func TestDriftExceeds(t *testing.T) {
	if !driftExceeds(130, 100, 200_000) {
		t.Fatal("30% drift should exceed a 20% threshold")
	}
	if driftExceeds(110, 100, 200_000) {
		t.Fatal("10% drift should not exceed a 20% threshold")
	}
}

func canonMulFixedForTest(a, b int64) int64 {
	return (a * b) / 1_000_000
}
