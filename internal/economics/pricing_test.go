package economics

import (
	"testing"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/pkg/models"
)

func TestPriceEnochianBonusRaisesPrice(t *testing.T) {
	market := MarketState{Pool: models.LiquidityPool{TokenReserve: 1000, QuoteReserve: 1000}}
	withEnochian := Price("q1", 900_000, 1, true, market)
	withoutEnochian := Price("q1", 900_000, 1, false, market)
	if withEnochian.FinalPrice <= withoutEnochian.FinalPrice {
		t.Fatalf("enochian bonus should raise final price: with=%d without=%d", withEnochian.FinalPrice, withoutEnochian.FinalPrice)
	}
}

func TestAuthenticityMultiplierClampRange(t *testing.T) {
	for _, score := range []int64{0, 500_000, 950_000, 1_000_000} {
		m := authenticityMultiplier(score)
		if m < canon.ScoreDenom/2 || m > 2*canon.ScoreDenom {
			t.Fatalf("authenticityMultiplier(%d) = %d out of [0.5, 2.0]", score, m)
		}
	}
}

func TestAuthenticityMultiplierMonotonic(t *testing.T) {
	low := authenticityMultiplier(800_000)
	high := authenticityMultiplier(990_000)
	if high <= low {
		t.Fatalf("higher authenticity score should not yield a lower multiplier: low=%d high=%d", low, high)
	}
}

func TestRarityMultiplierCapped(t *testing.T) {
	m := rarityMultiplier(100)
	if m != 4*canon.ScoreDenom {
		t.Fatalf("rarity multiplier should cap at 4.0, got %d", m)
	}
}

func TestRarityMultiplierFloorsAtOneTradition(t *testing.T) {
	m := rarityMultiplier(0)
	if m != canon.ScoreDenom {
		t.Fatalf("distinctTraditionCount<1 should behave as 1, got multiplier %d", m)
	}
}

func TestLiquidityAdjustmentBalancedPoolIsOne(t *testing.T) {
	pool := models.LiquidityPool{TokenReserve: 1000, QuoteReserve: 1000}
	adj := liquidityAdjustment(pool)
	if adj != canon.ScoreDenom {
		t.Fatalf("balanced pool (ratio=1.0) should yield liquidity_adjustment=1.0, got %d", adj)
	}
}

func TestLiquidityAdjustmentFreshPoolTreatedAsBalanced(t *testing.T) {
	pool := models.LiquidityPool{}
	adj := liquidityAdjustment(pool)
	if adj != canon.ScoreDenom {
		t.Fatalf("fresh pool with no reserves should be treated as balanced, got %d", adj)
	}
}

func TestPriceDeterministic(t *testing.T) {
	market := MarketState{Pool: models.LiquidityPool{TokenReserve: 5000, QuoteReserve: 20000, Volume24h: 2000}}
	p1 := Price("q1", 950_000, 3, true, market)
	p2 := Price("q1", 950_000, 3, true, market)
	if p1 != p2 {
		t.Fatalf("Price should be a pure deterministic function: %+v != %+v", p1, p2)
	}
}
