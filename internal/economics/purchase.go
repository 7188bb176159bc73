package economics

import (
	"math"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/pkg/models"
)

// ProtocolFeeFixed is the 10% protocol fee taken off every
// purchase before it touches the constant-product reserves (spec.md
// §4.9).
const (
	ProtocolFeeFixed   = 100_000 // 0.10, denom 1e6
	RebalanceThreshold = 200_000 // 0.20, denom 1e6
	RebalancePullFixed = 100_000 // 0.10, denom 1e6
	StakingShareFixed  = 150_000 // 0.15, denom 1e6
)

// ApplyPurchase spends amountInQuote against pool, buying the quest's
// token leg via the constant-product AMM rule, then rebalances the pool
// toward basePrice if the resulting spot price has drifted more than 20%
// (spec.md §4.9). Mutates pool in place and returns the transaction's
// effects.
func ApplyPurchase(pool *models.LiquidityPool, amountInQuote int64, basePrice int64) (models.PurchaseResult, error) {
	if amountInQuote <= 0 {
		return models.PurchaseResult{}, coreerr.InsufficientPool("purchase amount must be positive")
	}
	if pool.TokenReserve <= 0 || pool.QuoteReserve <= 0 {
		return models.PurchaseResult{}, coreerr.InsufficientPool("pool has no reserves to trade against")
	}

	fee := canon.MulFixed(amountInQuote, ProtocolFeeFixed)
	amountAfterFee := amountInQuote - fee

	// token_out = reserve_out * amount_in_after_fee / (reserve_in + amount_in_after_fee)
	tokenOut := canon.MulDiv(pool.TokenReserve, amountAfterFee, pool.QuoteReserve+amountAfterFee)
	if tokenOut >= pool.TokenReserve {
		return models.PurchaseResult{}, coreerr.InsufficientPool("trade would drain token reserve")
	}

	pool.QuoteReserve += amountAfterFee
	pool.TokenReserve -= tokenOut
	pool.FeesAccumulated += fee
	pool.Volume24h += amountInQuote
	pool.SpotPrice = spotPrice(*pool)

	rebalanced := false
	if basePrice > 0 && driftExceeds(pool.SpotPrice, basePrice, RebalanceThreshold) {
		rebalance(pool, basePrice)
		rebalanced = true
	}

	return models.PurchaseResult{
		TokenOut:     tokenOut,
		FeeCollected: fee,
		NewSpotPrice: pool.SpotPrice,
		Rebalanced:   rebalanced,
	}, nil
}

func spotPrice(pool models.LiquidityPool) int64 {
	if pool.TokenReserve <= 0 {
		return 0
	}
	return canon.MulDiv(pool.QuoteReserve, canon.ScoreDenom, pool.TokenReserve)
}

// driftExceeds reports whether |a-b|/b > thresholdFixed, computed without
// division by comparing |a-b|*denom against b*thresholdFixed.
func driftExceeds(a, b, thresholdFixed int64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff*canon.ScoreDenom > b*thresholdFixed
}

// rebalance pulls reserves 10% of the way toward the symmetric target
// (quote_target = token_target*basePrice) that preserves the pool's
// constant product k while setting spot_price exactly to basePrice.
// token_target = sqrt(k/basePrice); the square root has no fixed-point
// form in the core's stack, so this is computed at a float64 boundary
// exactly as demandMultiplier's ln is.
func rebalance(pool *models.LiquidityPool, basePrice int64) {
	k := canon.ToFloat(pool.TokenReserve) * canon.ToFloat(pool.QuoteReserve)
	basePriceF := canon.ToFloat(basePrice)
	if basePriceF <= 0 {
		return
	}
	tokenTarget := math.Sqrt(k / basePriceF)
	quoteTarget := tokenTarget * basePriceF

	tokenTargetFixed := canon.FromFloat(tokenTarget)
	quoteTargetFixed := canon.FromFloat(quoteTarget)

	pool.TokenReserve += canon.MulFixed(tokenTargetFixed-pool.TokenReserve, RebalancePullFixed)
	pool.QuoteReserve += canon.MulFixed(quoteTargetFixed-pool.QuoteReserve, RebalancePullFixed)
	pool.SpotPrice = spotPrice(*pool)
}
