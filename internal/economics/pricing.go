// Package economics implements the Economic Engine (EE): per-quest
// pricing, constant-product AMM purchase effects, pool rebalancing, and
// staking-reward distribution, all in fixed-point arithmetic (spec.md
// §4.9).
package economics

import (
	"math"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/pkg/models"
)

// BasePrice is the parametric starting price for any quest, fixed-point
// denom 1e6.
var BasePrice = canon.FromFloat(4.72)

// BaseVolume24h is the reference volume used to normalize demand_multiplier
// when a pool has no tracked base_volume of its own.
var BaseVolume24h = canon.FromFloat(1000.0)

// MarketState is the set of signals EE needs beyond the quest itself to
// price it: the quest's backing pool and the reference demand volume.
type MarketState struct {
	Pool        models.LiquidityPool
	BaseVolume  int64 // fixed-point, denom 1e6; falls back to BaseVolume24h if zero
}

// Price computes the fully decomposed PricePoint for a quest (spec.md
// §4.9). authenticityScore and distinctTraditionCount come from the
// quest's AuthenticityProof/tradition_refs; hasEnochianRef is whether any
// tradition_ref is "enochian".
func Price(questID string, authenticityScore int64, distinctTraditionCount int, hasEnochianRef bool, market MarketState) models.PricePoint {
	authMult := authenticityMultiplier(authenticityScore)
	enochianBonus := enochianBonus(hasEnochianRef)
	rarityMult := rarityMultiplier(distinctTraditionCount)

	baseVolume := market.BaseVolume
	if baseVolume == 0 {
		baseVolume = BaseVolume24h
	}
	demandMult := demandMultiplier(market.Pool.Volume24h, baseVolume)
	liquidityAdj := liquidityAdjustment(market.Pool)

	final := BasePrice
	final = canon.MulFixed(final, authMult)
	final = canon.MulFixed(final, enochianBonus)
	final = canon.MulFixed(final, rarityMult)
	final = canon.MulFixed(final, demandMult)
	final = canon.MulFixed(final, liquidityAdj)

	return models.PricePoint{
		QuestID:                questID,
		BasePrice:              BasePrice,
		AuthenticityMultiplier: authMult,
		EnochianBonus:          enochianBonus,
		RarityMultiplier:       rarityMult,
		DemandMultiplier:       demandMult,
		LiquidityAdjustment:    liquidityAdj,
		FinalPrice:             final,
	}
}

// authenticityMultiplier: for score s >= 0.95, 1 + (s-0.95)*10; else
// 0.5 + s*0.5. Clipped to [0.5, 2.0].
func authenticityMultiplier(score int64) int64 {
	threshold := int64(950_000)
	var m int64
	if score >= threshold {
		m = canon.ScoreDenom + (score-threshold)*10
	} else {
		m = canon.ScoreDenom/2 + canon.MulFixed(score, canon.ScoreDenom/2)
	}
	return canon.ClampFixed(m, canon.ScoreDenom/2, 2*canon.ScoreDenom)
}

// enochianBonus is 1.8 if any tradition_ref is enochian, else 1.0.
func enochianBonus(hasEnochianRef bool) int64 {
	if hasEnochianRef {
		return canon.FromFloat(1.8)
	}
	return canon.ScoreDenom
}

// rarityMultiplier: 1 + 0.3*(distinctTraditionCount-1), capped at 4.0.
func rarityMultiplier(distinctTraditionCount int) int64 {
	if distinctTraditionCount < 1 {
		distinctTraditionCount = 1
	}
	m := canon.ScoreDenom + int64(distinctTraditionCount-1)*canon.FromFloat(0.3)
	return canon.MinFixed(m, 4*canon.ScoreDenom)
}

// demandMultiplier: 1 + 0.1*ln(max(volume24h/baseVolume, 0.1)), clipped to
// [0.5, 2.0]. Natural log has no fixed-point form in the core's stack, so
// this is the one place EE drops to float64 mid-computation, at the
// narrowest possible boundary.
func demandMultiplier(volume24h, baseVolume int64) int64 {
	if baseVolume <= 0 {
		baseVolume = BaseVolume24h
	}
	ratio := canon.ToFloat(volume24h) / canon.ToFloat(baseVolume)
	if ratio < 0.1 {
		ratio = 0.1
	}
	m := 1.0 + 0.1*math.Log(ratio)
	return canon.ClampFixed(canon.FromFloat(m), canon.ScoreDenom/2, 2*canon.ScoreDenom)
}

// liquidityAdjustment: 1 + 0.2*(1 - min(liquidity_ratio, 2.0)), clipped to
// [0.8, 1.5]. liquidity_ratio is token_reserve/quote_reserve when both are
// positive, else 1.0 (a fresh pool is treated as balanced).
func liquidityAdjustment(pool models.LiquidityPool) int64 {
	ratio := int64(canon.ScoreDenom)
	if pool.QuoteReserve > 0 {
		ratio = canon.MulDiv(pool.TokenReserve, canon.ScoreDenom, pool.QuoteReserve)
	}
	ratio = canon.MinFixed(ratio, 2*canon.ScoreDenom)
	m := canon.ScoreDenom + canon.MulFixed(canon.FromFloat(0.2), canon.ScoreDenom-ratio)
	return canon.ClampFixed(m, canon.FromFloat(0.8), canon.FromFloat(1.5))
}
