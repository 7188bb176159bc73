package pipeline

import (
	"github.com/enochian/lighthouse/internal/economics"
	"github.com/enochian/lighthouse/pkg/models"
)

// Price implements spec.md §6's `price(quest, market_state) -> PricePoint`,
// resolving the quest's distinct-tradition-count and enochian-ref flag
// from its own TraditionRefs (tradition_refs[0] is always enochian, so
// hasEnochianRef is trivially true for any sealed quest, but is computed
// generically here for quest drafts too).
func Price(q models.Quest, market economics.MarketState) models.PricePoint {
	distinct := make(map[models.Tradition]bool, len(q.TraditionRefs))
	hasEnochian := false
	for _, t := range q.TraditionRefs {
		distinct[t] = true
		if t == models.TraditionEnochian {
			hasEnochian = true
		}
	}
	return economics.Price(q.QuestID, q.AuthenticityScore, len(distinct), hasEnochian, market)
}

// ApplyPurchase implements spec.md §6's
// `apply_purchase(pool, amount_in, base_price) -> PurchaseResult`, a thin
// pass-through kept at this layer so callers depend only on the pipeline
// package for every §6 exposed operation.
func ApplyPurchase(pool *models.LiquidityPool, amountInQuote, basePrice int64) (models.PurchaseResult, error) {
	return economics.ApplyPurchase(pool, amountInQuote, basePrice)
}
