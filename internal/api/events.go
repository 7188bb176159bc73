package api

import (
	"encoding/json"
	"log"

	"github.com/enochian/lighthouse/internal/economics"
	"github.com/enochian/lighthouse/pkg/models"
)

// runCompleteEvent marshals a completed run's diagnostic report into the
// WebSocket broadcast envelope, matching the hub's plain-JSON-bytes
// contract.
func runCompleteEvent(report models.RunReport) []byte {
	payload := map[string]any{
		"type":   "run_complete",
		"report": report,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal run_complete event: %v", err)
		return nil
	}
	return b
}

// economicsMarketState builds a MarketState snapshot from a pool's current
// reserves, falling back to EE's default reference volume.
func economicsMarketState(pool *models.LiquidityPool) economics.MarketState {
	return economics.MarketState{Pool: *pool, BaseVolume: economics.BaseVolume24h}
}
