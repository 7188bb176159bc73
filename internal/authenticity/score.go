// Package authenticity implements the Authenticity Scorer (AS): a pure
// function computing a quest's authenticity from its grounding entries,
// tradition mix, and historical markers, in fixed-point arithmetic
// throughout (spec.md §4.5), adapted from the teacher's weighted-signal
// ScoreBreakdown composition.
package authenticity

import (
	"sort"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/internal/sourcereg"
	"github.com/enochian/lighthouse/pkg/models"
)

// base is the scoring floor, fixed-point denom 1e6 (spec.md §4.5: 0.85).
const base int64 = 850_000

// enochianBoostCap caps the enochian_boost term at 0.15.
const enochianBoostCap int64 = 150_000

// enochianBoostPerEntry is the 0.1 weight applied to each grounding
// entry's enochian_weight before normalization.
const enochianBoostPerEntry int64 = 100_000

// sourceQualityPerSource is the 0.02 weight applied to each source's
// authenticity_weight.
const sourceQualityPerSource int64 = 20_000

// sourceQualityCap caps source_quality at 0.10.
const sourceQualityCap int64 = 100_000

// historicalBonusPerMarker is the 0.01 weight per matched historical marker.
const historicalBonusPerMarker int64 = 10_000

// historicalBonusCap caps historical_bonus at 0.05.
const historicalBonusCap int64 = 50_000

// oneFixed is 1.0 in fixed-point.
const oneFixed int64 = canon.ScoreDenom

// Input bundles everything Score needs, mirroring spec.md §4.5's "quest
// draft, grounding entries, SR" triple.
type Input struct {
	GroundingEntries []models.KnowledgeEntry
	TraditionRefs    []models.Tradition
	SourceIDs        []string
	HistoricalMarkerMatches int // count of matched historical markers
	WordCountNormalizer     int64 // fixed-point denom 1e6; defaults to 1.0 when 0
}

// Score computes (authenticity_score, proof_components) per spec.md §4.5,
// using the canonical tradition-multiplier table. Pure: no I/O, no
// mutation of its inputs, deterministic fixed-point math.
func Score(in Input, sr *sourcereg.Registry) (int64, models.ProofComponents) {
	return ScoreWithMultipliers(in, sr, models.TraditionMultiplierFixed)
}

// ScoreWithMultipliers is Score generalized over the tradition-multiplier
// table, letting a caller substitute an alternate weighting scheme (e.g.
// an experimental multiplier revision) without touching the canonical
// table itself. Used by the shadow comparator to A/B two parameter sets
// over identical grounding/tradition inputs.
func ScoreWithMultipliers(in Input, sr *sourcereg.Registry, multipliers map[models.Tradition]int64) (int64, models.ProofComponents) {
	normalizer := in.WordCountNormalizer
	if normalizer == 0 {
		normalizer = oneFixed
	}

	var enochianSum int64
	for _, e := range in.GroundingEntries {
		enochianSum += canon.MulFixed(e.EnochianWeight, enochianBoostPerEntry)
	}
	enochianBoost := canon.MinFixed(enochianBoostCap, canon.MulDiv(enochianSum, oneFixed, normalizer))

	traditionMultiplier := canon.MultiplierDenom // 1.0 default when no traditions declared
	for _, t := range in.TraditionRefs {
		m, ok := multipliers[t]
		if !ok {
			m = canon.MultiplierDenom
		}
		if m > traditionMultiplier {
			traditionMultiplier = m
		}
	}

	var sourceQualitySum int64
	if sr != nil {
		for _, sid := range in.SourceIDs {
			if c, ok := sr.Get(sid); ok {
				sourceQualitySum += canon.MulFixed(c.AuthenticityWeight, sourceQualityPerSource)
			}
		}
	}
	sourceQuality := canon.MinFixed(sourceQualityCap, sourceQualitySum)

	historicalBonus := canon.MinFixed(historicalBonusCap, int64(in.HistoricalMarkerMatches)*historicalBonusPerMarker)

	weighted := canon.MulFixedByMultiplier(base, traditionMultiplier)
	final := canon.MinFixed(oneFixed, weighted+enochianBoost+sourceQuality+historicalBonus)

	components := models.ProofComponents{
		Base:                base,
		EnochianBoost:       enochianBoost,
		SourceQuality:       sourceQuality,
		HistoricalBonus:     historicalBonus,
		TraditionMultiplier: traditionMultiplier,
		Final:               final,
	}
	return final, components
}

// SourceDigestsFor returns the sorted source_digests for a grounding set's
// declared source_ids, resolved through SR, as consumed by proof_digest
// construction (spec.md §3 AuthenticityProof).
func SourceDigestsFor(sourceIDs []string, sr *sourcereg.Registry) []string {
	digests := make([]string, 0, len(sourceIDs))
	for _, sid := range sourceIDs {
		if c, ok := sr.Get(sid); ok {
			digests = append(digests, c.Digest)
		}
	}
	sort.Strings(digests)
	return digests
}
