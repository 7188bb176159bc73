// Package shadow implements an A/B comparator for authenticity-scoring
// parameter sets: running two tradition-multiplier tables over the same
// grounding/tradition inputs and measuring how far a candidate revision
// drifts from the canonical table before it is ever adopted.
package shadow

import (
	"sort"

	"github.com/enochian/lighthouse/internal/canon"
)

// QuestComparison captures one quest's score under both parameter sets.
type QuestComparison struct {
	QuestID       string `json:"questId"`
	GovernorID    int    `json:"governorId"`
	BaselineScore int64  `json:"baselineScore"` // fixed-point, denom 1e6
	VariantScore  int64  `json:"variantScore"`  // fixed-point, denom 1e6
	Delta         int64  `json:"delta"`         // variant - baseline, fixed-point, denom 1e6
}

// Evaluator measures structural divergence between two sets of
// QuestComparisons. It holds no state of its own; every method is a pure
// function of its arguments.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// MeanAbsoluteDelta returns the mean |delta| across comparisons,
// fixed-point denom 1e6.
func (e *Evaluator) MeanAbsoluteDelta(comparisons []QuestComparison) int64 {
	if len(comparisons) == 0 {
		return 0
	}
	var sum int64
	for _, c := range comparisons {
		d := c.Delta
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / int64(len(comparisons))
}

// DivergenceRate returns the fraction (fixed-point, denom 1e6) of
// comparisons whose |delta| exceeds thresholdFixed.
func (e *Evaluator) DivergenceRate(comparisons []QuestComparison, thresholdFixed int64) int64 {
	if len(comparisons) == 0 {
		return 0
	}
	diverged := 0
	for _, c := range comparisons {
		d := c.Delta
		if d < 0 {
			d = -d
		}
		if d > thresholdFixed {
			diverged++
		}
	}
	return canon.MulDiv(int64(diverged), canon.ScoreDenom, int64(len(comparisons)))
}

// TopDivergences returns the n comparisons with the largest |delta|,
// descending, for surfacing the worst cases in a drift report.
func (e *Evaluator) TopDivergences(comparisons []QuestComparison, n int) []QuestComparison {
	sorted := make([]QuestComparison, len(comparisons))
	copy(sorted, comparisons)
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := sorted[i].Delta, sorted[j].Delta
		if di < 0 {
			di = -di
		}
		if dj < 0 {
			dj = -dj
		}
		return di > dj
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// DriftReport is the summary of one A/B comparison run over a questline
// snapshot.
type DriftReport struct {
	VariantLabel     string             `json:"variantLabel"`
	TotalQuests      int                `json:"totalQuests"`
	MeanAbsoluteDelta int64             `json:"meanAbsoluteDelta"`
	DivergenceRate   int64              `json:"divergenceRate"` // fixed-point, denom 1e6
	WorstDivergences []QuestComparison  `json:"worstDivergences"`
}

// Summarize builds a DriftReport from raw comparisons at the given
// divergence threshold (fixed-point, denom 1e6).
func (e *Evaluator) Summarize(variantLabel string, comparisons []QuestComparison, thresholdFixed int64) DriftReport {
	return DriftReport{
		VariantLabel:      variantLabel,
		TotalQuests:       len(comparisons),
		MeanAbsoluteDelta: e.MeanAbsoluteDelta(comparisons),
		DivergenceRate:    e.DivergenceRate(comparisons, thresholdFixed),
		WorstDivergences:  e.TopDivergences(comparisons, 10),
	}
}
