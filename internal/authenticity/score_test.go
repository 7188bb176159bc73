package authenticity

import (
	"testing"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/internal/sourcereg"
	"github.com/enochian/lighthouse/pkg/models"
)

func testRegistry(t *testing.T) *sourcereg.Registry {
	t.Helper()
	r, err := sourcereg.New([]models.SourceCitation{
		{SourceID: "s1", AuthenticityWeight: 1_000_000, Digest: "d1"},
		{SourceID: "s2", AuthenticityWeight: 500_000, Digest: "d2"},
	})
	if err != nil {
		t.Fatalf("sourcereg.New failed: %v", err)
	}
	return r
}

func TestScoreNeverExceedsOne(t *testing.T) {
	sr := testRegistry(t)
	in := Input{
		GroundingEntries: []models.KnowledgeEntry{
			{EnochianWeight: 1_000_000}, {EnochianWeight: 1_000_000}, {EnochianWeight: 1_000_000},
		},
		TraditionRefs:           []models.Tradition{models.TraditionEnochian},
		SourceIDs:               []string{"s1", "s2"},
		HistoricalMarkerMatches: 10,
	}
	score, components := Score(in, sr)
	if score > canon.ScoreDenom {
		t.Fatalf("score %d exceeds 1.0 (%d)", score, canon.ScoreDenom)
	}
	if components.Final != score {
		t.Fatalf("components.Final (%d) should equal returned score (%d)", components.Final, score)
	}
}

func TestScoreBaseFloorWithNoBonuses(t *testing.T) {
	sr := testRegistry(t)
	score, components := Score(Input{}, sr)
	if components.Base != 850_000 {
		t.Fatalf("base = %d, want 850000", components.Base)
	}
	if score != 850_000 {
		t.Fatalf("score with no bonuses and no traditions = %d, want 850000", score)
	}
}

func TestScoreTraditionMultiplierPicksHighestDeclaredTradition(t *testing.T) {
	sr := testRegistry(t)
	_, withEnochian := Score(Input{TraditionRefs: []models.Tradition{models.TraditionEnochian}}, sr)
	_, withTarot := Score(Input{TraditionRefs: []models.Tradition{models.TraditionTarot}}, sr)
	if withEnochian.TraditionMultiplier <= withTarot.TraditionMultiplier {
		t.Fatalf("enochian multiplier (%d) should exceed tarot's (%d)", withEnochian.TraditionMultiplier, withTarot.TraditionMultiplier)
	}
}

func TestScoreSourceQualityCapped(t *testing.T) {
	sr := testRegistry(t)
	many := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		many = append(many, "s1")
	}
	_, components := Score(Input{SourceIDs: many}, sr)
	if components.SourceQuality != sourceQualityCap {
		t.Fatalf("source_quality should be capped at %d, got %d", sourceQualityCap, components.SourceQuality)
	}
}

func TestScoreWithMultipliersDivergesFromCanonicalTable(t *testing.T) {
	sr := testRegistry(t)
	in := Input{TraditionRefs: []models.Tradition{models.TraditionTarot}}
	baseline, _ := Score(in, sr)
	candidate := map[models.Tradition]int64{models.TraditionTarot: 2_000}
	variant, _ := ScoreWithMultipliers(in, sr, candidate)
	if variant <= baseline {
		t.Fatalf("doubling tarot's multiplier should raise the score: baseline=%d variant=%d", baseline, variant)
	}
}

func TestSourceDigestsForSortedAndResolved(t *testing.T) {
	sr := testRegistry(t)
	digests := SourceDigestsFor([]string{"s2", "s1", "missing"}, sr)
	if len(digests) != 2 {
		t.Fatalf("expected 2 resolved digests, got %d: %v", len(digests), digests)
	}
	if digests[0] != "d1" || digests[1] != "d2" {
		t.Fatalf("expected sorted [d1 d2], got %v", digests)
	}
}
