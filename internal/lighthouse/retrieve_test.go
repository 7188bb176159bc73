package lighthouse

import (
	"testing"

	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/pkg/models"
)

func retrievalEntry(id string, tradition models.Tradition, enochianWeight int64) models.KnowledgeEntry {
	return models.KnowledgeEntry{
		EntryID:           id,
		TraditionID:       tradition,
		Name:              id,
		Category:          models.CategoryPrinciple,
		ContentDigest:     "digest-" + id,
		SourceIDs:         []string{"src-1"},
		DomainRelevance:   map[models.Domain]int64{models.DomainKnowledge: 900_000},
		TraditionWeight:   1_000_000,
		EnochianWeight:    enochianWeight,
		AuthenticityScore: 950_000,
	}
}

func buildRetrievalIndex(t *testing.T) *Lighthouse {
	t.Helper()
	entries := []models.KnowledgeEntry{
		retrievalEntry("en-1", models.TraditionEnochian, 900_000),
		retrievalEntry("en-2", models.TraditionEnochian, 850_000),
		retrievalEntry("en-3", models.TraditionEnochian, 800_000),
		retrievalEntry("ne-1", models.TraditionTarot, 0),
		retrievalEntry("ne-2", models.TraditionAlchemy, 0),
	}
	ki, err := Build(entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ki
}

func TestWeightedRetrieveSatisfiesEnochianPrimacy(t *testing.T) {
	ki := buildRetrievalIndex(t)
	out, err := ki.WeightedRetrieve(Query{Domain: models.DomainKnowledge}, 5)
	if err != nil {
		t.Fatalf("WeightedRetrieve failed: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 results, got %d", len(out))
	}
	enochianCount := 0
	for _, e := range out {
		if e.IsEnochian() {
			enochianCount++
		}
	}
	// beta=0.6 default, k=5 -> r=ceil(3)=3
	if enochianCount < 3 {
		t.Fatalf("enochian primacy violated: got %d enochian of %d results, want >= 3", enochianCount, len(out))
	}
}

func TestWeightedRetrieveOrderedByWeightDescEntryIDAsc(t *testing.T) {
	ki := buildRetrievalIndex(t)
	out, err := ki.WeightedRetrieve(Query{Domain: models.DomainKnowledge}, 5)
	if err != nil {
		t.Fatalf("WeightedRetrieve failed: %v", err)
	}
	for i := 1; i < len(out); i++ {
		wPrev := compositeWeight(out[i-1], Query{Domain: models.DomainKnowledge})
		wCur := compositeWeight(out[i], Query{Domain: models.DomainKnowledge})
		if wPrev < wCur {
			t.Fatalf("result %d (%s, w=%d) should not have lower weight than result %d (%s, w=%d)",
				i-1, out[i-1].EntryID, wPrev, i, out[i].EntryID, wCur)
		}
	}
}

func TestWeightedRetrieveInsufficientEnochianPool(t *testing.T) {
	entries := []models.KnowledgeEntry{
		retrievalEntry("en-1", models.TraditionEnochian, 900_000),
		retrievalEntry("ne-1", models.TraditionTarot, 0),
		retrievalEntry("ne-2", models.TraditionAlchemy, 0),
	}
	ki, err := Build(entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	_, err = ki.WeightedRetrieve(Query{Domain: models.DomainKnowledge}, 5)
	if err == nil {
		t.Fatal("expected insufficient enochian pool error")
	}
	if coreerr.KindOf(err) != coreerr.KindInsufficientEnochianPool {
		t.Fatalf("expected KindInsufficientEnochianPool, got %v", coreerr.KindOf(err))
	}
}

func TestWeightedRetrieveBetaZeroRequiresNoEnochian(t *testing.T) {
	ki := buildRetrievalIndex(t)
	out, err := ki.WeightedRetrieve(Query{Domain: models.DomainKnowledge, Beta: Fixed(0)}, 2)
	if err != nil {
		t.Fatalf("WeightedRetrieve failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	for _, e := range out {
		if e.IsEnochian() {
			t.Fatalf("beta=0 should retrieve no enochian entries when non-enochian candidates suffice, got %s", e.EntryID)
		}
	}
}

func TestWeightedRetrievePureEnochianAtBetaOne(t *testing.T) {
	ki := buildRetrievalIndex(t)
	out, err := ki.WeightedRetrieve(Query{Domain: models.DomainKnowledge, Beta: Fixed(1_000_000)}, 3)
	if err != nil {
		t.Fatalf("WeightedRetrieve failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	for _, e := range out {
		if !e.IsEnochian() {
			t.Fatalf("beta=1 should retrieve only enochian entries, got non-enochian %s", e.EntryID)
		}
	}
}

func TestWeightedRetrieveFiltersLowAuthenticity(t *testing.T) {
	entries := []models.KnowledgeEntry{
		retrievalEntry("en-1", models.TraditionEnochian, 900_000),
		retrievalEntry("en-2", models.TraditionEnochian, 850_000),
	}
	entries[1].AuthenticityScore = 100_000 // below DefaultMinAuthenticity
	ki, err := Build(entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	out, err := ki.WeightedRetrieve(Query{Domain: models.DomainKnowledge}, 1)
	if err != nil {
		t.Fatalf("WeightedRetrieve failed: %v", err)
	}
	if len(out) != 1 || out[0].EntryID != "en-1" {
		t.Fatalf("expected only en-1 to pass the authenticity floor, got %v", out)
	}
}
