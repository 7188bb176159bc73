package lighthouse

import (
	"testing"

	"github.com/enochian/lighthouse/pkg/models"
)

func entry(id string, tradition models.Tradition, enochianWeight int64, domain models.Domain, relevance int64) models.KnowledgeEntry {
	return models.KnowledgeEntry{
		EntryID:           id,
		TraditionID:       tradition,
		Name:              id,
		Category:          models.CategoryPrinciple,
		ContentDigest:     "digest-" + id,
		SourceIDs:         []string{"src-1"},
		DomainRelevance:   map[models.Domain]int64{domain: relevance},
		TraditionWeight:   1_000_000,
		EnochianWeight:    enochianWeight,
		AuthenticityScore: 900_000,
	}
}

func TestBuildRejectsUnknownTradition(t *testing.T) {
	_, err := Build([]models.KnowledgeEntry{entry("e1", models.Tradition("not-a-tradition"), 0, models.DomainKnowledge, 500_000)})
	if err == nil {
		t.Fatal("expected error for unknown tradition_id")
	}
}

func TestBuildRejectsEnochianWithZeroWeight(t *testing.T) {
	_, err := Build([]models.KnowledgeEntry{entry("e1", models.TraditionEnochian, 0, models.DomainKnowledge, 500_000)})
	if err == nil {
		t.Fatal("expected error for enochian entry with enochian_weight<=0")
	}
}

func TestBuildRejectsDuplicateEntryID(t *testing.T) {
	e := entry("dup", models.TraditionTarot, 0, models.DomainDivination, 500_000)
	_, err := Build([]models.KnowledgeEntry{e, e})
	if err == nil {
		t.Fatal("expected error for duplicate entry_id")
	}
}

func TestBuildAndLookup(t *testing.T) {
	entries := []models.KnowledgeEntry{
		entry("e2", models.TraditionTarot, 0, models.DomainDivination, 500_000),
		entry("e1", models.TraditionEnochian, 900_000, models.DomainKnowledge, 900_000),
	}
	ki, err := Build(entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if ki.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ki.Len())
	}
	if _, ok := ki.Get("missing"); ok {
		t.Fatal("Get on missing entry should report not found")
	}
	e1, ok := ki.Get("e1")
	if !ok || e1.TraditionID != models.TraditionEnochian {
		t.Fatalf("Get(e1) = %+v, %v", e1, ok)
	}
}

func TestEntriesInTraditionSorted(t *testing.T) {
	entries := []models.KnowledgeEntry{
		entry("z", models.TraditionTarot, 0, models.DomainDivination, 500_000),
		entry("a", models.TraditionTarot, 0, models.DomainDivination, 500_000),
	}
	ki, err := Build(entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	ids := ki.EntriesInTradition(models.TraditionTarot)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "z" {
		t.Fatalf("expected sorted [a z], got %v", ids)
	}
}

func TestTraditionsSubsetAndSorted(t *testing.T) {
	entries := []models.KnowledgeEntry{
		entry("e1", models.TraditionTarot, 0, models.DomainDivination, 500_000),
		entry("e2", models.TraditionAlchemy, 0, models.DomainTransformation, 500_000),
	}
	ki, err := Build(entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got := ki.Traditions()
	if len(got) != 2 || got[0] != models.TraditionAlchemy || got[1] != models.TraditionTarot {
		t.Fatalf("Traditions() = %v, want sorted [alchemy tarot]", got)
	}
}
