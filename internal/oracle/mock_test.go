package oracle

import (
	"context"
	"testing"

	"github.com/enochian/lighthouse/pkg/models"
)

func TestDeterministicMockAuthorDeterministic(t *testing.T) {
	m := NewDeterministicMock()
	gov := GovernorContext{GovernorID: 1, Name: "ABRIOND", AethyrID: 1, Domain: models.DomainKnowledge}
	grounding := []models.KnowledgeEntry{
		{EntryID: "e1", Name: "The Sigil", Category: models.CategorySymbol, TraditionID: models.TraditionEnochian},
	}
	d1, err := m.Author(context.Background(), gov, grounding, 5, models.DirectiveCreate)
	if err != nil {
		t.Fatalf("Author failed: %v", err)
	}
	d2, err := m.Author(context.Background(), gov, grounding, 5, models.DirectiveCreate)
	if err != nil {
		t.Fatalf("Author failed: %v", err)
	}
	if d1.Title != d2.Title || d1.EnochianInvocation != d2.EnochianInvocation {
		t.Fatal("DeterministicMock.Author should be a pure function of its inputs")
	}
}

func TestDeterministicMockAlwaysIncludesEnochianTraditionRef(t *testing.T) {
	m := NewDeterministicMock()
	gov := GovernorContext{GovernorID: 1, Name: "ABRIOND", AethyrID: 1, Domain: models.DomainKnowledge}
	draft, err := m.Author(context.Background(), gov, nil, 1, models.DirectiveCreate)
	if err != nil {
		t.Fatalf("Author failed: %v", err)
	}
	if len(draft.TraditionRefs) == 0 || draft.TraditionRefs[0] != models.TraditionEnochian {
		t.Fatalf("tradition_refs[0] should always be enochian, got %v", draft.TraditionRefs)
	}
}

func TestDeterministicMockRefineDirectiveChangesDescription(t *testing.T) {
	m := NewDeterministicMock()
	gov := GovernorContext{GovernorID: 1, Name: "ABRIOND", AethyrID: 1, Domain: models.DomainKnowledge}
	create, _ := m.Author(context.Background(), gov, nil, 1, models.DirectiveCreate)
	refine, _ := m.Author(context.Background(), gov, nil, 1, models.DirectiveRefine)
	if create.Description == refine.Description {
		t.Fatal("create and refine directives should produce distinguishable descriptions")
	}
}
