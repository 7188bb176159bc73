package oracle

import (
	"context"
	"fmt"

	"github.com/enochian/lighthouse/pkg/models"
)

// DeterministicMock is a ContentOracle implementation that derives every
// field of the returned QuestDraft from the governor and grounding set
// alone — no randomness, no wall-clock, no network — for tests and for
// running the pipeline without a live LLM collaborator wired in.
type DeterministicMock struct{}

// NewDeterministicMock constructs a DeterministicMock.
func NewDeterministicMock() *DeterministicMock {
	return &DeterministicMock{}
}

// Author implements ContentOracle.
func (m *DeterministicMock) Author(_ context.Context, gov GovernorContext, grounding []models.KnowledgeEntry, difficulty int, directive models.OracleDirective) (models.QuestDraft, error) {
	traditionSet := make(map[models.Tradition]bool)
	traditionSet[models.TraditionEnochian] = true
	for _, e := range grounding {
		traditionSet[e.TraditionID] = true
	}
	refs := make([]models.Tradition, 0, len(traditionSet))
	refs = append(refs, models.TraditionEnochian)
	for t := range traditionSet {
		if t != models.TraditionEnochian {
			refs = append(refs, t)
		}
	}

	objectives := make([]string, 0, len(grounding))
	for _, e := range grounding {
		objectives = append(objectives, fmt.Sprintf("Contemplate %s (%s)", e.Name, e.Category))
	}
	if len(objectives) == 0 {
		objectives = []string{"Seek the governor's wisdom"}
	}

	verb := "Seek"
	if directive == models.DirectiveRefine {
		verb = "Deepen your seeking of"
	}

	return models.QuestDraft{
		Title:              fmt.Sprintf("%s: Trial of the %s Aethyr", gov.Name, aethyrOrdinal(gov.AethyrID)),
		Description:        fmt.Sprintf("%s the wisdom held by Governor %s of domain %s, at difficulty %d.", verb, gov.Name, gov.Domain, difficulty),
		Objectives:         objectives,
		WisdomFocus:        string(gov.Domain),
		TraditionRefs:      refs,
		EnochianInvocation: fmt.Sprintf("OL SONF VORSG %s", gov.Name),
	}, nil
}

func aethyrOrdinal(aethyrID int) string {
	return fmt.Sprintf("%d", aethyrID)
}
