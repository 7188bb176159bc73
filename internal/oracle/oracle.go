// Package oracle defines the Content Oracle collaborator: an opaque
// external author of QuestDrafts (spec.md §6). The core recomputes
// authenticity locally and never trusts the oracle's own scoring, if any.
package oracle

import (
	"context"

	"github.com/enochian/lighthouse/pkg/models"
)

// GovernorContext is the subset of a Governor's profile the oracle needs
// to author quest drafts in character.
type GovernorContext struct {
	GovernorID int
	Name       string
	AethyrID   int
	Domain     models.Domain
}

// ContentOracle authors quest drafts from a grounding set. Idempotency is
// not required; every call is treated as opaque (spec.md §6).
type ContentOracle interface {
	Author(ctx context.Context, gov GovernorContext, grounding []models.KnowledgeEntry, difficulty int, directive models.OracleDirective) (models.QuestDraft, error)
}
