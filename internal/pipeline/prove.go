package pipeline

import (
	"github.com/enochian/lighthouse/internal/authenticity"
	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/internal/merkle"
	"github.com/enochian/lighthouse/pkg/models"
)

// ProveQuestlines implements spec.md §6's
// `prove_questlines([Questline]) -> [AuthenticityBatch]`: for each
// questline, resolves every quest's grounding entries back through KI,
// rebuilds its AuthenticityProof, and seals one AuthenticityBatch per
// governor under a single Merkle root (spec.md §4.7).
func (c *CoreContext) ProveQuestlines(questlines []models.Questline) []models.AuthenticityBatch {
	batches := make([]models.AuthenticityBatch, 0, len(questlines))
	for _, ql := range questlines {
		if len(ql.Quests) == 0 {
			continue
		}
		proofs := make([]models.AuthenticityProof, 0, len(ql.Quests))
		scores := make(map[string]int64, len(ql.Quests))

		for _, q := range ql.Quests {
			grounding := c.resolveGrounding(q.GroundingEntryIDs)
			traditionWeights := traditionWeightsFor(q.TraditionRefs)
			sourceDigests := authenticity.SourceDigestsFor(sourceIDsOf(grounding), c.SR)
			enochianWeight := enochianWeightOf(grounding)

			proof := authenticity.BuildProof(q.QuestID, q.ContentDigest, sourceDigests, traditionWeights, enochianWeight, q.AuthenticityScore)
			proofs = append(proofs, proof)
			scores[q.QuestID] = q.AuthenticityScore
		}

		batchID := canon.NewEncoder().Int64(int64(ql.GovernorID)).String(ql.Quests[0].QuestID).Hash()
		batch := merkle.BuildBatch(batchID, ql.GovernorID, proofs, scores, c.NextCounter())
		batches = append(batches, batch)
	}
	return batches
}

func (c *CoreContext) resolveGrounding(entryIDs []string) []models.KnowledgeEntry {
	out := make([]models.KnowledgeEntry, 0, len(entryIDs))
	for _, id := range entryIDs {
		if e, ok := c.KI.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func sourceIDsOf(grounding []models.KnowledgeEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range grounding {
		for _, sid := range e.SourceIDs {
			if !seen[sid] {
				seen[sid] = true
				out = append(out, sid)
			}
		}
	}
	return out
}

func enochianWeightOf(grounding []models.KnowledgeEntry) int64 {
	var sum int64
	count := 0
	for _, e := range grounding {
		if e.IsEnochian() {
			sum += e.EnochianWeight
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / int64(count)
}

func traditionWeightsFor(refs []models.Tradition) map[models.Tradition]int64 {
	out := make(map[models.Tradition]int64, len(refs))
	for _, t := range refs {
		out[t] = models.TraditionMultiplier(t)
	}
	return out
}
