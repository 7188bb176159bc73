package authenticity

import (
	"sort"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/pkg/models"
)

// BuildProofDigest computes
// proof_digest = H(canonical-encoding(quest_id, authenticity_score,
// content_digest, sorted source_digests, sorted tradition_weights,
// enochian_weight)) per spec.md §3.
func BuildProofDigest(questID string, authenticityScore int64, contentDigest string, sourceDigests []string, traditionWeights map[models.Tradition]int64, enochianWeight int64) string {
	sortedDigests := make([]string, len(sourceDigests))
	copy(sortedDigests, sourceDigests)
	sort.Strings(sortedDigests)

	weightsByName := make(map[string]int64, len(traditionWeights))
	for t, w := range traditionWeights {
		weightsByName[string(t)] = w
	}

	enc := canon.NewEncoder()
	enc.String(questID).
		Int64(authenticityScore).
		String(contentDigest).
		StringSlice(sortedDigests).
		SortedStringMapInt64(weightsByName).
		Int64(enochianWeight)
	return enc.Hash()
}

// BuildProof assembles a frozen AuthenticityProof from a quest's computed
// score and components, deferring merkle_path/batch_id population to MP.
func BuildProof(questID, contentDigest string, sourceDigests []string, traditionWeights map[models.Tradition]int64, enochianWeight, authenticityScore int64) models.AuthenticityProof {
	digest := BuildProofDigest(questID, authenticityScore, contentDigest, sourceDigests, traditionWeights, enochianWeight)
	return models.AuthenticityProof{
		QuestID:          questID,
		ContentDigest:    contentDigest,
		SourceDigests:    sourceDigests,
		TraditionWeights: traditionWeights,
		EnochianWeight:   enochianWeight,
		ProofDigest:      digest,
	}
}
