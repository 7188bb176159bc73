package merkle

import "github.com/enochian/lighthouse/pkg/models"

// Verify is a pure function reconstructing a merkle_root from a single
// leaf and its ordered sibling path, returning whether it matches root
// (spec.md §4.7 verification contract).
func Verify(leaf string, path []models.MerklePathEntry, root string) bool {
	current := leaf
	for _, entry := range path {
		if entry.Right {
			current = pairHash(current, entry.Hash)
		} else {
			current = pairHash(entry.Hash, current)
		}
	}
	return current == root
}

// BuildBatch constructs an AuthenticityBatch from a governor's ordered
// proofs: computes each leaf, builds the tree, and populates each proof's
// merkle_path and batch_id.
func BuildBatch(batchID string, governorID int, proofs []models.AuthenticityProof, authenticityScores map[string]int64, createdAtCounter int64) models.AuthenticityBatch {
	leaves := make([]string, len(proofs))
	for i, p := range proofs {
		leaves[i] = LeafHash(p, authenticityScores[p.QuestID])
	}
	tree := Build(leaves)
	root := tree.Root()

	var authSum int64
	highAuthCount := 0
	out := make([]models.AuthenticityProof, len(proofs))
	for i, p := range proofs {
		p.MerklePath = tree.PathFor(i)
		p.BatchID = batchID
		out[i] = p

		score := authenticityScores[p.QuestID]
		authSum += score
		if score >= 950_000 {
			highAuthCount++
		}
	}

	avgAuth := int64(0)
	if len(out) > 0 {
		avgAuth = authSum / int64(len(out))
	}

	return models.AuthenticityBatch{
		BatchID:         batchID,
		GovernorID:      governorID,
		MerkleRoot:      root,
		Proofs:          out,
		AvgAuthenticity: avgAuth,
		HighAuthCount:   highAuthCount,
		CreatedAt:       createdAtCounter,
	}
}
