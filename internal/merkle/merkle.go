// Package merkle implements the Merkle Prover (MP): per-batch Merkle tree
// construction over quest-proof leaves with Bitcoin-style odd-node
// duplication, and pure inclusion-proof verification (spec.md §4.7).
package merkle

import (
	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/pkg/models"
)

// LeafHash computes H(canonical-encoding(quest_id, authenticity_score,
// proof_digest)) — one proof leaf (spec.md §4.7 step 1).
func LeafHash(quest models.AuthenticityProof, authenticityScore int64) string {
	return leafHash(quest.QuestID, authenticityScore, quest.ProofDigest)
}

// Tree is a built Merkle tree: levels[0] is the leaf level, levels[last]
// is the single root.
type Tree struct {
	levels [][]string // hex digests, bottom-up
}

// Build constructs a binary Merkle tree bottom-up from ordered leaf
// digests, duplicating the last node of any odd-count level
// (Bitcoin-style), per spec.md §4.7 step 2.
func Build(leaves []string) *Tree {
	if len(leaves) == 0 {
		return &Tree{levels: [][]string{{}}}
	}
	level := make([]string, len(leaves))
	copy(level, leaves)
	levels := [][]string{level}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]string, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, pairHash(level[i], level[i+1]))
		}
		levels = append(levels, next)
		level = next
	}
	return &Tree{levels: levels}
}

// Root returns the tree's merkle_root.
func (t *Tree) Root() string {
	top := t.levels[len(t.levels)-1]
	if len(top) == 0 {
		return ""
	}
	return top[0]
}

// PathFor returns the ordered sibling digests with left/right direction
// bits for the leaf at index i, letting a verifier reconstruct the root
// from a single leaf (spec.md §4.7 step 4).
func (t *Tree) PathFor(i int) []models.MerklePathEntry {
	var path []models.MerklePathEntry
	idx := i
	for level := 0; level < len(t.levels)-1; level++ {
		cur := t.levels[level]
		var siblingIdx int
		var right bool // true if the sibling is the right child
		if idx%2 == 0 {
			siblingIdx = idx + 1
			right = true
		} else {
			siblingIdx = idx - 1
			right = false
		}
		if siblingIdx >= len(cur) {
			siblingIdx = idx // odd-node duplication: sibling is self
		}
		path = append(path, models.MerklePathEntry{Hash: cur[siblingIdx], Right: right})
		idx /= 2
	}
	return path
}

func pairHash(left, right string) string {
	enc := canon.NewEncoder()
	enc.String(left).String(right)
	return enc.Hash()
}
