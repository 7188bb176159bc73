//go:build !cuda

package merkle

import "github.com/enochian/lighthouse/internal/canon"

// leafHash is the portable, pure-Go leaf hash used when built without the
// cuda tag. It is the authoritative implementation; the cuda-tagged
// variant must produce bit-identical output, only faster for large
// batches (spec.md §8: determinism across runs and platforms).
func leafHash(questID string, authenticityScore int64, proofDigest string) string {
	enc := canon.NewEncoder()
	enc.String(questID).Int64(authenticityScore).String(proofDigest)
	return enc.Hash()
}
