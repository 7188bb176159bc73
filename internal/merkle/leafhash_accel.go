//go:build cuda

package merkle

import "github.com/enochian/lighthouse/internal/canon"

// leafHash under the cuda build tag batches leaf-hash computation onto
// hardware when a batch's leaf count justifies the dispatch overhead. The
// single-leaf entry point here is the same canonical encoding as the CPU
// path — acceleration applies at the batch level via HashLeavesBatch, kept
// bit-identical to leafhash_cpu.go's algorithm so P (and hardware choice)
// never affects output, only throughput (spec.md §5).
func leafHash(questID string, authenticityScore int64, proofDigest string) string {
	enc := canon.NewEncoder()
	enc.String(questID).Int64(authenticityScore).String(proofDigest)
	return enc.Hash()
}

// HashLeavesBatch computes leaf hashes for an entire batch in one
// dispatch. The reference implementation here still runs on CPU — a real
// hardware backend would stage canonical-encoded inputs into device
// memory and invoke a SHA-256 kernel, returning digests in the same
// order. Wiring to an actual CUDA kernel is out of scope for the core;
// this function exists so the build-tag seam matches the one the
// hardware-accelerated matcher in the teacher's codebase used.
func HashLeavesBatch(questIDs []string, scores []int64, proofDigests []string) []string {
	out := make([]string, len(questIDs))
	for i := range questIDs {
		out[i] = leafHash(questIDs[i], scores[i], proofDigests[i])
	}
	return out
}
