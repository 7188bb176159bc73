// Package entropy implements the Entropy Source (ES): deterministic seeds
// derived from Bitcoin block metadata, with no wall-clock fallback
// (spec.md §4.1). Every derived value is a pure function of its seed and
// is bit-identical across runs and platforms.
package entropy

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

// Seed256 is a 256-bit deterministic seed.
type Seed256 [32]byte

// BlockMetadata is the minimal block data ES needs to derive a seed.
type BlockMetadata struct {
	Hash       [32]byte
	MerkleRoot [32]byte
	Nonce      uint32
	Timestamp  uint32
}

// ErrBlockMetadataAbsent is returned when the block metadata provider has
// no data for a requested height. ES never silently substitutes wall-clock
// entropy in this case.
var ErrBlockMetadataAbsent = errors.New("entropy: block metadata absent")

// BlockMetadataProvider supplies block metadata by height. Implementations
// may be backed by an RPC client, a fixture file, or any other source; the
// core treats it as an opaque collaborator (spec.md §6).
type BlockMetadataProvider interface {
	GetBlock(height int64) (BlockMetadata, error)
}

// SeedFor returns H(block_hash ∥ merkle_root ∥ nonce_be ∥ timestamp_be),
// the block's canonical 256-bit seed.
func SeedFor(meta BlockMetadata) Seed256 {
	buf := make([]byte, 0, 32+32+4+4)
	buf = append(buf, meta.Hash[:]...)
	buf = append(buf, meta.MerkleRoot[:]...)
	var nb, tb [4]byte
	binary.BigEndian.PutUint32(nb[:], meta.Nonce)
	binary.BigEndian.PutUint32(tb[:], meta.Timestamp)
	buf = append(buf, nb[:]...)
	buf = append(buf, tb[:]...)
	var out Seed256
	copy(out[:], sha256Sum(buf))
	return out
}

// Subseed returns H(seed ∥ label), deriving an independent seed for a
// sub-purpose (per-governor, per-quest-index) while keeping the whole
// derivation tree reproducible from a single block seed.
func Subseed(seed Seed256, label []byte) Seed256 {
	buf := make([]byte, 0, 32+len(label))
	buf = append(buf, seed[:]...)
	buf = append(buf, label...)
	var out Seed256
	copy(out[:], sha256Sum(buf))
	return out
}

// GovernorLabel builds the subseed label for a governor_id, as consumed by
// QG step 1 (seed0 = ES.subseed(block_seed, governor_id_bytes)).
func GovernorLabel(governorID int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(governorID))
	return b[:]
}

// QuestIndexLabel builds the subseed label for a quest index (little-endian
// per spec.md §4.6 step 4a: "i_le_bytes").
func QuestIndexLabel(i int) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(i))
	return b[:]
}

func sha256Sum(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}
