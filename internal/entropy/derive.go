package entropy

import "encoding/binary"

// lcgA, lcgC, lcgM are the fixed LCG parameters from spec.md §4.1, chosen
// for cross-platform reproducibility (Numerical Recipes constants).
const (
	lcgA uint64 = 1664525
	lcgC uint64 = 1013904223
	lcgM uint64 = 1 << 32 // m = 2^32
)

// seedU32 extracts the lower 32 bits of the seed as the LCG's initial state.
func seedU32(seed Seed256) uint32 {
	return binary.BigEndian.Uint32(seed[28:32])
}

// Sequence returns n deterministic uint32 values from the LCG
// (a=1664525, c=1013904223, m=2^32) seeded by the lower 32 bits of seed.
func Sequence(seed Seed256, n int) []uint32 {
	out := make([]uint32, n)
	state := uint64(seedU32(seed))
	for i := 0; i < n; i++ {
		state = (lcgA*state + lcgC) % lcgM
		out[i] = uint32(state)
	}
	return out
}

// RangeInt returns a deterministic integer in [lo, hi] inclusive, derived
// from a single LCG draw.
func RangeInt(seed Seed256, lo, hi int64) int64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	span := uint64(hi-lo) + 1
	draw := Sequence(seed, 1)[0]
	return lo + int64(uint64(draw)%span)
}

// Float01 returns a deterministic rational in [0,1), computed as
// uint64/2^64 via integer math only; conversion to float64 happens solely
// at the return boundary, never mid-computation.
func Float01(seed Seed256) float64 {
	vals := Sequence(seed, 2)
	combined := uint64(vals[0])<<32 | uint64(vals[1])
	return float64(combined) / float64(1<<64)
}

// Choice deterministically selects one index in [0, n) from seed. Callers
// index their own slice with the returned index to avoid generics here.
func Choice(seed Seed256, n int) int {
	if n <= 0 {
		return 0
	}
	draw := Sequence(seed, 1)[0]
	return int(uint64(draw) % uint64(n))
}

// FisherYatesSample deterministically samples k indices without
// replacement from [0, n) using successive LCG draws from seed, returning
// them in selection order. Used by QG step 4b to draw grounding entries
// from the governor's working set.
func FisherYatesSample(seed Seed256, n, k int) []int {
	if k > n {
		k = n
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	draws := Sequence(seed, k)
	result := make([]int, 0, k)
	last := n - 1
	for i := 0; i < k; i++ {
		j := int(uint64(draws[i]) % uint64(last-i+1))
		result = append(result, pool[j])
		pool[j] = pool[last-i]
	}
	return result
}
