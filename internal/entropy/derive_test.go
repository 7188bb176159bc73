package entropy

import "testing"

func someSeed() Seed256 {
	var s Seed256
	for i := range s {
		s[i] = byte(i * 7)
	}
	return s
}

func TestSequenceDeterministic(t *testing.T) {
	seed := someSeed()
	a := Sequence(seed, 5)
	b := Sequence(seed, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sequence not deterministic at index %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestRangeIntWithinBounds(t *testing.T) {
	seed := someSeed()
	for i := 0; i < 100; i++ {
		sub := Subseed(seed, []byte{byte(i)})
		v := RangeInt(sub, 10, 20)
		if v < 10 || v > 20 {
			t.Fatalf("RangeInt(10,20) out of bounds: %d", v)
		}
	}
}

func TestRangeIntSwapsInvertedBounds(t *testing.T) {
	v := RangeInt(someSeed(), 20, 10)
	if v < 10 || v > 20 {
		t.Fatalf("RangeInt should tolerate hi<lo by swapping, got %d", v)
	}
}

func TestFloat01Range(t *testing.T) {
	seed := someSeed()
	for i := 0; i < 50; i++ {
		sub := Subseed(seed, []byte{byte(i), byte(i + 1)})
		f := Float01(sub)
		if f < 0 || f >= 1 {
			t.Fatalf("Float01 out of [0,1): %v", f)
		}
	}
}

func TestChoiceZeroN(t *testing.T) {
	if got := Choice(someSeed(), 0); got != 0 {
		t.Fatalf("Choice(seed, 0) = %d, want 0", got)
	}
}

func TestChoiceWithinBounds(t *testing.T) {
	seed := someSeed()
	for i := 0; i < 50; i++ {
		sub := Subseed(seed, []byte{byte(i)})
		c := Choice(sub, 7)
		if c < 0 || c >= 7 {
			t.Fatalf("Choice(seed, 7) out of bounds: %d", c)
		}
	}
}

func TestFisherYatesSampleNoDuplicatesAndBounds(t *testing.T) {
	seed := someSeed()
	const n, k = 20, 8
	sample := FisherYatesSample(seed, n, k)
	if len(sample) != k {
		t.Fatalf("expected %d samples, got %d", k, len(sample))
	}
	seen := make(map[int]bool, k)
	for _, idx := range sample {
		if idx < 0 || idx >= n {
			t.Fatalf("sample index %d out of [0,%d)", idx, n)
		}
		if seen[idx] {
			t.Fatalf("duplicate sample index %d", idx)
		}
		seen[idx] = true
	}
}

func TestFisherYatesSampleClampsKToN(t *testing.T) {
	sample := FisherYatesSample(someSeed(), 5, 10)
	if len(sample) != 5 {
		t.Fatalf("sampling k>n should clamp to n, got %d entries", len(sample))
	}
}

func TestFisherYatesSampleDeterministic(t *testing.T) {
	seed := someSeed()
	a := FisherYatesSample(seed, 20, 8)
	b := FisherYatesSample(seed, 20, 8)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("FisherYatesSample not deterministic at index %d", i)
		}
	}
}
