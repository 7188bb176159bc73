// Package canon implements the single canonical encoding and hash function
// used across the core: a length-prefixed field encoding (to prevent
// ambiguity between e.g. "ab"+"c" and "a"+"bc") and sha256 as the one
// collision-resistant 256-bit hash, applied uniformly.
package canon

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
)

// Encoder accumulates length-prefixed fields for hashing. Every field is
// written as a 4-byte big-endian length followed by its bytes, so no
// concatenation of two distinct field sequences can collide.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

func (e *Encoder) writeLenPrefixed(b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	e.buf = append(e.buf, lenBuf[:]...)
	e.buf = append(e.buf, b...)
}

// String appends a length-prefixed UTF-8 string field.
func (e *Encoder) String(s string) *Encoder {
	e.writeLenPrefixed([]byte(s))
	return e
}

// Int64 appends a length-prefixed fixed-width (8-byte big-endian) integer
// field. Used for fixed-point scores, counters, and ids.
func (e *Encoder) Int64(v int64) *Encoder {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	e.writeLenPrefixed(b[:])
	return e
}

// StringSlice appends an ordered sequence of strings, itself length-prefixed
// by element count, then each element length-prefixed in turn. The caller
// is responsible for sorting when the spec requires a sorted field.
func (e *Encoder) StringSlice(ss []string) *Encoder {
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(ss)))
	e.buf = append(e.buf, countBuf[:]...)
	for _, s := range ss {
		e.writeLenPrefixed([]byte(s))
	}
	return e
}

// SortedStringMapInt64 appends a map's entries sorted by key, each entry as
// key then fixed-point int64 value, so the encoding of a map is
// deterministic regardless of Go's randomized map iteration order.
func (e *Encoder) SortedStringMapInt64(m map[string]int64) *Encoder {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(keys)))
	e.buf = append(e.buf, countBuf[:]...)
	for _, k := range keys {
		e.writeLenPrefixed([]byte(k))
		e.Int64(m[k])
	}
	return e
}

// Bytes returns the accumulated canonical byte sequence.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Hash returns the single collision-resistant hash (sha256) of the
// accumulated byte sequence, hex-encoded.
func (e *Encoder) Hash() string {
	return HashBytes(e.buf)
}

// HashBytes applies the core's one hash function to an arbitrary byte
// sequence and returns the lowercase hex digest.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// HashStrings is a convenience wrapper hashing an ordered sequence of
// strings via the canonical length-prefixed encoding.
func HashStrings(ss ...string) string {
	enc := NewEncoder()
	for _, s := range ss {
		enc.String(s)
	}
	return enc.Hash()
}
