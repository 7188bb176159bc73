package inscribe

import (
	"bytes"
	"testing"

	"github.com/enochian/lighthouse/pkg/models"
)

func TestCanonicalEncodeSortsByEntryID(t *testing.T) {
	p := TraditionPayload{
		TraditionID: models.TraditionTarot,
		Entries: []models.KnowledgeEntry{
			{EntryID: "z"},
			{EntryID: "a"},
		},
	}
	encoded := CanonicalEncode(p)
	idxA := bytes.Index(encoded, []byte(`"entryId":"a"`))
	idxZ := bytes.Index(encoded, []byte(`"entryId":"z"`))
	if idxA < 0 || idxZ < 0 || idxA > idxZ {
		t.Fatalf("expected entry a before entry z in canonical encoding, got %s", encoded)
	}
}

func TestCanonicalEncodeDeterministic(t *testing.T) {
	p := TraditionPayload{Entries: []models.KnowledgeEntry{{EntryID: "a"}, {EntryID: "b"}}}
	e1 := CanonicalEncode(p)
	e2 := CanonicalEncode(p)
	if !bytes.Equal(e1, e2) {
		t.Fatal("CanonicalEncode should be deterministic")
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	original := []byte(`{"hello":"world"}`)
	compressed := compress(original)
	back, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(back, original) {
		t.Fatalf("round-trip mismatch: got %s, want %s", back, original)
	}
}

func TestPayloadDigestDeterministic(t *testing.T) {
	compressed := compress([]byte("same-input"))
	d1 := payloadDigest(compressed)
	d2 := payloadDigest(compressed)
	if d1 != d2 {
		t.Fatal("payloadDigest should be deterministic")
	}
}
