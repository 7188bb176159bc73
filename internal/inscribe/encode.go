// Package inscribe implements the Inscription Batcher (IB): groups quests
// and knowledge-index content into ordered, compressed inscription
// batches each <= 1 MiB after compression, with cross-batch references
// (spec.md §4.8).
package inscribe

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"sort"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/pkg/models"
)

// TraditionPayload is one tradition's worth of content to be batched,
// already partitioned by the knowledge index (the concatenation of all
// batches' traditions must partition the KI, per spec.md §3).
type TraditionPayload struct {
	TraditionID models.Tradition
	Entries     []models.KnowledgeEntry
}

// CanonicalEncode serializes a tradition's entries as sorted-by-entry_id,
// UTF-8 JSON — the same canonical form persisted to
// lighthouse/traditions/<tradition_id>.json (spec.md §6).
func CanonicalEncode(p TraditionPayload) []byte {
	sorted := make([]models.KnowledgeEntry, len(p.Entries))
	copy(sorted, p.Entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EntryID < sorted[j].EntryID })

	// json.Marshal emits struct fields in declared order but sorts map
	// keys lexicographically, so the encoding is decoded into generic
	// maps (numbers kept verbatim) and marshalled again, giving the
	// "canonical JSON, sorted object keys" property spec.md §6 requires
	// without a bespoke encoder.
	b, _ := json.Marshal(sorted)
	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&generic); err == nil {
		b, _ = json.Marshal(generic)
	}
	return b
}

// compress applies the core's one deterministic compressor (gzip, fixed
// parameters) so payload_digest is reproducible across nodes (spec.md
// §4.8).
func compress(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

// Decompress reverses compress, for round-trip verification
// (inscribe(decompress(I.payload)) per spec.md §8).
func Decompress(compressed []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func payloadDigest(compressed []byte) string {
	return canon.HashBytes(compressed)
}
