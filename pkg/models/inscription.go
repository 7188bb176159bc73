package models

// PayloadKind distinguishes what an InscriptionBatch's payload carries:
// the lighthouse's tradition content itself, or the sealed authenticity
// proofs/merkle batches produced for a generation run (spec.md §6
// `inscribe(batches, payload_kind)`).
type PayloadKind string

const (
	PayloadKindContent PayloadKind = "content"
	PayloadKindProofs  PayloadKind = "proofs"
)

// InscriptionBatchCap is the hard post-compression ceiling from spec.md
// §3 ("Bitcoin-L1-style ordinal/inscription channel").
const InscriptionBatchCap = 1_048_576

// InscriptionBatch is one sealed, compressed payload ready for anchoring.
// Owns its compressed payload exclusively; cross_batch_refs are
// lookup-only ids, never ownership.
type InscriptionBatch struct {
	InscriptionID    string      `json:"inscriptionId"`
	PayloadKind      PayloadKind `json:"payloadKind"`
	SequenceNo       int         `json:"sequenceNo"` // 1..total
	TraditionsInBatch []Tradition `json:"traditionsInBatch"`
	EntryCount       int         `json:"entryCount"`
	UncompressedSize int         `json:"uncompressedSize"`
	CompressedSize   int         `json:"compressedSize"`
	PayloadDigest    string      `json:"payloadDigest"`
	CrossBatchRefs   []string    `json:"crossBatchRefs"`
	Payload          []byte      `json:"-"`
	State            BatchState  `json:"state"`
}

// BatchState is the IB lifecycle state machine.
type BatchState string

const (
	BatchAssembling BatchState = "assembling"
	BatchCompressed BatchState = "compressed"
	BatchVerified   BatchState = "verified"
	BatchEmitted    BatchState = "emitted"
)
