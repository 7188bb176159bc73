package pipeline

import (
	"encoding/json"

	"github.com/enochian/lighthouse/internal/inscribe"
	"github.com/enochian/lighthouse/pkg/models"
)

// Inscribe implements spec.md §6's
// `inscribe(batches, payload_kind) -> [InscriptionBatch]`. When
// payloadKind is content, it partitions the Knowledge Index by tradition
// and bin-packs it (spec.md §4.8); every tradition present in the KI is
// covered exactly once across the returned batches, except a tradition
// reported as IrreducibleOversizeTradition, which is omitted. When
// payloadKind is proofs, it packs the caller-supplied AuthenticityBatches'
// JSON encoding instead — the sealed proof record stream has no natural
// tradition partition of its own, so each AuthenticityBatch becomes one
// entry keyed by its batch_id and all of them form a single payload
// under the synthetic proofTraditionID tag.
func (c *CoreContext) Inscribe(authBatches []models.AuthenticityBatch, payloadKind models.PayloadKind) ([]models.InscriptionBatch, []error) {
	if payloadKind == models.PayloadKindProofs {
		return c.inscribeProofs(authBatches)
	}
	return c.inscribeContent()
}

func (c *CoreContext) inscribeContent() ([]models.InscriptionBatch, []error) {
	traditions := c.KI.Traditions()
	payloads := make([]inscribe.TraditionPayload, 0, len(traditions))
	for _, t := range traditions {
		ids := c.KI.EntriesInTradition(t)
		entries := make([]models.KnowledgeEntry, 0, len(ids))
		for _, id := range ids {
			if e, ok := c.KI.Get(id); ok {
				entries = append(entries, e)
			}
		}
		payloads = append(payloads, inscribe.TraditionPayload{TraditionID: t, Entries: entries})
	}
	return inscribe.Pack(payloads, models.PayloadKindContent)
}

// proofTraditionID is the synthetic tradition tag a proofs-kind
// InscriptionBatch packs its AuthenticityBatch encodings under; IB's
// bin packer only needs a stable grouping key, not a real tradition.
const proofTraditionID models.Tradition = "authenticity_proofs"

func (c *CoreContext) inscribeProofs(authBatches []models.AuthenticityBatch) ([]models.InscriptionBatch, []error) {
	entries := make([]models.KnowledgeEntry, 0, len(authBatches))
	for _, ab := range authBatches {
		b, err := json.Marshal(ab)
		if err != nil {
			continue
		}
		entries = append(entries, models.KnowledgeEntry{
			EntryID:       ab.BatchID,
			TraditionID:   proofTraditionID,
			Name:          ab.BatchID,
			ContentDigest: string(b),
		})
	}
	payloads := []inscribe.TraditionPayload{{TraditionID: proofTraditionID, Entries: entries}}
	return inscribe.Pack(payloads, models.PayloadKindProofs)
}
