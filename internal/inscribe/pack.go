package inscribe

import (
	"sort"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/pkg/models"
)

// TargetUncompressed is the first-fit-decreasing bin target, a safety
// margin under the 1 MiB post-compression cap that assumes gzip will
// shrink typical knowledge-entry JSON by a comfortable factor (spec.md
// §4.8).
const TargetUncompressed = 950_000

type bin struct {
	payloads []TraditionPayload
	size     int
}

// Pack runs first-fit-decreasing bin packing over traditions by
// descending uncompressed canonical size, then seals, compresses, and
// (on overage) splits each bin until every emitted batch satisfies
// models.InscriptionBatchCap. It never silently drops content: a
// tradition that cannot fit even alone is reported via a
// coreerr.IrreducibleOversizeTradition in the returned error slice and
// omitted from the batches, everything else still emits (spec.md §7).
func Pack(payloads []TraditionPayload, kind models.PayloadKind) ([]models.InscriptionBatch, []error) {
	sized := make([]struct {
		p    TraditionPayload
		size int
	}, len(payloads))
	for i, p := range payloads {
		sized[i] = struct {
			p    TraditionPayload
			size int
		}{p, len(CanonicalEncode(p))}
	}
	sort.SliceStable(sized, func(i, j int) bool { return sized[i].size > sized[j].size })

	var bins []*bin
	for _, s := range sized {
		placed := false
		for _, b := range bins {
			if b.size+s.size <= TargetUncompressed {
				b.payloads = append(b.payloads, s.p)
				b.size += s.size
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, &bin{payloads: []TraditionPayload{s.p}, size: s.size})
		}
	}

	var errs []error
	var sealed []sealedBatch
	queue := bins
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		sb, err := seal(b.payloads, kind)
		if err == nil {
			sealed = append(sealed, sb)
			continue
		}

		if len(b.payloads) == 1 {
			errs = append(errs, coreerr.IrreducibleOversizeTradition(string(b.payloads[0].TraditionID)))
			continue
		}

		// Split the single largest tradition in this bin off into its own
		// bin and retry both halves; each split strictly shrinks the
		// tradition count of the remaining bin, so this terminates.
		largestIdx := largestPayloadIndex(b.payloads)
		split := b.payloads[largestIdx]
		rest := make([]TraditionPayload, 0, len(b.payloads)-1)
		rest = append(rest, b.payloads[:largestIdx]...)
		rest = append(rest, b.payloads[largestIdx+1:]...)

		queue = append([]*bin{{payloads: []TraditionPayload{split}}, {payloads: rest}}, queue...)
	}

	batches := make([]models.InscriptionBatch, len(sealed))
	allIDs := make([]string, len(sealed))
	for i, sb := range sealed {
		allIDs[i] = sb.batch.InscriptionID
	}
	for i, sb := range sealed {
		b := sb.batch
		b.SequenceNo = i + 1
		refs := make([]string, 0, len(allIDs)-1)
		for _, id := range allIDs {
			if id != b.InscriptionID {
				refs = append(refs, id)
			}
		}
		b.CrossBatchRefs = refs
		batches[i] = b
	}
	return batches, errs
}

func largestPayloadIndex(payloads []TraditionPayload) int {
	best, bestSize := 0, -1
	for i, p := range payloads {
		size := len(CanonicalEncode(p))
		if size > bestSize {
			best, bestSize = i, size
		}
	}
	return best
}

type sealedBatch struct {
	batch models.InscriptionBatch
}

// seal concatenates a bin's tradition payloads into one canonical
// encoding, compresses it, and returns the assembled batch. It errors
// (without wrapping a coreerr itself — the caller decides irreducibility)
// when the compressed size still exceeds the cap.
func seal(payloads []TraditionPayload, kind models.PayloadKind) (sealedBatch, error) {
	traditions := make([]models.Tradition, len(payloads))
	var uncompressed []byte
	entryCount := 0
	for i, p := range payloads {
		traditions[i] = p.TraditionID
		uncompressed = append(uncompressed, CanonicalEncode(p)...)
		entryCount += len(p.Entries)
	}

	compressed := compress(uncompressed)
	if len(compressed) > models.InscriptionBatchCap {
		return sealedBatch{}, errOversize
	}

	digest := payloadDigest(compressed)
	inscriptionID := canon.HashStrings(string(kind), digest)

	return sealedBatch{batch: models.InscriptionBatch{
		InscriptionID:     inscriptionID,
		PayloadKind:       kind,
		TraditionsInBatch: traditions,
		EntryCount:        entryCount,
		UncompressedSize:  len(uncompressed),
		CompressedSize:    len(compressed),
		PayloadDigest:     digest,
		Payload:           compressed,
		State:             models.BatchVerified,
	}}, nil
}

var errOversize = &oversizeErr{}

type oversizeErr struct{}

func (*oversizeErr) Error() string { return "compressed batch exceeds cap" }
