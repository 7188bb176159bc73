package lighthouse

import (
	"container/heap"
	"sort"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/pkg/models"
)

// scoredEntry pairs an entry_id with its composite weight for heap/sort use.
type scoredEntry struct {
	entryID string
	weight  int64
}

// minHeap is a bounded min-heap on weight (ties broken by entry_id desc, so
// the *smallest* weight with the *largest* entry_id pops first — keeping
// the lowest-priority candidate under the (w desc, entry_id asc) ordering
// at the top for eviction).
type minHeap []scoredEntry

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].entryID > h[j].entryID
}
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(scoredEntry)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// boundedTopK returns the top n candidates by (weight desc, entry_id asc)
// using a bounded min-heap of capacity n: O(|candidates|·log n).
func boundedTopK(candidates []scoredEntry, n int) []scoredEntry {
	if n <= 0 {
		return nil
	}
	h := &minHeap{}
	heap.Init(h)
	for _, c := range candidates {
		if h.Len() < n {
			heap.Push(h, c)
			continue
		}
		if (*h)[0].Less2(c) {
			continue
		}
		heap.Pop(h)
		heap.Push(h, c)
	}
	out := make([]scoredEntry, h.Len())
	copy(out, *h)
	sort.Slice(out, func(i, j int) bool {
		if out[i].weight != out[j].weight {
			return out[i].weight > out[j].weight
		}
		return out[i].entryID < out[j].entryID
	})
	return out
}

// Less2 reports whether candidate a is strictly higher priority than b
// under (weight desc, entry_id asc) — i.e. whether b would be evicted
// before a. Used only to decide if an incoming candidate
// beats the current minimum.
func (a scoredEntry) Less2(b scoredEntry) bool {
	if a.weight != b.weight {
		return a.weight > b.weight
	}
	return a.entryID < b.entryID
}

// WeightedRetrieve implements spec.md §4.3's weighted_retrieve(query, k):
// candidate filtering, enochian/non-enochian partition, bounded top-k
// selection under the hard enochian-primacy constraint, and a stable
// interleaved result ordered by (weight desc, entry_id asc).
func (l *Lighthouse) WeightedRetrieve(q Query, k int) ([]models.KnowledgeEntry, error) {
	minAuth := DefaultMinAuthenticity
	if q.MinAuthenticity != nil {
		minAuth = *q.MinAuthenticity
	}
	minDomainRel := DefaultMinDomainRelevance
	if q.MinDomainRelevance != nil {
		minDomainRel = *q.MinDomainRelevance
	}
	beta := DefaultEnochianBias
	if q.Beta != nil {
		beta = *q.Beta
	}

	var enochianCandidates, nonEnochianCandidates []scoredEntry
	for entryID, e := range l.arena {
		if e.AuthenticityScore < minAuth {
			continue
		}
		if e.DomainRelevance[q.Domain] < minDomainRel {
			continue
		}
		sc := scoredEntry{entryID: entryID, weight: compositeWeight(e, q)}
		if e.IsEnochian() {
			enochianCandidates = append(enochianCandidates, sc)
		} else {
			nonEnochianCandidates = append(nonEnochianCandidates, sc)
		}
	}

	r := int(canon.CeilDiv(int64(beta)*int64(k), canon.ScoreDenom))
	if r > k {
		r = k
	}
	nonEnochianBudget := k - r

	if len(enochianCandidates) < r {
		return nil, coreerr.InsufficientEnochianPool(
			"not enough enochian candidates to satisfy the required primacy count")
	}
	if len(nonEnochianCandidates) < nonEnochianBudget {
		return nil, coreerr.InsufficientPool(
			"not enough non-enochian candidates to fill the retrieval budget")
	}

	topE := boundedTopK(enochianCandidates, r)
	topN := boundedTopK(nonEnochianCandidates, nonEnochianBudget)

	merged := make([]scoredEntry, 0, len(topE)+len(topN))
	merged = append(merged, topE...)
	merged = append(merged, topN...)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].weight != merged[j].weight {
			return merged[i].weight > merged[j].weight
		}
		return merged[i].entryID < merged[j].entryID
	})

	out := make([]models.KnowledgeEntry, len(merged))
	for i, sc := range merged {
		out[i] = l.arena[sc.entryID]
	}
	return out, nil
}
