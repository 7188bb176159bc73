// Package lighthouse implements the Knowledge Index (KI): per-entry
// records partitioned by tradition with a domain inverted index, and
// weighted retrieval under a hard enochian-primacy constraint (spec.md
// §4.3 — "the hard center").
package lighthouse

import (
	"fmt"
	"sort"

	"github.com/enochian/lighthouse/pkg/models"
)

// domainRelevanceEntry is one (entry_id, domain_relevance) pair in the
// domain inverted index.
type domainRelevanceEntry struct {
	entryID   string
	relevance int64 // fixed-point, denom 1e6
}

// Lighthouse is the immutable, read-only-after-construction Knowledge
// Index. Entries live in a contiguous arena keyed by entry_id; tradition
// and domain indices hold ids, never owning copies, per spec.md §9's
// arena+index re-architecture of the source's cyclic cross-references.
type Lighthouse struct {
	arena          map[string]models.KnowledgeEntry
	byTradition    map[models.Tradition][]string // sorted by entry_id
	byDomain       map[models.Domain][]domainRelevanceEntry
}

// Build constructs a Lighthouse from a flat slice of entries, validating
// closed-enum tradition_ids and the enochian_weight invariant (spec.md
// §3: enochian_weight > 0 iff tradition_id="enochian" or the entry has an
// enochian cross-reference — checked here as tradition_id="enochian" implies
// enochian_weight>0; a non-enochian entry MAY also carry enochian_weight>0
// to represent a cross-reference, so only the forward implication is
// validated).
func Build(entries []models.KnowledgeEntry) (*Lighthouse, error) {
	arena := make(map[string]models.KnowledgeEntry, len(entries))
	byTradition := make(map[models.Tradition][]string)
	byDomain := make(map[models.Domain][]domainRelevanceEntry)

	for _, e := range entries {
		if !models.IsValidTradition(e.TraditionID) {
			return nil, fmt.Errorf("lighthouse: unknown tradition_id %q on entry %q", e.TraditionID, e.EntryID)
		}
		if e.TraditionID == models.TraditionEnochian && e.EnochianWeight <= 0 {
			return nil, fmt.Errorf("lighthouse: entry %q is enochian but has enochian_weight<=0", e.EntryID)
		}
		if _, dup := arena[e.EntryID]; dup {
			return nil, fmt.Errorf("lighthouse: duplicate entry_id %q", e.EntryID)
		}
		arena[e.EntryID] = e
		byTradition[e.TraditionID] = append(byTradition[e.TraditionID], e.EntryID)
		for domain, relevance := range e.DomainRelevance {
			byDomain[domain] = append(byDomain[domain], domainRelevanceEntry{entryID: e.EntryID, relevance: relevance})
		}
	}

	for t := range byTradition {
		sort.Strings(byTradition[t])
	}
	for d := range byDomain {
		sort.Slice(byDomain[d], func(i, j int) bool {
			return byDomain[d][i].entryID < byDomain[d][j].entryID
		})
	}

	return &Lighthouse{arena: arena, byTradition: byTradition, byDomain: byDomain}, nil
}

// Len returns the total number of indexed entries.
func (l *Lighthouse) Len() int {
	return len(l.arena)
}

// Get returns the entry for entryID.
func (l *Lighthouse) Get(entryID string) (models.KnowledgeEntry, bool) {
	e, ok := l.arena[entryID]
	return e, ok
}

// EntriesInTradition returns the entry ids for a tradition, sorted by
// entry_id ascending.
func (l *Lighthouse) EntriesInTradition(t models.Tradition) []string {
	return l.byTradition[t]
}

// Traditions returns the set of traditions actually represented in the
// index (a subset of the 26-tradition closed enum).
func (l *Lighthouse) Traditions() []models.Tradition {
	out := make([]models.Tradition, 0, len(l.byTradition))
	for t := range l.byTradition {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
