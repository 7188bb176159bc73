package models

// KnowledgeEntry is one immutable unit of the lighthouse index.
//
// Invariant: EnochianWeight > 0 iff TraditionID == TraditionEnochian or the
// entry carries an Enochian cross-reference; the enochian subset of any
// governor's retrieval pool must be >= 60% (enforced by KI, not here).
type KnowledgeEntry struct {
	EntryID          string           `json:"entryId"`
	TraditionID      Tradition        `json:"traditionId"`
	Name             string           `json:"name"`
	Category         Category         `json:"category"`
	ContentDigest    string           `json:"contentDigest"`
	SourceIDs        []string         `json:"sourceIds"` // set semantics, kept sorted
	DomainRelevance  map[Domain]int64 `json:"domainRelevance"`  // fixed-point, denom 1e6
	TraditionWeight  int64            `json:"traditionWeight"`  // fixed-point, denom 1e6
	EnochianWeight   int64            `json:"enochianWeight"`   // fixed-point, denom 1e6
	AuthenticityScore int64           `json:"authenticityScore"` // fixed-point, denom 1e6
}

// IsEnochian reports whether the entry counts toward the Enochian subset
// used by KI's primacy constraint: native Enochian tradition, or a
// nonzero Enochian cross-reference weight.
func (e KnowledgeEntry) IsEnochian() bool {
	return e.TraditionID == TraditionEnochian || e.EnochianWeight > 0
}
