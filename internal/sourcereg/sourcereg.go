// Package sourcereg implements the Source Registry (SR): an immutable
// table of primary-source citations indexed by source_id, built once at
// startup and never mutated during a run (spec.md §4.2).
package sourcereg

import (
	"fmt"
	"sort"

	"github.com/enochian/lighthouse/pkg/models"
)

// Registry is the immutable SourceCitation table.
type Registry struct {
	bySourceID map[string]models.SourceCitation
}

// New builds a Registry from a slice of citations. The slice is copied;
// callers may discard their own copy afterward.
func New(citations []models.SourceCitation) (*Registry, error) {
	bySourceID := make(map[string]models.SourceCitation, len(citations))
	for _, c := range citations {
		if c.SourceID == "" {
			return nil, fmt.Errorf("sourcereg: citation with empty source_id")
		}
		if _, dup := bySourceID[c.SourceID]; dup {
			return nil, fmt.Errorf("sourcereg: duplicate source_id %q", c.SourceID)
		}
		bySourceID[c.SourceID] = c
	}
	return &Registry{bySourceID: bySourceID}, nil
}

// Get returns the citation for sourceID and whether it was found.
func (r *Registry) Get(sourceID string) (models.SourceCitation, bool) {
	c, ok := r.bySourceID[sourceID]
	return c, ok
}

// Len reports the number of citations in the registry.
func (r *Registry) Len() int {
	return len(r.bySourceID)
}

// VerificationResult is the outcome of VerifyCitationList.
type VerificationResult struct {
	MeanAuthenticityWeight int64    // fixed-point, denom 1e6, over matched sources only
	Unresolved             []string // source_ids present in the list but absent from the registry
}

// VerifyCitationList returns the mean authenticity_weight (fixed-point,
// denom 1e6) across matched sources and the list of unresolved citations.
func (r *Registry) VerifyCitationList(sourceIDs []string) VerificationResult {
	var sum int64
	matched := 0
	var unresolved []string
	for _, id := range sourceIDs {
		c, ok := r.bySourceID[id]
		if !ok {
			unresolved = append(unresolved, id)
			continue
		}
		sum += c.AuthenticityWeight
		matched++
	}
	sort.Strings(unresolved)
	mean := int64(0)
	if matched > 0 {
		mean = sum / int64(matched)
	}
	return VerificationResult{MeanAuthenticityWeight: mean, Unresolved: unresolved}
}
