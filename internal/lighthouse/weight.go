package lighthouse

import (
	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/pkg/models"
)

// Composite weight coefficients, fixed-point (denom 1e6). Constants of the
// core per spec.md §4.3; any deviation is a protocol change.
const (
	alpha1 int64 = 350_000 // authenticity_score
	alpha2 int64 = 300_000 // domain_relevance[D]
	alpha3 int64 = 200_000 // affinity[tradition_id]
	alpha4 int64 = 150_000 // enochian_weight
)

// DefaultMinAuthenticity is the candidate-set floor on e.authenticity_score.
const DefaultMinAuthenticity int64 = 800_000 // 0.80

// DefaultMinDomainRelevance is the candidate-set floor on e.domain_relevance[D].
const DefaultMinDomainRelevance int64 = 100_000 // 0.1

// DefaultEnochianBias (β) is the default enochian-primacy fraction.
const DefaultEnochianBias int64 = 600_000 // 0.6

// Query parameterizes WeightedRetrieve. Beta, MinAuthenticity, and
// MinDomainRelevance are pointers so an explicitly-requested 0 (spec.md §8:
// "β = 0 → no Enochian entries required") is distinguishable from an unset
// field falling back to its Default* constant — a plain int64 zero value
// could never mean "explicitly zero" and "not set" at the same time.
type Query struct {
	Domain             models.Domain
	Affinity           map[models.Tradition]int64 // fixed-point, denom 1e6
	Beta               *int64                     // fixed-point, denom 1e6; enochian bias
	MinAuthenticity    *int64                     // fixed-point, denom 1e6
	MinDomainRelevance *int64                     // fixed-point, denom 1e6
}

// Fixed returns a pointer to a fixed-point int64, for populating Query's
// optional fields with an explicit value (including an explicit zero).
func Fixed(v int64) *int64 {
	return &v
}

// compositeWeight computes w(e) = α1·auth + α2·domain_relevance[D] +
// α3·affinity[tradition] + α4·enochian_weight, all fixed-point (denom 1e6),
// returning a fixed-point result of the same denomination.
func compositeWeight(e models.KnowledgeEntry, q Query) int64 {
	domainRel := e.DomainRelevance[q.Domain]
	affinity := q.Affinity[e.TraditionID]

	var sum int64
	sum += canon.MulFixed(alpha1, e.AuthenticityScore)
	sum += canon.MulFixed(alpha2, domainRel)
	sum += canon.MulFixed(alpha3, affinity)
	sum += canon.MulFixed(alpha4, e.EnochianWeight)
	return sum
}
