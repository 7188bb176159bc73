package oracle

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/internal/entropy"
	"github.com/enochian/lighthouse/pkg/models"
)

// RetryPolicy wraps a ContentOracle with exponential backoff on transient
// failures. Retries never alter seed derivation (spec.md §4.6). The
// width of the backoff jitter window is derived per-quest from the
// caller's own seed; the jitter drawn inside that window comes from the
// backoff library's own random source, so retry timing is not
// reproducible across runs.
type RetryPolicy struct {
	inner       ContentOracle
	retryBudget int
}

// NewRetryPolicy wraps inner with the given retry budget (spec.md §4.6
// default retry_budget=2 for refine attempts; the oracle-transport retry
// budget is configured independently by the caller).
func NewRetryPolicy(inner ContentOracle, retryBudget int) *RetryPolicy {
	return &RetryPolicy{inner: inner, retryBudget: retryBudget}
}

// Author retries transient oracle failures with jittered exponential
// backoff, surfacing OraclePermanent once the
// retry budget is exhausted.
func (p *RetryPolicy) Author(ctx context.Context, gov GovernorContext, grounding []models.KnowledgeEntry, difficulty int, directive models.OracleDirective, questSeed entropy.Seed256) (models.QuestDraft, error) {
	var draft models.QuestDraft
	attempt := 0

	bo := deterministicBackoff(questSeed, p.retryBudget)
	operation := func() error {
		var err error
		draft, err = p.inner.Author(ctx, gov, grounding, difficulty, directive)
		if err == nil {
			return nil
		}
		if coreerr.KindOf(err) == coreerr.KindOraclePermanent {
			return backoff.Permanent(err)
		}
		attempt++
		return err
	}

	if err := backoff.Retry(operation, bo); err != nil {
		return models.QuestDraft{}, coreerr.OraclePermanent("", err)
	}
	return draft, nil
}

// deterministicBackoff builds a bounded exponential backoff policy whose
// RandomizationFactor (the width of the jitter window) is derived from
// questSeed. backoff.ExponentialBackOff draws the jitter within that
// window from math/rand, so the retry schedule is not reproducible.
func deterministicBackoff(questSeed entropy.Seed256, maxRetries int) backoff.BackOff {
	jitterSeed := entropy.Subseed(questSeed, []byte("oracle-backoff-jitter"))
	draws := entropy.Sequence(jitterSeed, 1)

	base := backoff.NewExponentialBackOff()
	base.InitialInterval = 50 * time.Millisecond
	base.Multiplier = 2.0
	// RandomizationFactor is derived from the deterministic draw; the
	// per-retry jitter inside that window is not.
	base.RandomizationFactor = float64(draws[0]%500) / 1000.0
	base.MaxElapsedTime = 0 // bounded by WithMaxRetries below, not by elapsed time

	return backoff.WithMaxRetries(base, uint64(maxRetries))
}
