package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/internal/entropy"
	"github.com/enochian/lighthouse/pkg/models"
)

type flakyOracle struct {
	failuresLeft int
	permanent    bool
	calls        int
}

func (f *flakyOracle) Author(_ context.Context, _ GovernorContext, _ []models.KnowledgeEntry, _ int, _ models.OracleDirective) (models.QuestDraft, error) {
	f.calls++
	if f.failuresLeft > 0 {
		f.failuresLeft--
		if f.permanent {
			return models.QuestDraft{}, coreerr.OraclePermanent("q1", errors.New("permanent failure"))
		}
		return models.QuestDraft{}, coreerr.OracleTransient(errors.New("transient failure"))
	}
	return models.QuestDraft{Title: "recovered"}, nil
}

func testSeed() entropy.Seed256 {
	var s entropy.Seed256
	for i := range s {
		s[i] = byte(i)
	}
	return s
}

func TestRetryPolicySucceedsAfterTransientFailures(t *testing.T) {
	inner := &flakyOracle{failuresLeft: 2}
	policy := NewRetryPolicy(inner, 5)
	gov := GovernorContext{GovernorID: 1, Name: "ABRIOND"}
	draft, err := policy.Author(context.Background(), gov, nil, 1, models.DirectiveCreate, testSeed())
	if err != nil {
		t.Fatalf("expected eventual success, got error: %v", err)
	}
	if draft.Title != "recovered" {
		t.Fatalf("expected recovered draft, got %+v", draft)
	}
	if inner.calls < 3 {
		t.Fatalf("expected at least 3 attempts, got %d", inner.calls)
	}
}

func TestRetryPolicyStopsImmediatelyOnPermanentFailure(t *testing.T) {
	inner := &flakyOracle{failuresLeft: 1, permanent: true}
	policy := NewRetryPolicy(inner, 5)
	gov := GovernorContext{GovernorID: 1, Name: "ABRIOND"}
	_, err := policy.Author(context.Background(), gov, nil, 1, models.DirectiveCreate, testSeed())
	if err == nil {
		t.Fatal("expected an error for a permanent oracle failure")
	}
	if inner.calls != 1 {
		t.Fatalf("permanent failure should not be retried, got %d calls", inner.calls)
	}
}

func TestRetryPolicyExhaustsBudgetOnPersistentTransientFailure(t *testing.T) {
	inner := &flakyOracle{failuresLeft: 1000}
	policy := NewRetryPolicy(inner, 2)
	gov := GovernorContext{GovernorID: 1, Name: "ABRIOND"}
	_, err := policy.Author(context.Background(), gov, nil, 1, models.DirectiveCreate, testSeed())
	if err == nil {
		t.Fatal("expected an error once the retry budget is exhausted")
	}
	if coreerr.KindOf(err) != coreerr.KindOraclePermanent {
		t.Fatalf("expected KindOraclePermanent after exhausting retries, got %v", coreerr.KindOf(err))
	}
}
