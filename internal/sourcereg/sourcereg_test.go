package sourcereg

import (
	"testing"

	"github.com/enochian/lighthouse/pkg/models"
)

func TestNewRejectsEmptySourceID(t *testing.T) {
	_, err := New([]models.SourceCitation{{SourceID: ""}})
	if err == nil {
		t.Fatal("expected error for empty source_id")
	}
}

func TestNewRejectsDuplicateSourceID(t *testing.T) {
	c := models.SourceCitation{SourceID: "s1", AuthenticityWeight: 900_000}
	_, err := New([]models.SourceCitation{c, c})
	if err == nil {
		t.Fatal("expected error for duplicate source_id")
	}
}

func TestGet(t *testing.T) {
	r, err := New([]models.SourceCitation{{SourceID: "s1", AuthenticityWeight: 900_000}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c, ok := r.Get("s1")
	if !ok || c.AuthenticityWeight != 900_000 {
		t.Fatalf("Get(s1) = %+v, %v", c, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatal("Get on missing source should report not found")
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}

func TestVerifyCitationListMeanAndUnresolved(t *testing.T) {
	r, err := New([]models.SourceCitation{
		{SourceID: "s1", AuthenticityWeight: 800_000},
		{SourceID: "s2", AuthenticityWeight: 1_000_000},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result := r.VerifyCitationList([]string{"s1", "s2", "missing"})
	if result.MeanAuthenticityWeight != 900_000 {
		t.Fatalf("mean authenticity weight = %d, want 900000", result.MeanAuthenticityWeight)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0] != "missing" {
		t.Fatalf("unresolved = %v, want [missing]", result.Unresolved)
	}
}

func TestVerifyCitationListEmptyMatchesZeroMean(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result := r.VerifyCitationList([]string{"missing"})
	if result.MeanAuthenticityWeight != 0 {
		t.Fatalf("expected zero mean with no matches, got %d", result.MeanAuthenticityWeight)
	}
	if len(result.Unresolved) != 1 {
		t.Fatalf("expected one unresolved id, got %v", result.Unresolved)
	}
}
