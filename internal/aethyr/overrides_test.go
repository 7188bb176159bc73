package aethyr

import (
	"testing"

	"github.com/enochian/lighthouse/pkg/models"
)

func TestBuildWithOverridesAppliesDomainAndAffinity(t *testing.T) {
	base, err := Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	target := base.AllGovernors()[0]

	overrides := map[string]GovernorProfile{
		normalizeName(target.Name): {
			Name:     target.Name,
			Domain:   models.DomainDestruction,
			Affinity: map[models.Tradition]int64{models.TraditionEnochian: 1_000_000},
		},
	}
	m, err := BuildWithOverrides(overrides)
	if err != nil {
		t.Fatalf("BuildWithOverrides failed: %v", err)
	}
	got, ok := m.Governor(target.GovernorID)
	if !ok {
		t.Fatalf("governor %d not found after override", target.GovernorID)
	}
	if got.Domain != models.DomainDestruction {
		t.Fatalf("override domain not applied: got %v", got.Domain)
	}
	if got.Affinity[models.TraditionEnochian] != 1_000_000 {
		t.Fatalf("override affinity not applied: got %d", got.Affinity[models.TraditionEnochian])
	}
}

func TestBuildWithOverridesPreservesAethyrAssignment(t *testing.T) {
	base, err := Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	target := base.AllGovernors()[0]

	overrides := map[string]GovernorProfile{
		normalizeName(target.Name): {Domain: models.DomainDestruction},
	}
	m, err := BuildWithOverrides(overrides)
	if err != nil {
		t.Fatalf("BuildWithOverrides failed: %v", err)
	}
	got, _ := m.Governor(target.GovernorID)
	if got.AethyrID != target.AethyrID {
		t.Fatalf("aethyr_id must never change under override, got %d want %d", got.AethyrID, target.AethyrID)
	}
}

func TestBuildWithOverridesUnknownGovernorIgnored(t *testing.T) {
	overrides := map[string]GovernorProfile{
		"not-a-real-governor": {Domain: models.DomainHealing},
	}
	m, err := BuildWithOverrides(overrides)
	if err != nil {
		t.Fatalf("BuildWithOverrides failed: %v", err)
	}
	if err := m.ValidateDistribution(); err != nil {
		t.Fatalf("unknown override key should not break distribution: %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	if normalizeName("ABRIOND") != "abriond" {
		t.Fatalf("normalizeName should lowercase, got %q", normalizeName("ABRIOND"))
	}
}
