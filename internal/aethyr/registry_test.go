package aethyr

import "testing"

func TestBuildValidatesDistribution(t *testing.T) {
	m, err := Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := m.ValidateDistribution(); err != nil {
		t.Fatalf("ValidateDistribution failed on a freshly built map: %v", err)
	}
}

func TestAllGovernorsOrderedByID(t *testing.T) {
	m, err := Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	all := m.AllGovernors()
	if len(all) != 91 {
		t.Fatalf("expected 91 governors, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].GovernorID >= all[i].GovernorID {
			t.Fatalf("AllGovernors not ordered ascending at index %d", i)
		}
	}
}

func TestGovernorLookup(t *testing.T) {
	m, err := Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	g, ok := m.Governor(1)
	if !ok || g.GovernorID != 1 {
		t.Fatalf("Governor(1) = %+v, %v", g, ok)
	}
	if _, ok := m.Governor(999); ok {
		t.Fatal("Governor(999) should not be found")
	}
}

func TestGovernorsInReturnsAethyrSlice(t *testing.T) {
	m, err := Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	texGovernors := m.GovernorsIn(1)
	if len(texGovernors) != 4 {
		t.Fatalf("TEX should hold 4 governors, got %d", len(texGovernors))
	}
	for i := 1; i < len(texGovernors); i++ {
		if texGovernors[i-1].GovernorID >= texGovernors[i].GovernorID {
			t.Fatal("GovernorsIn should be ordered by governor_id ascending")
		}
	}
}
