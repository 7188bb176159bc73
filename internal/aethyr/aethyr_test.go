package aethyr

import "testing"

func TestBuildAethyrsCountAndTexFirst(t *testing.T) {
	aethyrs := BuildAethyrs()
	if len(aethyrs) != 30 {
		t.Fatalf("expected 30 aethyrs, got %d", len(aethyrs))
	}
	if aethyrs[0].Name != "TEX" || aethyrs[0].Tier != 1 {
		t.Fatalf("expected TEX at tier 1, got %+v", aethyrs[0])
	}
	if aethyrs[0].GovernorCount() != 4 {
		t.Fatalf("TEX should hold 4 governors, got %d", aethyrs[0].GovernorCount())
	}
	for _, a := range aethyrs[1:] {
		if a.GovernorCount() != 3 {
			t.Fatalf("non-TEX aethyr %s should hold 3 governors, got %d", a.Name, a.GovernorCount())
		}
	}
}

func TestBuildAethyrsNoDuplicateNames(t *testing.T) {
	aethyrs := BuildAethyrs()
	seen := make(map[string]bool, 30)
	for _, a := range aethyrs {
		if seen[a.Name] {
			t.Fatalf("duplicate aethyr name %q", a.Name)
		}
		seen[a.Name] = true
	}
}

func TestGovernorCountFor(t *testing.T) {
	if GovernorCountFor(1) != 4 {
		t.Fatal("tier 1 should return 4")
	}
	if GovernorCountFor(2) != 3 {
		t.Fatal("tier 2 should return 3")
	}
}
