package aethyr

import (
	"fmt"
	"sort"

	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/pkg/models"
)

// Map is the constructed, immutable AM+GR pair: the 30-Aethyr list and the
// 91-governor table, plus O(1) lookup indices.
type Map struct {
	aethyrs       [30]models.Aethyr
	governors     [91]models.Governor
	byAethyrID    map[int][]models.Governor
	byGovernorID  map[int]models.Governor
}

// Build constructs the fixed AM+GR pair and validates the sacred
// distribution before returning, refusing to run on violation (spec.md §7:
// DistributionInvariantViolated is fatal at startup).
func Build() (*Map, error) {
	aethyrs := BuildAethyrs()
	governors := BuildGovernors()

	m := &Map{
		aethyrs:      aethyrs,
		governors:    governors,
		byAethyrID:   make(map[int][]models.Governor, 30),
		byGovernorID: make(map[int]models.Governor, 91),
	}
	for _, g := range governors {
		m.byAethyrID[g.AethyrID] = append(m.byAethyrID[g.AethyrID], g)
		m.byGovernorID[g.GovernorID] = g
	}
	for id := range m.byAethyrID {
		sort.Slice(m.byAethyrID[id], func(i, j int) bool {
			return m.byAethyrID[id][i].GovernorID < m.byAethyrID[id][j].GovernorID
		})
	}

	if err := m.ValidateDistribution(); err != nil {
		return nil, err
	}
	return m, nil
}

// Aethyrs returns the ordered 30-Aethyr list.
func (m *Map) Aethyrs() [30]models.Aethyr {
	return m.aethyrs
}

// GovernorsIn returns the fixed governor set for an aethyr_id, ordered by
// governor_id ascending.
func (m *Map) GovernorsIn(aethyrID int) []models.Governor {
	return m.byAethyrID[aethyrID]
}

// Governor returns a governor profile by id.
func (m *Map) Governor(governorID int) (models.Governor, bool) {
	g, ok := m.byGovernorID[governorID]
	return g, ok
}

// AllGovernors returns all 91 governors ordered by governor_id ascending.
func (m *Map) AllGovernors() []models.Governor {
	out := make([]models.Governor, 91)
	for i, g := range m.governors {
		out[i] = g
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GovernorID < out[j].GovernorID })
	return out
}

// ValidateDistribution returns an error listing any aethyr whose count
// deviates from the (4,3x29) pattern, or any missing governor (spec.md
// §4.4).
func (m *Map) ValidateDistribution() error {
	var details []string
	total := 0
	for _, a := range m.aethyrs {
		want := a.GovernorCount()
		got := len(m.byAethyrID[a.AethyrID])
		total += got
		if got != want {
			details = append(details, fmt.Sprintf("aethyr %s (tier %d): expected %d governors, found %d", a.Name, a.Tier, want, got))
		}
	}
	if total != 91 {
		details = append(details, fmt.Sprintf("total governors: expected 91, found %d", total))
	}
	if len(details) > 0 {
		return coreerr.DistributionInvariantViolated(details)
	}
	return nil
}
