package aethyr

import (
	"sort"

	"github.com/enochian/lighthouse/pkg/models"
)

// GovernorProfile is the on-disk shape of governors/<NAME>.json (spec.md
// §6): a named override of a governor's domain and tradition affinity
// vector, layered on top of the deterministic fallback BuildGovernors
// computes from the canonical name ordering alone.
type GovernorProfile struct {
	Name     string                      `json:"name"`
	Domain   models.Domain               `json:"domain"`
	Affinity map[models.Tradition]int64 `json:"affinity"`
}

// BuildWithOverrides constructs the fixed AM+GR pair exactly as Build
// does, but applies per-governor domain/affinity overrides loaded from
// governors/<NAME>.json files, keyed by canonical (case-insensitive)
// name. Governors absent from overrides keep their deterministic
// fallback profile. The aethyr_id assignment itself is never overridable
// — it is fixed by the canonical name-ordering rule regardless of
// on-disk profile content (spec.md §4.4).
func BuildWithOverrides(overrides map[string]GovernorProfile) (*Map, error) {
	aethyrs := BuildAethyrs()
	governors := BuildGovernors()

	for i, g := range governors {
		if prof, ok := overrides[normalizeName(g.Name)]; ok {
			if prof.Domain != "" {
				governors[i].Domain = prof.Domain
			}
			if len(prof.Affinity) > 0 {
				governors[i].Affinity = prof.Affinity
			}
		}
	}

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

func normalizeName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
