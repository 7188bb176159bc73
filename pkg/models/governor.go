package models

// Governor is one of 91 fixed profiles, each assigned to exactly one
// Aethyr by the canonical name-ordered distribution rule (see
// internal/aethyr).
type Governor struct {
	GovernorID int                  `json:"governorId"` // 1..91
	Name       string               `json:"name"`
	AethyrID   int                  `json:"aethyrId"`
	Domain     Domain               `json:"domain"`
	Affinity   map[Tradition]int64 `json:"affinity"` // fixed-point, denom 1e6
}
