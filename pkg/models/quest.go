package models

// QuestDraft is the structured output of the external Content Oracle
// collaborator (§6). The core treats it as opaque data and recomputes
// authenticity locally — the Oracle's own scoring, if any, is ignored.
type QuestDraft struct {
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Objectives        []string    `json:"objectives"` // structured, ordered (§9 Open Question resolved)
	WisdomFocus       string      `json:"wisdomFocus"`
	TraditionRefs     []Tradition `json:"traditionRefs"`
	EnochianInvocation string     `json:"enochianInvocation"`
}

// OracleDirective selects create-vs-refine behavior on the Content Oracle.
type OracleDirective string

const (
	DirectiveCreate OracleDirective = "create"
	DirectiveRefine OracleDirective = "refine"
)

// Quest is one frozen quest record within a Questline.
type Quest struct {
	QuestID            string      `json:"questId"` // deterministic: H(governor_id, index, block_seed)
	Title              string      `json:"title"`
	Objectives         []string    `json:"objectives"`
	WisdomFocus        string      `json:"wisdomFocus"`
	TraditionRefs      []Tradition `json:"traditionRefs"` // tradition_refs[0] == enochian always
	GroundingEntryIDs  []string    `json:"groundingEntryIds"` // ordered by retrieval rank
	Difficulty         int         `json:"difficulty"` // 1..30
	EnochianInvocation string      `json:"enochianInvocation"`
	AuthenticityScore  int64       `json:"authenticityScore"` // fixed-point, denom 1e6
	ContentDigest      string      `json:"contentDigest"`
	LowAuthenticity    bool        `json:"lowAuthenticity,omitempty"`
	OraclePermanent    bool        `json:"oraclePermanent,omitempty"`
}

// Questline is the ordered collection of 75-125 quests produced for one
// governor; owns its Quests exclusively.
type Questline struct {
	GovernorID      int            `json:"governorId"`
	Quests          []Quest        `json:"quests"`
	AvgAuthenticity int64          `json:"avgAuthenticity"` // fixed-point, denom 1e6
	EnochianFraction int64         `json:"enochianFraction"` // fixed-point, denom 1e6, in [600000,1000000]
	DomainCoverage  map[Domain]int `json:"domainCoverage"`
	LighthouseRefs  []string       `json:"lighthouseRefs"` // union of grounding_entry_ids, sorted
	State           QuestlineState `json:"state"`
	Aborted         bool           `json:"aborted,omitempty"`
}

// QuestlineState is the lifecycle state machine of §4 "State machines".
type QuestlineState string

const (
	StateDraft     QuestlineState = "draft"
	StateScoring   QuestlineState = "scoring"
	StateSealed    QuestlineState = "sealed"
	StateInscribed QuestlineState = "inscribed"
	StateAnchored  QuestlineState = "anchored"
	StateAborted   QuestlineState = "aborted"
)
