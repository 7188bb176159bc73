// Package questgen implements the Quest Generator (QG): for each governor,
// produces a Questline by combining ES-seeded choices, KI retrievals, and
// the external Content Oracle (spec.md §4.6).
package questgen

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/enochian/lighthouse/internal/authenticity"
	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/internal/entropy"
	"github.com/enochian/lighthouse/internal/lighthouse"
	"github.com/enochian/lighthouse/internal/oracle"
	"github.com/enochian/lighthouse/internal/sourcereg"
	"github.com/enochian/lighthouse/pkg/models"
)

// Config parameterizes a single questline generation run.
type Config struct {
	WorkingSetSize    int   // k in KI.weighted_retrieve, default 20
	GroundingSampleSize int // k' in Fisher-Yates sample, default 5
	RefineRetryBudget int   // per-quest "refine" retry budget, default 2
	LowAuthenticityThreshold int64 // fixed-point denom 1e6, default 800_000
	AbortFailureRate  int64 // fixed-point denom 1e6, default 200_000 (20%)
	PartialOK         bool  // keep partial questlines on cancellation
	Beta              int64 // enochian bias, fixed-point denom 1e6, default 600_000
}

// DefaultConfig returns spec.md §4.6's default parameters.
func DefaultConfig() Config {
	return Config{
		WorkingSetSize:           20,
		GroundingSampleSize:      5,
		RefineRetryBudget:        2,
		LowAuthenticityThreshold: 800_000,
		AbortFailureRate:         200_000,
		Beta:                     600_000,
	}
}

// Deps bundles the read-only collaborators QG needs; all are safe to
// share by immutable reference across concurrent governor workers
// (spec.md §5).
type Deps struct {
	KI     *lighthouse.Lighthouse
	SR     *sourcereg.Registry
	Oracle oracle.ContentOracle
}

func blockSeedHex(seed entropy.Seed256) string {
	return hex.EncodeToString(seed[:])
}

// GenerateQuestline implements the per-governor algorithm of spec.md
// §4.6. The per-quest loop is strictly sequential to keep seed chaining
// deterministic; ctx is checked for cancellation only at quest
// boundaries (cooperative cancel).
func GenerateQuestline(ctx context.Context, gov models.Governor, blockSeed entropy.Seed256, cfg Config, deps Deps) (models.Questline, error) {
	seed0 := entropy.Subseed(blockSeed, entropy.GovernorLabel(gov.GovernorID))
	n := entropy.RangeInt(seed0, 75, 125) // RangeInt is inclusive on both ends

	query := lighthouse.Query{
		Domain:   gov.Domain,
		Affinity: gov.Affinity,
		Beta:     lighthouse.Fixed(cfg.Beta),
	}
	workingSet, err := deps.KI.WeightedRetrieve(query, cfg.WorkingSetSize)
	if err != nil {
		return models.Questline{}, err
	}

	quests := make([]models.Quest, 0, n)
	var authSum int64
	enochianRefCount := 0
	totalRefCount := 0
	domainCoverage := make(map[models.Domain]int)
	lighthouseRefSet := make(map[string]bool)
	lowAuthCount := 0
	oraclePermanentCount := 0

	for i := 1; i <= int(n); i++ {
		select {
		case <-ctx.Done():
			if cfg.PartialOK {
				return assembleQuestline(gov.GovernorID, quests, domainCoverage, lighthouseRefSet, models.StateDraft), ctx.Err()
			}
			return models.Questline{}, ctx.Err()
		default:
		}

		seedI := entropy.Subseed(seed0, entropy.QuestIndexLabel(i))
		groundingIdx := entropy.FisherYatesSample(seedI, len(workingSet), cfg.GroundingSampleSize)
		sort.Ints(groundingIdx) // workingSet is in retrieval-rank order
		grounding := make([]models.KnowledgeEntry, len(groundingIdx))
		for j, idx := range groundingIdx {
			grounding[j] = workingSet[idx]
		}

		difficulty := int(entropy.RangeInt(seedI, 3, 8))

		quest, lowAuth, oraclePermanent := generateOneQuest(ctx, gov, i, seedI, blockSeed, grounding, difficulty, cfg, deps)
		if lowAuth {
			lowAuthCount++
		}
		if oraclePermanent {
			oraclePermanentCount++
		}

		quests = append(quests, quest)
		authSum += quest.AuthenticityScore
		domainCoverage[gov.Domain]++
		for _, eid := range quest.GroundingEntryIDs {
			lighthouseRefSet[eid] = true
		}
	}

	failureRate := canon.MulDiv(int64(lowAuthCount+oraclePermanentCount), canon.ScoreDenom, int64(len(quests)))
	state := models.StateSealed
	aborted := false
	if failureRate > cfg.AbortFailureRate {
		state = models.StateAborted
		aborted = true
	}

	ql := assembleQuestline(gov.GovernorID, quests, domainCoverage, lighthouseRefSet, state)
	ql.Aborted = aborted
	if len(quests) > 0 {
		ql.AvgAuthenticity = authSum / int64(len(quests))
	}
	for _, e := range workingSet {
		if lighthouseRefSet[e.EntryID] {
			totalRefCount++
			if e.TraditionID == models.TraditionEnochian {
				enochianRefCount++
			}
		}
	}
	if totalRefCount > 0 {
		ql.EnochianFraction = canon.MulDiv(int64(enochianRefCount), canon.ScoreDenom, int64(totalRefCount))
	}
	return ql, nil
}

func assembleQuestline(governorID int, quests []models.Quest, domainCoverage map[models.Domain]int, refSet map[string]bool, state models.QuestlineState) models.Questline {
	refs := make([]string, 0, len(refSet))
	for id := range refSet {
		refs = append(refs, id)
	}
	sortStrings(refs)
	return models.Questline{
		GovernorID:     governorID,
		Quests:         quests,
		DomainCoverage: domainCoverage,
		LighthouseRefs: refs,
		State:          state,
	}
}

func sortStrings(ss []string) {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j-1] > ss[j]; j-- {
			ss[j-1], ss[j] = ss[j], ss[j-1]
		}
	}
}

// generateOneQuest runs spec.md §4.6 step 4c-4e for a single quest index,
// including the refine-retry-on-low-authenticity loop.
func generateOneQuest(ctx context.Context, gov models.Governor, index int, seedI entropy.Seed256, blockSeed entropy.Seed256, grounding []models.KnowledgeEntry, difficulty int, cfg Config, deps Deps) (models.Quest, bool, bool) {
	retryPolicy := oracle.NewRetryPolicy(deps.Oracle, cfg.RefineRetryBudget)

	govCtx := oracle.GovernorContext{GovernorID: gov.GovernorID, Name: gov.Name, AethyrID: gov.AethyrID, Domain: gov.Domain}
	draft, err := retryPolicy.Author(ctx, govCtx, grounding, difficulty, models.DirectiveCreate, seedI)
	oraclePermanent := false
	if err != nil {
		oraclePermanent = true
		draft = models.QuestDraft{
			Title:         fmt.Sprintf("%s: untitled trial", gov.Name),
			TraditionRefs: []models.Tradition{models.TraditionEnochian},
		}
	}

	sourceIDs := sourceIDsFromGrounding(grounding)
	score, _ := authenticity.Score(authenticity.Input{
		GroundingEntries: grounding,
		TraditionRefs:    draft.TraditionRefs,
		SourceIDs:        sourceIDs,
	}, deps.SR)

	retries := 0
	for score < cfg.LowAuthenticityThreshold && retries < cfg.RefineRetryBudget && !oraclePermanent {
		refined, rerr := retryPolicy.Author(ctx, govCtx, grounding, difficulty, models.DirectiveRefine, seedI)
		retries++
		if rerr != nil {
			oraclePermanent = true
			break
		}
		draft = refined
		score, _ = authenticity.Score(authenticity.Input{
			GroundingEntries: grounding,
			TraditionRefs:    draft.TraditionRefs,
			SourceIDs:        sourceIDs,
		}, deps.SR)
	}
	lowAuth := score < cfg.LowAuthenticityThreshold

	orderedRefs := enochianFirst(draft.TraditionRefs)
	groundingIDs := make([]string, len(grounding))
	for i, e := range grounding {
		groundingIDs[i] = e.EntryID
	}

	questID := canon.NewEncoder().Int64(int64(gov.GovernorID)).Int64(int64(index)).String(blockSeedHex(blockSeed)).Hash()
	contentDigest := canon.HashStrings(draft.Title, draft.Description, draft.WisdomFocus, draft.EnochianInvocation)

	quest := models.Quest{
		QuestID:            questID,
		Title:              draft.Title,
		Objectives:         draft.Objectives,
		WisdomFocus:        draft.WisdomFocus,
		TraditionRefs:      orderedRefs,
		GroundingEntryIDs:  groundingIDs,
		Difficulty:         difficulty,
		EnochianInvocation: draft.EnochianInvocation,
		AuthenticityScore:  score,
		ContentDigest:      contentDigest,
		LowAuthenticity:    lowAuth,
		OraclePermanent:    oraclePermanent,
	}
	return quest, lowAuth, oraclePermanent
}

func sourceIDsFromGrounding(grounding []models.KnowledgeEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range grounding {
		for _, sid := range e.SourceIDs {
			if !seen[sid] {
				seen[sid] = true
				out = append(out, sid)
			}
		}
	}
	return out
}

// enochianFirst reorders refs so `enochian` is first (primacy invariant),
// preserving the relative order of the rest and deduplicating.
func enochianFirst(refs []models.Tradition) []models.Tradition {
	seen := make(map[models.Tradition]bool)
	out := make([]models.Tradition, 0, len(refs)+1)
	out = append(out, models.TraditionEnochian)
	seen[models.TraditionEnochian] = true
	for _, t := range refs {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
