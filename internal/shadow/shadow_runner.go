package shadow

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enochian/lighthouse/internal/authenticity"
	"github.com/enochian/lighthouse/internal/lighthouse"
	"github.com/enochian/lighthouse/internal/sourcereg"
	"github.com/enochian/lighthouse/pkg/models"
)

// ShadowRunner re-scores a fixed snapshot of already-sealed quests under a
// candidate tradition-multiplier table (the "variant") alongside the
// canonical table (the "baseline"), so a multiplier-table revision can be
// observed over a multi-run window before it ever touches production
// scoring. No variant result is ever written back into a Quest's own
// AuthenticityScore.
type ShadowRunner struct {
	pool         *pgxpool.Pool
	variantLabel string
	ki           *lighthouse.Lighthouse
	sr           *sourcereg.Registry
	multipliers  map[models.Tradition]int64
}

// NewShadowRunner builds a runner comparing models.TraditionMultiplierFixed
// against the supplied candidate table over questlines drawn from ki/sr.
func NewShadowRunner(pool *pgxpool.Pool, variantLabel string, ki *lighthouse.Lighthouse, sr *sourcereg.Registry, candidateMultipliers map[models.Tradition]int64) *ShadowRunner {
	return &ShadowRunner{
		pool:         pool,
		variantLabel: variantLabel,
		ki:           ki,
		sr:           sr,
		multipliers:  candidateMultipliers,
	}
}

// CompareQuestline re-scores every quest in ql under both parameter sets,
// resolving grounding entries back through ki, and returns one
// QuestComparison per quest.
func (r *ShadowRunner) CompareQuestline(ql models.Questline) []QuestComparison {
	out := make([]QuestComparison, 0, len(ql.Quests))
	for _, q := range ql.Quests {
		grounding := make([]models.KnowledgeEntry, 0, len(q.GroundingEntryIDs))
		for _, id := range q.GroundingEntryIDs {
			if e, ok := r.ki.Get(id); ok {
				grounding = append(grounding, e)
			}
		}
		sourceIDs := sourceIDsOfEntries(grounding)
		in := authenticity.Input{
			GroundingEntries: grounding,
			TraditionRefs:    q.TraditionRefs,
			SourceIDs:        sourceIDs,
		}

		baseline, _ := authenticity.ScoreWithMultipliers(in, r.sr, models.TraditionMultiplierFixed)
		variant, _ := authenticity.ScoreWithMultipliers(in, r.sr, r.multipliers)

		out = append(out, QuestComparison{
			QuestID:       q.QuestID,
			GovernorID:    ql.GovernorID,
			BaselineScore: baseline,
			VariantScore:  variant,
			Delta:         variant - baseline,
		})
	}
	return out
}

// Run compares a batch of questlines, logs any comparison whose delta
// exceeds thresholdFixed, persists the summarized DriftReport when a
// database is connected, and returns the report.
func (r *ShadowRunner) Run(ctx context.Context, questlines []models.Questline, thresholdFixed int64) (DriftReport, error) {
	var all []QuestComparison
	for _, ql := range questlines {
		comparisons := r.CompareQuestline(ql)
		for _, c := range comparisons {
			d := c.Delta
			if d < 0 {
				d = -d
			}
			if d > thresholdFixed {
				log.Printf("[shadow] divergence on quest %s (governor %d): baseline=%d variant=%d delta=%d",
					c.QuestID, c.GovernorID, c.BaselineScore, c.VariantScore, c.Delta)
			}
		}
		all = append(all, comparisons...)
	}

	eval := NewEvaluator()
	report := eval.Summarize(r.variantLabel, all, thresholdFixed)

	if r.pool != nil {
		if err := r.persistDriftReport(ctx, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// ensureSchema creates the shadow_drift_reports table if it does not
// already exist. Called lazily by persistDriftReport rather than from the
// engine's shared schema.sql, since shadow comparisons are an offline
// analysis tool rather than a core persistence path.
func (r *ShadowRunner) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS shadow_drift_reports (
			id                   BIGSERIAL PRIMARY KEY,
			variant_label        TEXT NOT NULL,
			total_quests         INT NOT NULL,
			mean_absolute_delta  BIGINT NOT NULL,
			divergence_rate      BIGINT NOT NULL,
			recorded_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

func (r *ShadowRunner) persistDriftReport(ctx context.Context, report DriftReport) error {
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO shadow_drift_reports (variant_label, total_quests, mean_absolute_delta, divergence_rate, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, report.VariantLabel, report.TotalQuests, report.MeanAbsoluteDelta, report.DivergenceRate, time.Now())
	return err
}

func sourceIDsOfEntries(grounding []models.KnowledgeEntry) []string {
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
