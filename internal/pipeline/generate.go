package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/enochian/lighthouse/internal/entropy"
	"github.com/enochian/lighthouse/internal/questgen"
	"github.com/enochian/lighthouse/pkg/models"
)

// GenerateQuestlines implements spec.md §6's
// `generate_questlines(ctx, block_height) -> ([Questline], RunReport)`.
// It fetches the block's metadata from the configured
// entropy.BlockMetadataProvider, derives the block seed, and fans the
// per-governor work out across the bounded worker pool of §5.
func (c *CoreContext) GenerateQuestlines(ctx context.Context, provider entropy.BlockMetadataProvider, blockHeight int64) ([]models.Questline, models.RunReport, error) {
	meta, err := provider.GetBlock(blockHeight)
	if err != nil {
		return nil, models.RunReport{}, fmt.Errorf("pipeline: fetching block %d metadata: %w", blockHeight, err)
	}
	blockSeed := entropy.SeedFor(meta)

	governors := c.AM.AllGovernors()
	deps := questgen.Deps{KI: c.KI, SR: c.SR, Oracle: c.Params.Oracle}

	questlines, report := questgen.GenerateQuestlines(ctx, governors, blockSeed, c.Params.PoolConfig, deps)
	report.BlockHeight = blockHeight
	report.CreatedAtCounter = c.NextCounter()
	return questlines, report, nil
}

// TraditionsOfQuestlines collects the distinct traditions referenced across
// a set of questlines, ordered with enochian first and the rest
// alphabetically.
func TraditionsOfQuestlines(questlines []models.Questline) []models.Tradition {
	seen := map[models.Tradition]bool{models.TraditionEnochian: true}
	var rest []models.Tradition
	for _, ql := range questlines {
		for _, q := range ql.Quests {
			for _, t := range q.TraditionRefs {
				if !seen[t] {
					seen[t] = true
					rest = append(rest, t)
				}
			}
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	out := make([]models.Tradition, 0, len(rest)+1)
	out = append(out, models.TraditionEnochian)
	out = append(out, rest...)
	return out
}
