package economics

import "github.com/enochian/lighthouse/internal/canon"

// DistributeStakingRewards splits fees*0.15 across stakers proportionally
// to stake_amount*authenticity_contribution (spec.md §4.9), returning each
// staker's reward in fixed-point. Stakers with zero weight receive zero;
// remainder from integer division accrues to nobody (left in the pool's
// fee counter by the caller).
func DistributeStakingRewards(fees int64, stakers []StakePositionWeight) map[string]int64 {
	pot := canon.MulFixed(fees, StakingShareFixed)

	var totalWeight int64
	weights := make([]int64, len(stakers))
	for i, s := range stakers {
		w := canon.MulFixed(s.StakeAmount, s.AuthenticityContribution)
		weights[i] = w
		totalWeight += w
	}

	out := make(map[string]int64, len(stakers))
	if totalWeight <= 0 {
		return out
	}
	for i, s := range stakers {
		out[s.StakerID] = canon.MulDiv(pot, weights[i], totalWeight)
	}
	return out
}

// StakePositionWeight is the subset of models.StakePosition needed to
// weight a staking-reward distribution.
type StakePositionWeight struct {
	StakerID                 string
	StakeAmount              int64
	AuthenticityContribution int64
}
