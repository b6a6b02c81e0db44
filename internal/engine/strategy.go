package engine

import (
	"sort"

	"github.com/fashionforward/psp-router/internal/model"
)

// Weights of the balanced score. A decline earns zero revenue no matter how
// cheap the fee was, so approval rate dominates.
const (
	balancedApprovalWeight = 0.7
	balancedCostWeight     = 0.3
)

// OrderProviders returns a fresh slice of providers sorted for the given
// strategy. The input is never mutated; ties keep catalog order (stable
// sort).
func OrderProviders(providers []model.ProviderProfile, strategy model.RoutingStrategy) []model.ProviderProfile {
	ordered := make([]model.ProviderProfile, len(providers))
	copy(ordered, providers)

	switch strategy {
	case model.StrategyApprovals:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].ApprovalRate > ordered[j].ApprovalRate
		})
	case model.StrategyCost:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].EffectiveFee() < ordered[j].EffectiveFee()
		})
	case model.StrategyBalanced:
		maxFee := 0.0
		for i := range ordered {
			if fee := ordered[i].EffectiveFee(); fee > maxFee {
				maxFee = fee
			}
		}
		sort.SliceStable(ordered, func(i, j int) bool {
			return balancedScore(&ordered[i], maxFee) > balancedScore(&ordered[j], maxFee)
		})
	}

	return ordered
}

// balancedScore combines approval rate with a normalized cost bonus. The fee
// is rescaled against the most expensive provider in the candidate set so
// the cost term stays in [0,1].
func balancedScore(p *model.ProviderProfile, maxFee float64) float64 {
	normalizedFee := 0.0
	if maxFee > 0 {
		normalizedFee = p.EffectiveFee() / maxFee
	}
	return p.ApprovalRate*balancedApprovalWeight + (1.0-normalizedFee)*balancedCostWeight
}
