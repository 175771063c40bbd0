// Package recommend turns per-skill proficiency scores into a cognitive tier
// profile and a short list of learning nodes to work on next.
//
// Everything here is pure: no I/O, no shared state. Functions may be called
// concurrently.
package recommend

import (
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/paesprep/internal/bloom"
)

const (
	// StrengthThreshold is the score a tier must exceed to count as a strength.
	StrengthThreshold = 0.7

	// MaxRecommendedNodes caps the number of recommended nodes.
	MaxRecommendedNodes = 3
)

// TierAverages maps each cognitive tier to the mean proficiency of its skills.
type TierAverages map[bloom.Tier]float64

// ComputeTierAverages groups skill levels by tier and averages each group.
// The result always has one entry per tier; tiers without skills average 0.
// Values are not clamped.
func ComputeTierAverages(skillLevels map[bloom.Skill]float64) TierAverages {
	return computeTierAverages(skillLevels, nil)
}

func computeTierAverages(skillLevels map[bloom.Skill]float64, onUnmapped func(bloom.Skill)) TierAverages {
	sums := make(map[bloom.Tier]float64, bloom.NumTiers)
	counts := make(map[bloom.Tier]int, bloom.NumTiers)

	// Sum in a fixed order so identical inputs give bit-identical averages.
	skills := make([]bloom.Skill, 0, len(skillLevels))
	for s := range skillLevels {
		skills = append(skills, s)
	}
	slices.Sort(skills)

	for _, s := range skills {
		tier := tierOf(s, onUnmapped)
		sums[tier] += skillLevels[s]
		counts[tier]++
	}

	avg := make(TierAverages, bloom.NumTiers)
	for _, t := range bloom.AllTiers() {
		if counts[t] == 0 {
			avg[t] = 0
			continue
		}
		avg[t] = sums[t] / float64(counts[t])
	}
	return avg
}

// RankTiers returns the tiers with the lowest and highest average. Ties go to
// the tier that comes first in ascending order, so all-zero averages rank
// remember as both weakest and strongest.
func RankTiers(avg TierAverages) (weakest, strongest bloom.Tier) {
	return RankTiersWithin(avg, bloom.AllTiers())
}

// RankTiersWithin ranks only the given tiers, which must be non-empty and in
// ascending order. Ties go to the earlier tier as in RankTiers.
func RankTiersWithin(avg TierAverages, tiers []bloom.Tier) (weakest, strongest bloom.Tier) {
	weakest, strongest = tiers[0], tiers[0]
	for _, t := range tiers[1:] {
		if avg[t] < avg[weakest] {
			weakest = t
		}
		if avg[t] > avg[strongest] {
			strongest = t
		}
	}
	return weakest, strongest
}

// BuildTierStrengths lists every tier in ascending order with its score.
func BuildTierStrengths(avg TierAverages) []TierStrength {
	return buildTierStrengths(avg, bloom.AllTiers())
}

func buildTierStrengths(avg TierAverages, tiers []bloom.Tier) []TierStrength {
	out := make([]TierStrength, 0, len(tiers))
	for _, t := range tiers {
		score := avg[t]
		out = append(out, TierStrength{
			Tier:       t,
			Score:      score,
			IsStrength: score > StrengthThreshold,
		})
	}
	return out
}

// RecommendNodes returns up to MaxRecommendedNodes incomplete nodes that
// target the weakest tier, in input order. A nil tier yields no nodes.
func RecommendNodes(weakest *bloom.Tier, nodes []LearningNode, progress map[string]NodeProgress) []LearningNode {
	return recommendNodes(weakest, nodes, progress, nil)
}

func recommendNodes(weakest *bloom.Tier, nodes []LearningNode, progress map[string]NodeProgress, onUnmapped func(bloom.Skill)) []LearningNode {
	out := make([]LearningNode, 0, MaxRecommendedNodes)
	if weakest == nil {
		return out
	}
	for _, n := range nodes {
		if len(out) == MaxRecommendedNodes {
			break
		}
		if tierOf(n.TargetSkill, onUnmapped) != *weakest {
			continue
		}
		if p, ok := progress[n.ID]; ok && p.Status == StatusCompleted {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Recommend runs the full pipeline: tier averages, ranking, strengths,
// recommended nodes and focus text. Unmapped skills use bloom.FallbackTier.
func Recommend(skillLevels map[bloom.Skill]float64, nodes []LearningNode, progress map[string]NodeProgress) Recommendation {
	return recommend(skillLevels, nodes, progress, bloom.AllTiers(), nil)
}

// RecommendWithin is Recommend limited to a subset of tiers, such as the
// tiers one PAES test assesses. Only those tiers are ranked and listed in
// TierStrengths. A scope without known tiers means every tier.
func RecommendWithin(tiers []bloom.Tier, skillLevels map[bloom.Skill]float64, nodes []LearningNode, progress map[string]NodeProgress) Recommendation {
	return recommend(skillLevels, nodes, progress, scope(tiers), nil)
}

// scope orders tiers ascending, dropping duplicates and unknown tiers.
func scope(tiers []bloom.Tier) []bloom.Tier {
	var out []bloom.Tier
	for _, t := range bloom.AllTiers() {
		if slices.Contains(tiers, t) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return bloom.AllTiers()
	}
	return out
}

func recommend(skillLevels map[bloom.Skill]float64, nodes []LearningNode, progress map[string]NodeProgress, tiers []bloom.Tier, onUnmapped func(bloom.Skill)) Recommendation {
	avg := computeTierAverages(skillLevels, onUnmapped)

	var weakest, strongest *bloom.Tier
	if len(skillLevels) > 0 {
		w, s := RankTiersWithin(avg, tiers)
		weakest, strongest = &w, &s
	}

	return Recommendation{
		RecommendedNodes:   recommendNodes(weakest, nodes, progress, onUnmapped),
		TierStrengths:      buildTierStrengths(avg, tiers),
		WeakestTier:        weakest,
		StrongestTier:      strongest,
		SuggestedFocusText: BuildFocusText(weakest, strongest),
	}
}

func tierOf(s bloom.Skill, onUnmapped func(bloom.Skill)) bloom.Tier {
	if t, ok := bloom.TierOf(s); ok {
		return t
	}
	if onUnmapped != nil {
		onUnmapped(s)
	}
	return bloom.FallbackTier
}

// Recommender wraps Recommend with a logger that reports unmapped skills.
type Recommender struct {
	logger *zap.Logger
}

// NewRecommender creates a Recommender. A nil logger discards warnings.
func NewRecommender(logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{logger: logger}
}

// Recommend computes a recommendation and logs one warning per distinct
// unmapped skill seen in the inputs.
func (r *Recommender) Recommend(skillLevels map[bloom.Skill]float64, nodes []LearningNode, progress map[string]NodeProgress) Recommendation {
	return recommend(skillLevels, nodes, progress, bloom.AllTiers(), r.warnOnce())
}

// RecommendWithin is the logging counterpart of the package-level
// RecommendWithin.
func (r *Recommender) RecommendWithin(tiers []bloom.Tier, skillLevels map[bloom.Skill]float64, nodes []LearningNode, progress map[string]NodeProgress) Recommendation {
	return recommend(skillLevels, nodes, progress, scope(tiers), r.warnOnce())
}

func (r *Recommender) warnOnce() func(bloom.Skill) {
	warned := make(map[bloom.Skill]bool)
	return func(s bloom.Skill) {
		if warned[s] {
			return
		}
		warned[s] = true
		r.logger.Warn("skill has no cognitive tier, using fallback",
			zap.String("skill", string(s)),
			zap.String("fallback_tier", string(bloom.FallbackTier)),
		)
	}
}
