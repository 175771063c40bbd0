package bloom

import (
	"fmt"
	"slices"
	"strings"
)

// FallbackTier is assigned to skills missing from the tier table. It is the
// tier of SOLVE_PROBLEMS, the skill the content database falls back to for
// unrecognized codes.
const FallbackTier = TierApply

// skillTiers is the static skill → cognitive tier table.
var skillTiers = map[Skill]Tier{
	SkillTrackLocate:         TierRemember,
	SkillIdentifyTheories:    TierRemember,
	SkillInterpretRelate:     TierUnderstand,
	SkillRepresent:           TierUnderstand,
	SkillTemporalThinking:    TierUnderstand,
	SkillSolveProblems:       TierApply,
	SkillApplyPrinciples:     TierApply,
	SkillProcessAnalyze:      TierAnalyze,
	SkillSourceAnalysis:      TierAnalyze,
	SkillMulticausalAnalysis: TierAnalyze,
	SkillEvaluateReflect:     TierEvaluate,
	SkillArgueCommunicate:    TierEvaluate,
	SkillScientificArgument:  TierEvaluate,
	SkillCriticalThinking:    TierEvaluate,
	SkillModel:               TierCreate,
	SkillReflection:          TierCreate,
}

// TierOf returns the tier a skill maps to and whether the skill is mapped.
func TierOf(s Skill) (Tier, bool) {
	t, ok := skillTiers[s]
	return t, ok
}

// TierFor returns the tier a skill maps to, or FallbackTier if it is unmapped.
func TierFor(s Skill) Tier {
	if t, ok := skillTiers[s]; ok {
		return t
	}
	return FallbackTier
}

// SkillsInTier returns the mapped skills of a tier in catalogue order.
func SkillsInTier(t Tier) []Skill {
	var out []Skill
	for _, s := range AllSkills() {
		if skillTiers[s] == t {
			out = append(out, s)
		}
	}
	return out
}

// TiersForTest returns, in ascending order, the tiers reached by the skills
// a test assesses. An unknown test has no tiers.
func TiersForTest(test Test) []Tier {
	assessed := SkillsForTest(test)
	var out []Tier
	for _, t := range AllTiers() {
		for _, s := range SkillsInTier(t) {
			if slices.Contains(assessed, s) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Validate checks that the tier table covers every skill, references only
// known tiers, and leaves no tier without skills.
func Validate() error {
	return validateMapping(AllSkills(), skillTiers)
}

func validateMapping(skills []Skill, table map[Skill]Tier) error {
	var errs []string

	seen := make(map[Skill]bool, len(skills))
	for _, s := range skills {
		if seen[s] {
			errs = append(errs, fmt.Sprintf("duplicate skill: %q", s))
		}
		seen[s] = true

		t, ok := table[s]
		if !ok {
			errs = append(errs, fmt.Sprintf("skill %q has no cognitive tier", s))
			continue
		}
		if t.Index() < 0 {
			errs = append(errs, fmt.Sprintf("skill %q maps to unknown tier %q", s, t))
		}
	}

	for s := range table {
		if !seen[s] {
			errs = append(errs, fmt.Sprintf("tier table references unlisted skill %q", s))
		}
	}

	covered := make(map[Tier]bool, NumTiers)
	for _, t := range table {
		covered[t] = true
	}
	for _, t := range AllTiers() {
		if !covered[t] {
			errs = append(errs, fmt.Sprintf("tier %q has no skills", t))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill tier table validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
