package bloom

import (
	"fmt"
	"strings"
)

// Tier is a cognitive-complexity level of Bloom's taxonomy.
type Tier string

const (
	TierRemember   Tier = "remember"
	TierUnderstand Tier = "understand"
	TierApply      Tier = "apply"
	TierAnalyze    Tier = "analyze"
	TierEvaluate   Tier = "evaluate"
	TierCreate     Tier = "create"
)

// NumTiers is the number of cognitive tiers.
const NumTiers = 6

// AllTiers returns all tiers in ascending cognitive complexity.
func AllTiers() []Tier {
	return []Tier{
		TierRemember,
		TierUnderstand,
		TierApply,
		TierAnalyze,
		TierEvaluate,
		TierCreate,
	}
}

// Index returns the tier's position in ascending order, or -1 for an unknown tier.
func (t Tier) Index() int {
	for i, tt := range AllTiers() {
		if tt == t {
			return i
		}
	}
	return -1
}

// DisplayName returns a human-readable name for a tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierRemember:
		return "Remember"
	case TierUnderstand:
		return "Understand"
	case TierApply:
		return "Apply"
	case TierAnalyze:
		return "Analyze"
	case TierEvaluate:
		return "Evaluate"
	case TierCreate:
		return "Create"
	default:
		return string(t)
	}
}

// SpanishName returns the label used by the PAES content database.
func (t Tier) SpanishName() string {
	switch t {
	case TierRemember:
		return "recordar"
	case TierUnderstand:
		return "comprender"
	case TierApply:
		return "aplicar"
	case TierAnalyze:
		return "analizar"
	case TierEvaluate:
		return "evaluar"
	case TierCreate:
		return "crear"
	default:
		return string(t)
	}
}

// ParseTier accepts either the English or the Spanish tier label.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTiers() {
		if s == string(t) || s == t.SpanishName() {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown cognitive tier: %q", s)
}
