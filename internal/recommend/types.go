package recommend

import (
	"fmt"
	"strings"

	"github.com/abhisek/paesprep/internal/bloom"
)

// LearningNode is a unit of study content targeting one skill.
type LearningNode struct {
	ID          string      `json:"id"`
	Code        string      `json:"code,omitempty"`
	Title       string      `json:"title,omitempty"`
	Test        bloom.Test  `json:"test,omitempty"`
	TargetSkill bloom.Skill `json:"target_skill"`
	Position    int         `json:"position"`

	Description      string   `json:"description,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	EstimatedMinutes int      `json:"estimated_minutes,omitempty"`
	DependsOn        []string `json:"depends_on,omitempty"` // node codes
}

// Tier returns the cognitive tier of the node's target skill, using the
// fallback tier for unmapped skills.
func (n LearningNode) Tier() bloom.Tier {
	return bloom.TierFor(n.TargetSkill)
}

// ProgressStatus is a learner's completion state for a node.
type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

// ParseProgressStatus accepts the three known statuses, case-insensitively.
// Hyphens are accepted in place of underscores.
func ParseProgressStatus(s string) (ProgressStatus, error) {
	norm := ProgressStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch norm {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return norm, nil
	}
	return "", fmt.Errorf("unknown progress status: %q", s)
}

// NodeProgress is the progress record of one node. A node without a record
// is treated as not started.
type NodeProgress struct {
	NodeID string         `json:"node_id"`
	Status ProgressStatus `json:"status"`
}

// TierStrength is the aggregated score of one cognitive tier.
type TierStrength struct {
	Tier       bloom.Tier `json:"tier"`
	Score      float64    `json:"score"`
	IsStrength bool       `json:"is_strength"`
}

// Recommendation is the result of one recommender run.
type Recommendation struct {
	RecommendedNodes   []LearningNode `json:"recommended_nodes"`
	TierStrengths      []TierStrength `json:"tier_strengths"`
	WeakestTier        *bloom.Tier    `json:"weakest_tier"`
	StrongestTier      *bloom.Tier    `json:"strongest_tier"`
	SuggestedFocusText string         `json:"suggested_focus_text"`
}

// HasData reports whether the recommendation was computed from any skill data.
func (r Recommendation) HasData() bool {
	return r.WeakestTier != nil
}
