package coach

import (
	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/mastery"
	"github.com/abhisek/paesprep/internal/recommend"
)

// Plan sources.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// Input is what the coach knows about the learner.
type Input struct {
	Test           bloom.Test
	Recommendation recommend.Recommendation
	Mastery        []*mastery.SkillMastery
}

// Plan is a short, ordered study plan for the next session.
type Plan struct {
	Summary       string `json:"summary"`
	Steps         []Step `json:"steps"`
	Encouragement string `json:"encouragement,omitempty"`
	Source        string `json:"source"`
}

// TotalMinutes sums the planned step durations.
func (p *Plan) TotalMinutes() int {
	total := 0
	for _, s := range p.Steps {
		total += s.Minutes
	}
	return total
}

// Step is one activity on a recommended node.
type Step struct {
	NodeID  string `json:"node_id"`
	Title   string `json:"title,omitempty"`
	Action  string `json:"action"`
	Minutes int    `json:"minutes"`
}
