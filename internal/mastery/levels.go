// Package mastery derives per-skill proficiency levels from exercise attempts.
package mastery

import (
	"encoding/json"
	"slices"

	"github.com/abhisek/paesprep/internal/bloom"
)

// DefaultWindow is the default number of recent attempts per skill used to
// compute its level.
const DefaultWindow = 10

// Attempt is one answered exercise.
type Attempt struct {
	Skill   bloom.Skill
	Correct bool
}

// SkillMastery holds the attempt history summary for a single skill.
type SkillMastery struct {
	Skill         bloom.Skill `json:"skill"`
	TotalAttempts int         `json:"total_attempts"`
	CorrectCount  int         `json:"correct_count"`
	// Recent holds the outcomes of the last Window attempts, oldest first.
	Recent []bool `json:"recent"`
	Window int    `json:"window"`
}

// MarshalJSON adds the derived level and state.
func (sm *SkillMastery) MarshalJSON() ([]byte, error) {
	type plain SkillMastery
	return json.Marshal(struct {
		*plain
		Level float64      `json:"level"`
		State MasteryState `json:"state"`
	}{(*plain)(sm), sm.Level(), sm.State()})
}

// Accuracy returns the all-time accuracy ratio.
func (sm *SkillMastery) Accuracy() float64 {
	return Accuracy(sm.CorrectCount, sm.TotalAttempts)
}

// Level returns the fraction of correct answers in the recent window.
func (sm *SkillMastery) Level() float64 {
	correct := 0
	for _, ok := range sm.Recent {
		if ok {
			correct++
		}
	}
	return Accuracy(correct, len(sm.Recent))
}

// State labels the skill from its attempt count and recent level.
func (sm *SkillMastery) State() MasteryState {
	switch {
	case sm.TotalAttempts == 0:
		return StateNew
	case sm.TotalAttempts >= MinAttemptsForProficiency && sm.Level() > ProficientLevel:
		return StateProficient
	default:
		return StateLearning
	}
}

func (sm *SkillMastery) record(correct bool) {
	sm.TotalAttempts++
	if correct {
		sm.CorrectCount++
	}
	sm.Recent = append(sm.Recent, correct)
	if len(sm.Recent) > sm.Window {
		sm.Recent = sm.Recent[len(sm.Recent)-sm.Window:]
	}
}

// Accuracy returns correct/total, or 0 when total is 0.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return float64(correct) / float64(total)
}

// Build folds attempts, given oldest first, into per-skill mastery. Skills
// without attempts are absent. A window <= 0 uses DefaultWindow.
func Build(attempts []Attempt, window int) map[bloom.Skill]*SkillMastery {
	if window <= 0 {
		window = DefaultWindow
	}
	out := make(map[bloom.Skill]*SkillMastery)
	for _, a := range attempts {
		sm, ok := out[a.Skill]
		if !ok {
			sm = &SkillMastery{Skill: a.Skill, Window: window}
			out[a.Skill] = sm
		}
		sm.record(a.Correct)
	}
	return out
}

// Levels extracts the level of each skill from built mastery.
func Levels(m map[bloom.Skill]*SkillMastery) map[bloom.Skill]float64 {
	out := make(map[bloom.Skill]float64, len(m))
	for s, sm := range m {
		out[s] = sm.Level()
	}
	return out
}

// Summary lists built mastery in catalogue skill order, with unknown skills
// sorted by code at the end.
func Summary(m map[bloom.Skill]*SkillMastery) []*SkillMastery {
	out := make([]*SkillMastery, 0, len(m))
	for _, s := range bloom.AllSkills() {
		if sm, ok := m[s]; ok {
			out = append(out, sm)
		}
	}

	var unknown []bloom.Skill
	for s := range m {
		if !s.Known() {
			unknown = append(unknown, s)
		}
	}
	slices.Sort(unknown)
	for _, s := range unknown {
		out = append(out, m[s])
	}
	return out
}

// Restrict keeps only the entries of the given skills.
func Restrict[V any](m map[bloom.Skill]V, skills []bloom.Skill) map[bloom.Skill]V {
	out := make(map[bloom.Skill]V, len(skills))
	for _, s := range skills {
		if v, ok := m[s]; ok {
			out[s] = v
		}
	}
	return out
}
