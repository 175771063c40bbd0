package mastery

// MasteryState is a coarse label for how far a learner is on a skill.
type MasteryState string

const (
	StateNew        MasteryState = "new"
	StateLearning   MasteryState = "learning"
	StateProficient MasteryState = "proficient"
)

// ProficientLevel is the recent-window level above which a skill is
// considered proficient. It matches the recommender's strength threshold.
const ProficientLevel = 0.7

// MinAttemptsForProficiency is the number of attempts needed before a skill
// can be labelled proficient.
const MinAttemptsForProficiency = 5

// DisplayName returns a human-readable label for the state.
func (s MasteryState) DisplayName() string {
	switch s {
	case StateNew:
		return "New"
	case StateLearning:
		return "Learning"
	case StateProficient:
		return "Proficient"
	default:
		return string(s)
	}
}
