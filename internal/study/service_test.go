package study

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/catalog"
	"github.com/abhisek/paesprep/internal/recommend"
	"github.com/abhisek/paesprep/internal/store"
)

func newTestService(t *testing.T, window int) (*Service, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	repos := Repos{Nodes: s.NodeRepo(), Progress: s.ProgressRepo(), Attempts: s.AttemptRepo()}
	return NewService(repos, window, nil), s
}

// answer records correct then incorrect attempts for a skill.
func answer(t *testing.T, svc *Service, user string, skill bloom.Skill, correct, incorrect int) {
	t.Helper()
	for range correct {
		_, err := svc.RecordAttempt(t.Context(), user, AttemptInput{Skill: skill, Correct: true})
		require.NoError(t, err)
	}
	for range incorrect {
		_, err := svc.RecordAttempt(t.Context(), user, AttemptInput{Skill: skill})
		require.NoError(t, err)
	}
}

func ids(nodes []recommend.LearningNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestRecommend_NoHistory(t *testing.T) {
	svc, st := newTestService(t, 0)

	res, err := svc.Recommend(t.Context(), "ana", "")
	require.NoError(t, err)

	assert.False(t, res.Recommendation.HasData())
	assert.Empty(t, res.Recommendation.RecommendedNodes)
	assert.NotNil(t, res.Recommendation.RecommendedNodes)
	assert.Len(t, res.Recommendation.TierStrengths, 6)
	assert.Empty(t, res.Recommendation.SuggestedFocusText)
	assert.Empty(t, res.Mastery)

	n, err := st.NodeRepo().Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 16, n, "default catalog seeded on first use")
}

func TestRecommend_WeakestTierDrivesNodes(t *testing.T) {
	svc, _ := newTestService(t, 0)
	const user = "ana"

	answer(t, svc, user, bloom.SkillTrackLocate, 4, 0)     // remember 1.0
	answer(t, svc, user, bloom.SkillInterpretRelate, 4, 0) // understand 1.0
	answer(t, svc, user, bloom.SkillSolveProblems, 3, 1)   // apply 0.75
	answer(t, svc, user, bloom.SkillProcessAnalyze, 4, 0)  // analyze 1.0
	answer(t, svc, user, bloom.SkillEvaluateReflect, 2, 2) // evaluate 0.5
	answer(t, svc, user, bloom.SkillModel, 1, 3)           // create 0.25

	res, err := svc.Recommend(t.Context(), user, "")
	require.NoError(t, err)
	rec := res.Recommendation

	require.NotNil(t, rec.WeakestTier)
	require.NotNil(t, rec.StrongestTier)
	assert.Equal(t, bloom.TierCreate, *rec.WeakestTier)
	assert.Equal(t, bloom.TierRemember, *rec.StrongestTier)
	assert.Equal(t, []string{"mat-02", "mat-05", "mat-07"}, ids(rec.RecommendedNodes))
	assert.Equal(t, "Focus on improving your Create skills, and lean on your strength in Remember.", rec.SuggestedFocusText)

	strong := map[bloom.Tier]bool{}
	for _, ts := range rec.TierStrengths {
		strong[ts.Tier] = ts.IsStrength
	}
	assert.Equal(t, map[bloom.Tier]bool{
		bloom.TierRemember:   true,
		bloom.TierUnderstand: true,
		bloom.TierApply:      true,
		bloom.TierAnalyze:    true,
		bloom.TierEvaluate:   false,
		bloom.TierCreate:     false,
	}, strong)

	require.Len(t, res.Mastery, 6)
	assert.Equal(t, bloom.SkillTrackLocate, res.Mastery[0].Skill)

	// Completing a node removes it from the next recommendation.
	require.NoError(t, svc.SetProgress(t.Context(), user, "mat-02", "completed"))
	res, err = svc.Recommend(t.Context(), user, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"mat-05", "mat-07"}, ids(res.Recommendation.RecommendedNodes))

	// Other learners are unaffected.
	other, err := svc.Recommend(t.Context(), "beto", "")
	require.NoError(t, err)
	assert.False(t, other.Recommendation.HasData())
}

func TestRecommend_TestFilter(t *testing.T) {
	svc, _ := newTestService(t, 0)
	const user = "ana"

	answer(t, svc, user, bloom.SkillTrackLocate, 0, 4)
	answer(t, svc, user, bloom.SkillSolveProblems, 2, 2)
	answer(t, svc, user, bloom.SkillModel, 4, 0)

	res, err := svc.Recommend(t.Context(), user, bloom.TestMath1)
	require.NoError(t, err)

	require.Len(t, res.Mastery, 2, "reading attempts are outside the test")
	for _, sm := range res.Mastery {
		assert.NotEqual(t, bloom.SkillTrackLocate, sm.Skill)
	}

	// Math assesses no remember-tier skill, so only the tiers math reaches
	// are ranked. Understand has no attempts and averages zero.
	rec := res.Recommendation
	require.NotNil(t, rec.WeakestTier)
	assert.Equal(t, bloom.TierUnderstand, *rec.WeakestTier)
	assert.Equal(t, bloom.TierCreate, *rec.StrongestTier)
	assert.Equal(t, []string{"mat-03"}, ids(rec.RecommendedNodes))
	assert.Len(t, rec.TierStrengths, 4)
	assert.NotContains(t, rec.SuggestedFocusText, "Remember")
}

func TestRecommend_MathLearner(t *testing.T) {
	t.Run("sparse history", func(t *testing.T) {
		svc, _ := newTestService(t, 0)
		answer(t, svc, "ana", bloom.SkillSolveProblems, 1, 3)
		answer(t, svc, "ana", bloom.SkillModel, 0, 4)

		res, err := svc.Recommend(t.Context(), "ana", bloom.TestMath1)
		require.NoError(t, err)
		rec := res.Recommendation

		require.NotNil(t, rec.WeakestTier)
		assert.NotEqual(t, bloom.TierRemember, *rec.WeakestTier)
		assert.NotEmpty(t, rec.RecommendedNodes)
		for _, n := range rec.RecommendedNodes {
			assert.Equal(t, bloom.TestMath1, n.Test)
			assert.Equal(t, *rec.WeakestTier, n.Tier())
		}
		assert.Equal(t, "Focus on improving your Understand skills, and lean on your strength in Apply.", rec.SuggestedFocusText)
	})

	t.Run("every math skill attempted", func(t *testing.T) {
		svc, _ := newTestService(t, 0)
		answer(t, svc, "ana", bloom.SkillSolveProblems, 3, 1)
		answer(t, svc, "ana", bloom.SkillRepresent, 4, 0)
		answer(t, svc, "ana", bloom.SkillArgueCommunicate, 2, 2)
		answer(t, svc, "ana", bloom.SkillModel, 1, 3)

		res, err := svc.Recommend(t.Context(), "ana", bloom.TestMath1)
		require.NoError(t, err)
		rec := res.Recommendation

		assert.Equal(t, bloom.TierCreate, *rec.WeakestTier)
		assert.Equal(t, bloom.TierUnderstand, *rec.StrongestTier)
		assert.Equal(t, []string{"mat-02", "mat-05", "mat-07"}, ids(rec.RecommendedNodes))
	})
}

func TestRecommend_UsesRecentWindow(t *testing.T) {
	svc, _ := newTestService(t, 2)

	answer(t, svc, "ana", bloom.SkillModel, 0, 3)
	answer(t, svc, "ana", bloom.SkillModel, 2, 0)

	ms, err := svc.Mastery(t.Context(), "ana", "")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, 5, ms[0].TotalAttempts)
	assert.InDelta(t, 1.0, ms[0].Level(), 0.001)
	assert.InDelta(t, 0.4, ms[0].Accuracy(), 0.001)
}

func TestRecordAttempt(t *testing.T) {
	svc, st := newTestService(t, 0)

	t.Run("skill taken from node", func(t *testing.T) {
		rec, err := svc.RecordAttempt(t.Context(), "ana", AttemptInput{NodeID: "cl-04", Correct: true, ResponseMs: 1200})
		require.NoError(t, err)
		assert.Equal(t, bloom.SkillEvaluateReflect, rec.Skill)
		assert.Positive(t, rec.Sequence)

		stored, err := st.AttemptRepo().ForUser(t.Context(), "ana", store.QueryOpts{})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, 1200, stored[0].ResponseMs)
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := svc.RecordAttempt(t.Context(), "ana", AttemptInput{NodeID: "nope"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown skill", func(t *testing.T) {
		_, err := svc.RecordAttempt(t.Context(), "ana", AttemptInput{Skill: "JUGGLING"})
		require.ErrorIs(t, err, ErrUnknownSkill)
	})

	t.Run("no skill at all", func(t *testing.T) {
		_, err := svc.RecordAttempt(t.Context(), "ana", AttemptInput{Correct: true})
		require.ErrorIs(t, err, ErrUnknownSkill)
	})
}

func TestSetProgress(t *testing.T) {
	svc, st := newTestService(t, 0)

	require.NoError(t, svc.SetProgress(t.Context(), "ana", "mat-01", "In-Progress"))
	got, err := st.ProgressRepo().ForUser(t.Context(), "ana")
	require.NoError(t, err)
	assert.Equal(t, recommend.StatusInProgress, got["mat-01"].Status)

	assert.Error(t, svc.SetProgress(t.Context(), "ana", "mat-01", "done"))
	assert.ErrorIs(t, svc.SetProgress(t.Context(), "ana", "missing", "completed"), store.ErrNotFound)
}

func TestImportCatalog(t *testing.T) {
	svc, _ := newTestService(t, 0)

	c, err := catalog.Parse([]byte(`
nodes:
  - id: his-01
    code: HIS-01
    title: Periodización de la historia
    test: HISTORIA
    skill: TEMPORAL_THINKING
  - id: his-02
    code: HIS-02
    title: Análisis de fuentes
    test: historia
    skill: source_analysis
    depends_on: [HIS-01]
  - id: his-03
    code: HIS-03
    title: Taller libre
    test: HISTORIA
    skill: FREE_WRITING
`))
	require.NoError(t, err)

	warnings, err := svc.ImportCatalog(t.Context(), c)
	require.NoError(t, err)
	assert.Len(t, warnings, 1)

	nodes, err := svc.Nodes(t.Context(), bloom.TestHistory)
	require.NoError(t, err)
	assert.Equal(t, []string{"his-01", "his-02", "his-03"}, ids(nodes))

	all, err := svc.Nodes(t.Context(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "an imported catalog is not mixed with the built-in one")

	bad, err := catalog.Parse([]byte("nodes:\n  - id: x\n    title: \"\"\n    test: HISTORIA\n    skill: REFLECTION\n"))
	require.NoError(t, err)
	_, err = svc.ImportCatalog(t.Context(), bad)
	assert.Error(t, err)
}
