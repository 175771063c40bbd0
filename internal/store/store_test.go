package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/recommend"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleNodes() []recommend.LearningNode {
	return []recommend.LearningNode{
		{ID: "mat-02", Code: "MAT-02", Title: "Álgebra", Test: bloom.TestMath1, TargetSkill: bloom.SkillModel, Position: 2, DependsOn: []string{"MAT-01"}},
		{ID: "mat-01", Code: "MAT-01", Title: "Números", Test: bloom.TestMath1, TargetSkill: bloom.SkillSolveProblems, Position: 1, EstimatedMinutes: 45},
		{ID: "cl-01", Code: "CL-01", Title: "Comprensión", Test: bloom.TestReading, TargetSkill: bloom.SkillInterpretRelate, Position: 1},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	// Reopening runs the migration again without error.
	s.Close()
	s2, err := Open(path)
	require.NoError(t, err)
	s2.Close()
}

func TestWithPragmas(t *testing.T) {
	assert.True(t, strings.HasPrefix(withPragmas("a.db"), "a.db?_pragma="))
	assert.True(t, strings.HasPrefix(withPragmas("file:x?mode=memory"), "file:x?mode=memory&_pragma="))
}

func TestTables_FromSchema(t *testing.T) {
	tables, err := Tables()
	require.NoError(t, err)
	require.Len(t, tables, 4)

	byName := make(map[string]int)
	for i, tbl := range tables {
		byName[tbl.Name] = i
	}
	nodes := tables[byName[tableLearningNodes]]
	require.Len(t, nodes.PrimaryKey, 1)
	assert.Equal(t, "id", nodes.PrimaryKey[0].Name)
	assert.False(t, nodes.PrimaryKey[0].Increment, "string id is not auto-increment")

	events := tables[byName[tableLLMEvents]]
	assert.True(t, events.PrimaryKey[0].Increment)

	progress := tables[byName[tableNodeProgress]]
	var unique bool
	for _, idx := range progress.Indexes {
		if idx.Unique && len(idx.Columns) == 2 {
			unique = true
		}
	}
	assert.True(t, unique, "node_progress has a unique (user_id, node_id) index")
}

func TestNodeRepo_UpsertListGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.NodeRepo()
	ctx := t.Context()

	require.NoError(t, repo.Upsert(ctx, sampleNodes()))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"cl-01", "mat-01", "mat-02"}, []string{all[0].ID, all[1].ID, all[2].ID})

	math, err := repo.List(ctx, bloom.TestMath1)
	require.NoError(t, err)
	require.Len(t, math, 2)
	assert.Equal(t, "mat-01", math[0].ID)
	assert.Equal(t, 45, math[0].EstimatedMinutes)

	n, err := repo.Get(ctx, "mat-02")
	require.NoError(t, err)
	assert.Equal(t, bloom.SkillModel, n.TargetSkill)
	assert.Equal(t, []string{"MAT-01"}, n.DependsOn)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNodeRepo_DependsOnRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()
	repo := s.NodeRepo()

	deps := []string{"HIS-01, parte 1", "HIS-02"}
	require.NoError(t, repo.Upsert(ctx, []recommend.LearningNode{
		{ID: "his-03", Title: "Síntesis", Test: bloom.TestHistory, TargetSkill: bloom.SkillReflection, DependsOn: deps},
		{ID: "his-04", Title: "Sin requisitos", Test: bloom.TestHistory, TargetSkill: bloom.SkillReflection},
	}))

	n, err := repo.Get(ctx, "his-03")
	require.NoError(t, err)
	assert.Equal(t, deps, n.DependsOn)

	n, err = repo.Get(ctx, "his-04")
	require.NoError(t, err)
	assert.Empty(t, n.DependsOn)
}

func TestNodeRepo_UpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.NodeRepo()
	ctx := t.Context()

	require.NoError(t, repo.Upsert(ctx, sampleNodes()))
	updated := sampleNodes()[1]
	updated.Title = "Números reales"
	updated.TargetSkill = bloom.SkillRepresent
	require.NoError(t, repo.Upsert(ctx, []recommend.LearningNode{updated}))

	n, err := repo.Get(ctx, "mat-01")
	require.NoError(t, err)
	assert.Equal(t, "Números reales", n.Title)
	assert.Equal(t, bloom.SkillRepresent, n.TargetSkill)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNodeRepo_GetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.NodeRepo().Get(t.Context(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProgressRepo_SetStatus(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := t.Context()

	require.NoError(t, repo.SetStatus(ctx, "ana", "mat-01", recommend.StatusInProgress))
	require.NoError(t, repo.SetStatus(ctx, "ana", "mat-01", recommend.StatusCompleted))
	require.NoError(t, repo.SetStatus(ctx, "ana", "cl-01", recommend.StatusInProgress))
	require.NoError(t, repo.SetStatus(ctx, "ben", "mat-01", recommend.StatusNotStarted))

	progress, err := repo.ForUser(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, recommend.StatusCompleted, progress["mat-01"].Status)
	assert.Equal(t, recommend.StatusInProgress, progress["cl-01"].Status)

	other, err := repo.ForUser(ctx, "ben")
	require.NoError(t, err)
	assert.Equal(t, recommend.StatusNotStarted, other["mat-01"].Status)

	none, err := repo.ForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAttemptRepo_AppendAndForUser(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := t.Context()

	for i := range 5 {
		rec, err := repo.Append(ctx, AttemptRecord{
			UserID:  "ana",
			Skill:   bloom.SkillModel,
			Correct: i%2 == 0,
		})
		require.NoError(t, err)
		assert.NotZero(t, rec.ID)
		assert.False(t, rec.Timestamp.IsZero())
	}
	_, err := repo.Append(ctx, AttemptRecord{UserID: "ben", Skill: bloom.SkillTrackLocate, Correct: true, NodeID: "cl-02", ResponseMs: 1200})
	require.NoError(t, err)

	all, err := repo.ForUser(ctx, "ana", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Sequence, all[i-1].Sequence, "ascending sequence")
	}
	assert.True(t, all[0].Correct)
	assert.False(t, all[1].Correct)

	recent, err := repo.ForUser(ctx, "ana", QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, all[3].Sequence, recent[0].Sequence)
	assert.Equal(t, all[4].Sequence, recent[1].Sequence)

	ben, err := repo.ForUser(ctx, "ben", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, ben, 1)
	assert.Equal(t, "cl-02", ben[0].NodeID)
	assert.Equal(t, 1200, ben[0].ResponseMs)
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	a1, err := s.AttemptRepo().Append(ctx, AttemptRecord{UserID: "ana", Skill: bloom.SkillModel})
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "study-plan", Success: true}))
	a2, err := s.AttemptRepo().Append(ctx, AttemptRecord{UserID: "ana", Skill: bloom.SkillModel})
	require.NoError(t, err)

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Less(t, a1.Sequence, events[0].Sequence)
	assert.Less(t, events[0].Sequence, a2.Sequence)
}

func TestEventRepo_LLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := t.Context()

	data := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "study-plan", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: `{"a":1}`},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "study-plan", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "explain", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
	}
	for _, d := range data {
		require.NoError(t, repo.AppendLLMRequest(ctx, d))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "openai", events[0].Provider, "newest first")
	assert.Equal(t, "boom", events[0].ErrorMessage)

	first, err := repo.GetLLMEvent(ctx, events[1].ID-1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, `{"a":1}`, first.RequestBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "explain", byPurpose[0].Purpose)
	assert.Equal(t, "study-plan", byPurpose[1].Purpose)
	assert.Equal(t, 2, byPurpose[1].Calls)
	assert.Equal(t, 400, byPurpose[1].InputTokens)
	assert.Equal(t, 200, byPurpose[1].OutputTokens)
	assert.Equal(t, int64(300), byPurpose[1].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-sonnet-4-20250514", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.NodeRepo().Upsert(ctx, sampleNodes()))
	require.NoError(t, s.ProgressRepo().SetStatus(ctx, "ana", "mat-01", recommend.StatusCompleted))
	require.NoError(t, s.ProgressRepo().SetStatus(ctx, "ben", "mat-01", recommend.StatusCompleted))
	_, err := s.AttemptRepo().Append(ctx, AttemptRecord{UserID: "ana", Skill: bloom.SkillModel})
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx, "ana"))

	progress, err := s.ProgressRepo().ForUser(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, progress)

	attempts, err := s.AttemptRepo().ForUser(ctx, "ana", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, attempts)

	other, err := s.ProgressRepo().ForUser(ctx, "ben")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	count, err := s.NodeRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("PAESPREP_DB", filepath.Join(dir, "ignored.db"))

	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "paesprep", "paesprep.db"), p)
	assert.DirExists(t, filepath.Join(dir, "paesprep"))
}
