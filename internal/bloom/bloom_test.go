package bloom

import (
	"slices"
	"strings"
	"testing"
)

func TestValidate_RealTable(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("tier table should be valid: %v", err)
	}
}

func TestAllTiers_Order(t *testing.T) {
	want := []Tier{TierRemember, TierUnderstand, TierApply, TierAnalyze, TierEvaluate, TierCreate}
	got := AllTiers()
	if len(got) != NumTiers {
		t.Fatalf("got %d tiers, want %d", len(got), NumTiers)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tier[%d] = %q, want %q", i, got[i], want[i])
		}
		if got[i].Index() != i {
			t.Errorf("%q.Index() = %d, want %d", got[i], got[i].Index(), i)
		}
	}
}

func TestTierIndex_Unknown(t *testing.T) {
	if idx := Tier("synthesize").Index(); idx != -1 {
		t.Errorf("Index() = %d, want -1", idx)
	}
}

func TestTierFor_Known(t *testing.T) {
	tests := []struct {
		skill Skill
		want  Tier
	}{
		{SkillTrackLocate, TierRemember},
		{SkillInterpretRelate, TierUnderstand},
		{SkillSolveProblems, TierApply},
		{SkillSourceAnalysis, TierAnalyze},
		{SkillCriticalThinking, TierEvaluate},
		{SkillModel, TierCreate},
	}
	for _, tt := range tests {
		if got := TierFor(tt.skill); got != tt.want {
			t.Errorf("TierFor(%q) = %q, want %q", tt.skill, got, tt.want)
		}
	}
}

func TestTierFor_UnknownFallsBack(t *testing.T) {
	if _, ok := TierOf("DANCE"); ok {
		t.Fatal("expected DANCE to be unmapped")
	}
	if got := TierFor("DANCE"); got != FallbackTier {
		t.Errorf("TierFor(DANCE) = %q, want %q", got, FallbackTier)
	}
	if FallbackTier != TierFor(SkillSolveProblems) {
		t.Error("fallback tier should match SOLVE_PROBLEMS")
	}
}

func TestEverySkillMapped(t *testing.T) {
	for _, s := range AllSkills() {
		if _, ok := TierOf(s); !ok {
			t.Errorf("skill %q is unmapped", s)
		}
		if !s.Known() {
			t.Errorf("skill %q should be known", s)
		}
	}
}

func TestSkillsInTier_CoversAllSkills(t *testing.T) {
	total := 0
	for _, tier := range AllTiers() {
		skills := SkillsInTier(tier)
		if len(skills) == 0 {
			t.Errorf("tier %q has no skills", tier)
		}
		total += len(skills)
	}
	if total != len(AllSkills()) {
		t.Errorf("tiers cover %d skills, want %d", total, len(AllSkills()))
	}
}

func TestTiersForTest(t *testing.T) {
	tests := []struct {
		test Test
		want []Tier
	}{
		{TestReading, []Tier{TierRemember, TierUnderstand, TierEvaluate}},
		{TestMath1, []Tier{TierUnderstand, TierApply, TierEvaluate, TierCreate}},
		{TestMath2, []Tier{TierUnderstand, TierApply, TierEvaluate, TierCreate}},
		{TestScience, []Tier{TierRemember, TierApply, TierAnalyze, TierEvaluate}},
		{TestHistory, []Tier{TierUnderstand, TierAnalyze, TierEvaluate, TierCreate}},
		{"QUIMICA", nil},
	}
	for _, tt := range tests {
		if got := TiersForTest(tt.test); !slices.Equal(got, tt.want) {
			t.Errorf("TiersForTest(%s) = %v, want %v", tt.test, got, tt.want)
		}
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"remember", TierRemember},
		{"Analizar", TierAnalyze},
		{"  crear ", TierCreate},
		{"EVALUATE", TierEvaluate},
	}
	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if err != nil {
			t.Errorf("ParseTier(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTier("memorize"); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestParseSkill(t *testing.T) {
	got, err := ParseSkill(" solve_problems")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != SkillSolveProblems {
		t.Errorf("got %q, want SOLVE_PROBLEMS", got)
	}

	if _, err := ParseSkill("JUGGLING"); err == nil {
		t.Error("expected error for unknown skill")
	}
}

func TestParseTest(t *testing.T) {
	got, err := ParseTest("ciencias")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != TestScience {
		t.Errorf("got %q, want CIENCIAS", got)
	}
	if _, err := ParseTest("FISICA"); err == nil {
		t.Error("expected error for unknown test")
	}
}

func TestSkillsForTest_PartitionsSkills(t *testing.T) {
	seen := make(map[Skill]bool)
	for _, test := range []Test{TestReading, TestMath1, TestScience, TestHistory} {
		for _, s := range SkillsForTest(test) {
			if seen[s] {
				t.Errorf("skill %q assigned to more than one test", s)
			}
			seen[s] = true
		}
	}
	if len(seen) != len(AllSkills()) {
		t.Errorf("tests cover %d skills, want %d", len(seen), len(AllSkills()))
	}
	if SkillsForTest("UNKNOWN") != nil {
		t.Error("expected nil skills for unknown test")
	}
}

func TestValidateMapping_ReportsProblems(t *testing.T) {
	table := map[Skill]Tier{
		SkillTrackLocate: TierRemember,
		"GHOST":          TierCreate,
		SkillModel:       "synthesize",
	}
	err := validateMapping([]Skill{SkillTrackLocate, SkillModel, SkillReflection}, table)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		`skill "REFLECTION" has no cognitive tier`,
		`unknown tier "synthesize"`,
		`unlisted skill "GHOST"`,
		`tier "understand" has no skills`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestDisplayNames(t *testing.T) {
	if TierAnalyze.DisplayName() != "Analyze" {
		t.Errorf("DisplayName = %q", TierAnalyze.DisplayName())
	}
	if TierUnderstand.SpanishName() != "comprender" {
		t.Errorf("SpanishName = %q", TierUnderstand.SpanishName())
	}
	if SkillTrackLocate.DisplayName() != "Rastrear y Localizar" {
		t.Errorf("skill DisplayName = %q", SkillTrackLocate.DisplayName())
	}
	if Skill("X").DisplayName() != "X" {
		t.Error("unknown skill should display its code")
	}
}
