package bloom

import (
	"fmt"
	"strings"
)

// Skill is a PAES competency code as stored in the content database.
type Skill string

const (
	SkillTrackLocate         Skill = "TRACK_LOCATE"
	SkillInterpretRelate     Skill = "INTERPRET_RELATE"
	SkillEvaluateReflect     Skill = "EVALUATE_REFLECT"
	SkillSolveProblems       Skill = "SOLVE_PROBLEMS"
	SkillRepresent           Skill = "REPRESENT"
	SkillModel               Skill = "MODEL"
	SkillArgueCommunicate    Skill = "ARGUE_COMMUNICATE"
	SkillIdentifyTheories    Skill = "IDENTIFY_THEORIES"
	SkillProcessAnalyze      Skill = "PROCESS_ANALYZE"
	SkillApplyPrinciples     Skill = "APPLY_PRINCIPLES"
	SkillScientificArgument  Skill = "SCIENTIFIC_ARGUMENT"
	SkillTemporalThinking    Skill = "TEMPORAL_THINKING"
	SkillSourceAnalysis      Skill = "SOURCE_ANALYSIS"
	SkillMulticausalAnalysis Skill = "MULTICAUSAL_ANALYSIS"
	SkillCriticalThinking    Skill = "CRITICAL_THINKING"
	SkillReflection          Skill = "REFLECTION"
)

// AllSkills returns every assessed skill in catalogue order.
func AllSkills() []Skill {
	return []Skill{
		SkillTrackLocate,
		SkillInterpretRelate,
		SkillEvaluateReflect,
		SkillSolveProblems,
		SkillRepresent,
		SkillModel,
		SkillArgueCommunicate,
		SkillIdentifyTheories,
		SkillProcessAnalyze,
		SkillApplyPrinciples,
		SkillScientificArgument,
		SkillTemporalThinking,
		SkillSourceAnalysis,
		SkillMulticausalAnalysis,
		SkillCriticalThinking,
		SkillReflection,
	}
}

// Known reports whether s is one of the assessed skills.
func (s Skill) Known() bool {
	_, ok := skillTiers[s]
	return ok
}

// DisplayName returns the Spanish label shown to learners.
func (s Skill) DisplayName() string {
	switch s {
	case SkillTrackLocate:
		return "Rastrear y Localizar"
	case SkillInterpretRelate:
		return "Interpretar y Relacionar"
	case SkillEvaluateReflect:
		return "Evaluar y Reflexionar"
	case SkillSolveProblems:
		return "Resolver Problemas"
	case SkillRepresent:
		return "Representar"
	case SkillModel:
		return "Modelar"
	case SkillArgueCommunicate:
		return "Argumentar y Comunicar"
	case SkillIdentifyTheories:
		return "Identificar Teorías"
	case SkillProcessAnalyze:
		return "Procesar y Analizar"
	case SkillApplyPrinciples:
		return "Aplicar Principios"
	case SkillScientificArgument:
		return "Argumentación Científica"
	case SkillTemporalThinking:
		return "Pensamiento Temporal"
	case SkillSourceAnalysis:
		return "Análisis de Fuentes"
	case SkillMulticausalAnalysis:
		return "Análisis Multicausal"
	case SkillCriticalThinking:
		return "Pensamiento Crítico"
	case SkillReflection:
		return "Reflexión"
	default:
		return string(s)
	}
}

// ParseSkill normalizes a skill code. Unknown codes are an error.
func ParseSkill(s string) (Skill, error) {
	code := Skill(strings.ToUpper(strings.TrimSpace(s)))
	if !code.Known() {
		return "", fmt.Errorf("unknown skill: %q", s)
	}
	return code, nil
}

// Test is a PAES exam (prueba).
type Test string

const (
	TestReading Test = "COMPETENCIA_LECTORA"
	TestMath1   Test = "MATEMATICA_1"
	TestMath2   Test = "MATEMATICA_2"
	TestScience Test = "CIENCIAS"
	TestHistory Test = "HISTORIA"
)

// AllTests returns all PAES tests in display order.
func AllTests() []Test {
	return []Test{TestReading, TestMath1, TestMath2, TestScience, TestHistory}
}

// DisplayName returns a human-readable name for a test.
func (t Test) DisplayName() string {
	switch t {
	case TestReading:
		return "Competencia Lectora"
	case TestMath1:
		return "Matemática 1"
	case TestMath2:
		return "Matemática 2"
	case TestScience:
		return "Ciencias"
	case TestHistory:
		return "Historia y Ciencias Sociales"
	default:
		return string(t)
	}
}

// ParseTest normalizes a test code.
func ParseTest(s string) (Test, error) {
	code := Test(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range AllTests() {
		if t == code {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown PAES test: %q", s)
}

// SkillsForTest returns the skills assessed by a test, or nil for an unknown test.
func SkillsForTest(t Test) []Skill {
	switch t {
	case TestReading:
		return []Skill{SkillTrackLocate, SkillInterpretRelate, SkillEvaluateReflect}
	case TestMath1, TestMath2:
		return []Skill{SkillSolveProblems, SkillRepresent, SkillModel, SkillArgueCommunicate}
	case TestScience:
		return []Skill{SkillIdentifyTheories, SkillProcessAnalyze, SkillApplyPrinciples, SkillScientificArgument}
	case TestHistory:
		return []Skill{SkillTemporalThinking, SkillSourceAnalysis, SkillMulticausalAnalysis, SkillCriticalThinking, SkillReflection}
	default:
		return nil
	}
}
