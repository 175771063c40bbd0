// Package coach turns a recommendation into a short study plan, using an
// LLM when one is configured.
package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/paesprep/internal/llm"
	"github.com/abhisek/paesprep/internal/recommend"
)

// DefaultStepMinutes is used for nodes without an estimated duration.
const DefaultStepMinutes = 25

// Config holds plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   800,
		Temperature: 0.4,
	}
}

// Service builds study plans.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a coach. A nil provider always produces the
// deterministic fallback plan.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

type planOutput struct {
	Summary string `json:"summary"`
	Steps   []struct {
		NodeID  string `json:"node_id"`
		Action  string `json:"action"`
		Minutes int    `json:"minutes"`
	} `json:"steps"`
	Encouragement string `json:"encouragement"`
}

// Plan returns a study plan for in. Provider failures fall back to
// FallbackPlan; only a cancelled context is reported as an error.
func (s *Service) Plan(ctx context.Context, in Input) (*Plan, error) {
	if s.provider == nil || len(in.Recommendation.RecommendedNodes) == 0 {
		return FallbackPlan(in.Recommendation), nil
	}

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(in)),
		Schema:      StudyPlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	out, _, err := llm.GenerateInto[planOutput](llm.WithPurpose(ctx, "study-plan"), s.provider, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("study plan: %w", ctx.Err())
		}
		s.logger.Warn("study plan generation failed, using fallback", zap.Error(err))
		return FallbackPlan(in.Recommendation), nil
	}

	nodes := make(map[string]recommend.LearningNode, len(in.Recommendation.RecommendedNodes))
	for _, n := range in.Recommendation.RecommendedNodes {
		nodes[n.ID] = n
	}

	plan := &Plan{
		Summary:       out.Summary,
		Encouragement: out.Encouragement,
		Source:        SourceLLM,
	}
	seen := make(map[string]bool)
	for _, st := range out.Steps {
		n, ok := nodes[st.NodeID]
		if !ok || seen[st.NodeID] {
			s.logger.Debug("dropping plan step", zap.String("node_id", st.NodeID))
			continue
		}
		seen[st.NodeID] = true

		minutes := st.Minutes
		if minutes <= 0 {
			minutes = stepMinutes(n)
		}
		plan.Steps = append(plan.Steps, Step{
			NodeID:  n.ID,
			Title:   n.Title,
			Action:  st.Action,
			Minutes: minutes,
		})
	}

	if len(plan.Steps) == 0 {
		s.logger.Warn("study plan had no usable steps, using fallback steps")
		plan.Steps = FallbackPlan(in.Recommendation).Steps
	}
	if plan.Summary == "" {
		plan.Summary = in.Recommendation.SuggestedFocusText
	}
	return plan, nil
}

// FallbackPlan builds a plan without an LLM: one step per recommended
// node, in recommendation order, with the focus text as summary.
func FallbackPlan(rec recommend.Recommendation) *Plan {
	plan := &Plan{
		Summary: rec.SuggestedFocusText,
		Steps:   make([]Step, 0, len(rec.RecommendedNodes)),
		Source:  SourceFallback,
	}
	if !rec.HasData() {
		plan.Summary = "Todavía no hay ejercicios registrados. Responde algunos ejercicios para recibir una recomendación."
	}

	for _, n := range rec.RecommendedNodes {
		action := "Estudia " + n.Title
		if n.Description != "" {
			action += ": " + n.Description
		}
		plan.Steps = append(plan.Steps, Step{
			NodeID:  n.ID,
			Title:   n.Title,
			Action:  action,
			Minutes: stepMinutes(n),
		})
	}
	return plan
}

func stepMinutes(n recommend.LearningNode) int {
	if n.EstimatedMinutes > 0 {
		return n.EstimatedMinutes
	}
	return DefaultStepMinutes
}
