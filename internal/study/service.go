// Package study ties the stored catalogue and learner history to the
// recommender.
package study

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/catalog"
	"github.com/abhisek/paesprep/internal/mastery"
	"github.com/abhisek/paesprep/internal/recommend"
	"github.com/abhisek/paesprep/internal/store"
)

// Repos are the stores the service reads and writes.
type Repos struct {
	Nodes    store.NodeRepo
	Progress store.ProgressRepo
	Attempts store.AttemptRepo
}

// Service answers "what should I study next" for one learner at a time.
type Service struct {
	repos       Repos
	recommender *recommend.Recommender
	window      int
	logger      *zap.Logger
}

// NewService creates a study service. A window below one uses
// mastery.DefaultWindow.
func NewService(repos Repos, window int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window < 1 {
		window = mastery.DefaultWindow
	}
	return &Service{
		repos:       repos,
		recommender: recommend.NewRecommender(logger),
		window:      window,
		logger:      logger,
	}
}

// Result is a recommendation together with the mastery it was computed
// from.
type Result struct {
	UserID         string                   `json:"user_id"`
	Test           bloom.Test               `json:"test,omitempty"`
	Recommendation recommend.Recommendation `json:"recommendation"`
	Mastery        []*mastery.SkillMastery  `json:"mastery,omitempty"`
}

// Recommend computes the learner's recommendation. With a test, the
// candidate nodes, the skill levels and the ranked tiers are limited to
// that test.
func (s *Service) Recommend(ctx context.Context, userID string, test bloom.Test) (*Result, error) {
	nodes, err := s.Nodes(ctx, test)
	if err != nil {
		return nil, err
	}

	progress, err := s.repos.Progress.ForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	built, err := s.masteryFor(ctx, userID, test)
	if err != nil {
		return nil, err
	}

	// With a test, only the tiers its skills reach are ranked, so the
	// weakest tier always has candidate nodes in that test.
	rec := s.recommender.RecommendWithin(bloom.TiersForTest(test), mastery.Levels(built), nodes, progress)
	s.logger.Debug("computed recommendation",
		zap.String("user", userID),
		zap.String("test", string(test)),
		zap.Int("skills", len(built)),
		zap.Int("nodes", len(nodes)),
		zap.Int("recommended", len(rec.RecommendedNodes)))

	return &Result{
		UserID:         userID,
		Test:           test,
		Recommendation: rec,
		Mastery:        mastery.Summary(built),
	}, nil
}

// Mastery returns the learner's per-skill mastery in catalogue order.
func (s *Service) Mastery(ctx context.Context, userID string, test bloom.Test) ([]*mastery.SkillMastery, error) {
	built, err := s.masteryFor(ctx, userID, test)
	if err != nil {
		return nil, err
	}
	return mastery.Summary(built), nil
}

func (s *Service) masteryFor(ctx context.Context, userID string, test bloom.Test) (map[bloom.Skill]*mastery.SkillMastery, error) {
	records, err := s.repos.Attempts.ForUser(ctx, userID, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}

	attempts := make([]mastery.Attempt, 0, len(records))
	for _, r := range records {
		attempts = append(attempts, mastery.Attempt{Skill: r.Skill, Correct: r.Correct})
	}

	built := mastery.Build(attempts, s.window)
	if test != "" {
		built = mastery.Restrict(built, bloom.SkillsForTest(test))
	}
	return built, nil
}

// Nodes lists the catalogue, seeding the built-in one into an empty store.
func (s *Service) Nodes(ctx context.Context, test bloom.Test) ([]recommend.LearningNode, error) {
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, err
	}
	nodes, err := s.repos.Nodes.List(ctx, test)
	if err != nil {
		return nil, fmt.Errorf("load nodes: %w", err)
	}
	return nodes, nil
}

func (s *Service) ensureCatalog(ctx context.Context) error {
	n, err := s.repos.Nodes.Count(ctx)
	if err != nil {
		return fmt.Errorf("count nodes: %w", err)
	}
	if n > 0 {
		return nil
	}

	def, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load default catalog: %w", err)
	}
	if err := s.repos.Nodes.Upsert(ctx, def.Nodes); err != nil {
		return fmt.Errorf("seed default catalog: %w", err)
	}
	s.logger.Info("seeded default catalog", zap.Int("nodes", len(def.Nodes)))
	return nil
}

// ImportCatalog validates c and upserts its nodes. Validation warnings
// are returned, and logged, but do not block the import.
func (s *Service) ImportCatalog(ctx context.Context, c *catalog.Catalog) ([]string, error) {
	warnings, err := c.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.logger.Warn("catalog warning", zap.String("detail", w))
	}

	if err := s.repos.Nodes.Upsert(ctx, c.Nodes); err != nil {
		return warnings, fmt.Errorf("import catalog: %w", err)
	}
	return warnings, nil
}

// AttemptInput is one answered exercise.
type AttemptInput struct {
	Skill      bloom.Skill
	NodeID     string
	Correct    bool
	ResponseMs int
}

// ErrUnknownSkill is returned when an attempt names no known skill.
var ErrUnknownSkill = errors.New("unknown skill")

// RecordAttempt stores an exercise attempt. An explicit Skill must be
// one of the assessed skills. When NodeID is set the node must exist, and
// an empty Skill is taken from the node as-is.
func (s *Service) RecordAttempt(ctx context.Context, userID string, in AttemptInput) (*store.AttemptRecord, error) {
	if in.Skill != "" && !in.Skill.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSkill, in.Skill)
	}
	if in.NodeID != "" {
		node, err := s.node(ctx, in.NodeID)
		if err != nil {
			return nil, err
		}
		if in.Skill == "" {
			in.Skill = node.TargetSkill
		}
	}
	if in.Skill == "" {
		return nil, fmt.Errorf("%w: attempt needs a skill or a node", ErrUnknownSkill)
	}

	rec, err := s.repos.Attempts.Append(ctx, store.AttemptRecord{
		UserID:     userID,
		Skill:      in.Skill,
		NodeID:     in.NodeID,
		Correct:    in.Correct,
		ResponseMs: in.ResponseMs,
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}
	return rec, nil
}

// SetProgress records the learner's status for an existing node.
func (s *Service) SetProgress(ctx context.Context, userID, nodeID string, status recommend.ProgressStatus) error {
	status, err := recommend.ParseProgressStatus(string(status))
	if err != nil {
		return err
	}
	if _, err := s.node(ctx, nodeID); err != nil {
		return err
	}
	if err := s.repos.Progress.SetStatus(ctx, userID, nodeID, status); err != nil {
		return fmt.Errorf("set progress: %w", err)
	}
	return nil
}

func (s *Service) node(ctx context.Context, id string) (*recommend.LearningNode, error) {
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, err
	}
	n, err := s.repos.Nodes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup node: %w", err)
	}
	return n, nil
}
