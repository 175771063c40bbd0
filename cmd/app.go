package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/coach"
	"github.com/abhisek/paesprep/internal/config"
	"github.com/abhisek/paesprep/internal/llm"
	"github.com/abhisek/paesprep/internal/logger"
	"github.com/abhisek/paesprep/internal/report"
	"github.com/abhisek/paesprep/internal/store"
	"github.com/abhisek/paesprep/internal/study"
)

// app holds the dependencies shared by commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	study  *study.Service
	user   string
	plain  bool
}

// openApp loads configuration, builds the logger and opens the store.
func openApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("opened store", zap.String("path", dbPath))

	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		st.Close()
		return nil, fmt.Errorf("--user must not be empty")
	}
	plain, _ := cmd.Flags().GetBool("plain")

	repos := study.Repos{
		Nodes:    st.NodeRepo(),
		Progress: st.ProgressRepo(),
		Attempts: st.AttemptRepo(),
	}
	return &app{
		cfg:    cfg,
		logger: log,
		store:  st,
		study:  study.NewService(repos, cfg.Recommend.AttemptWindow, log),
		user:   user,
		plain:  plain,
	}, nil
}

func (a *app) Close() {
	_ = a.logger.Sync()
	a.store.Close()
}

func (a *app) reportOptions() report.Options {
	return report.Options{Plain: a.plain}
}

// coach builds the study coach. Without a configured provider the coach
// only produces fallback plans.
func (a *app) coach(ctx context.Context) *coach.Service {
	if !a.cfg.LLMEnabled() {
		return coach.NewService(nil, coach.DefaultConfig(), a.logger)
	}
	provider, err := llm.NewProvider(ctx, a.cfg.LLM, a.store.EventRepo(), a.logger)
	if err != nil {
		a.logger.Warn("LLM provider not configured, AI features unavailable", zap.Error(err))
		return coach.NewService(nil, coach.DefaultConfig(), a.logger)
	}
	return coach.NewService(provider, coach.DefaultConfig(), a.logger)
}

// testFlag parses the optional --test flag.
func testFlag(cmd *cobra.Command) (bloom.Test, error) {
	v, _ := cmd.Flags().GetString("test")
	if v == "" {
		return "", nil
	}
	return bloom.ParseTest(v)
}
