package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/paesprep/internal/llm"
	"github.com/abhisek/paesprep/internal/mastery"
)

// ErrMissingAPIKey is returned when the selected LLM provider has no key.
var ErrMissingAPIKey = llm.ErrMissingAPIKey

const envPrefix = "PAESPREP"

// Config is the application configuration.
type Config struct {
	Env       string     `mapstructure:"env"`       // local, dev, production
	LogLevel  string     `mapstructure:"log_level"` // zap level name
	DBPath    string     `mapstructure:"db_path"`   // empty means the XDG default
	LLM       llm.Config `mapstructure:"llm"`
	Recommend Recommend  `mapstructure:"recommend"`
}

// Recommend tunes how learner history feeds the recommender.
type Recommend struct {
	// AttemptWindow is how many recent attempts per skill count
	// towards its mastery level.
	AttemptWindow int `mapstructure:"attempt_window"`
}

// Load reads configuration from, in increasing priority: built-in
// defaults, the YAML file, and PAESPREP_* environment variables (a .env
// file in the working directory is loaded first). When no LLM provider
// is configured the vendors' own key variables are checked.
//
// An explicit path must exist; without one, paesprep.yaml is looked up
// in the working directory and the user config dir and may be absent.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("paesprep")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "paesprep"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// No default so that an unset provider can be told apart.
	_ = v.BindEnv("llm.provider")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llm.ProviderMock
		if found, ok := llm.DiscoverConfig(); ok {
			cfg.LLM.Provider = found.Provider
			adoptKey(&cfg.LLM, found)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	if c.Recommend.AttemptWindow <= 0 {
		return fmt.Errorf("recommend.attempt_window must be positive, got %d", c.Recommend.AttemptWindow)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm config: %w", err)
	}
	return nil
}

// LLMEnabled reports whether a real provider is configured.
func (c *Config) LLMEnabled() bool {
	return c.LLM.Provider != llm.ProviderMock
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_path", "")
	v.SetDefault("recommend.attempt_window", mastery.DefaultWindow)

	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	models := map[string]string{
		llm.ProviderAnthropic:  d.Anthropic.Model,
		llm.ProviderOpenAI:     d.OpenAI.Model,
		llm.ProviderGemini:     d.Gemini.Model,
		llm.ProviderOpenRouter: d.OpenRouter.Model,
	}
	for provider, model := range models {
		v.SetDefault("llm."+provider+".api_key", "")
		v.SetDefault("llm."+provider+".model", model)
	}
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.openrouter.base_url", "")
}

// adoptKey copies the discovered provider key without touching models
// or base URLs set in the file.
func adoptKey(dst *llm.Config, found llm.Config) {
	switch found.Provider {
	case llm.ProviderAnthropic:
		dst.Anthropic.APIKey = found.Anthropic.APIKey
	case llm.ProviderOpenAI:
		dst.OpenAI.APIKey = found.OpenAI.APIKey
	case llm.ProviderGemini:
		dst.Gemini.APIKey = found.Gemini.APIKey
	case llm.ProviderOpenRouter:
		dst.OpenRouter.APIKey = found.OpenRouter.APIKey
	}
}
