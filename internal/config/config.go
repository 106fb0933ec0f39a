// Package config loads the secrets and optional settings of readme-bot.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/readme-bot/internal/domain"
)

const (
	// GitHubTokenEnv names the variable holding the GitHub access token.
	GitHubTokenEnv = "GITHUB_TOKEN"
	// GeminiAPIKeyEnv names the variable holding the Gemini API key.
	GeminiAPIKeyEnv = "GEMINI_API_KEY"

	defaultModel       = "gemini-2.5-pro"
	defaultListen      = "0.0.0.0:5001"
	defaultAffiliation = "owner"
)

// ErrMissingSecret is returned when a required secret is not set.
var ErrMissingSecret = errors.New("required secret is not set")

// Config is the resolved configuration of a process.
type Config struct {
	GitHubToken  string `yaml:"-"`
	GeminiAPIKey string `yaml:"-"`

	Model       string                `yaml:"model"`
	Listen      string                `yaml:"listen"`
	Affiliation string                `yaml:"affiliation"` // "owner", "collaborator", "organization_member", comma separated
	OutputDir   string                `yaml:"output_dir"`  // where declined interactive READMEs are saved
	Selection   domain.SelectionRules `yaml:"selection"`
}

// Load reads the secrets from the environment (after loading a .env file from
// the working directory, if any) and merges the optional YAML file at path.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		fillDefaults(cfg)
	}

	cfg.GitHubToken = os.Getenv(GitHubTokenEnv)
	cfg.GeminiAPIKey = os.Getenv(GeminiAPIKeyEnv)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Model:       defaultModel,
		Listen:      defaultListen,
		Affiliation: defaultAffiliation,
		OutputDir:   ".",
		Selection:   domain.DefaultSelectionRules(),
	}
}

// fillDefaults restores defaults for keys the file set to empty values.
func fillDefaults(cfg *Config) {
	d := defaults()
	if cfg.Model == "" {
		cfg.Model = d.Model
	}
	if cfg.Listen == "" {
		cfg.Listen = d.Listen
	}
	if cfg.Affiliation == "" {
		cfg.Affiliation = d.Affiliation
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = d.OutputDir
	}
	if cfg.Selection.MaxFileBytes <= 0 {
		cfg.Selection.MaxFileBytes = d.Selection.MaxFileBytes
	}
}

func validate(cfg *Config) error {
	if cfg.GitHubToken == "" {
		return fmt.Errorf("%w: %s", ErrMissingSecret, GitHubTokenEnv)
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: %s", ErrMissingSecret, GeminiAPIKeyEnv)
	}
	return nil
}
