package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/planforge/internal/errors"
)

// Repository keys understood by the reconciler. Every plan item addresses
// one of these logical roles; the mapping to concrete repositories happens
// once at startup and is read-only for the whole run.
const (
	RepoKeyFrontend = "frontend"
	RepoKeyBackend  = "backend"
)

// Environment variable names for required configuration
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGitHubToken  = "GITHUB_TOKEN"
	EnvOrganization = "GITHUB_ORG_NAME"
	EnvFrontendRepo = "FRONTEND_REPO_NAME"
	EnvBackendRepo  = "BACKEND_REPO_NAME"
	EnvBoardName    = "GITHUB_PROJECT_NAME"
)

// DefaultModel is the generative model used when none is configured
const DefaultModel = "gemini-2.0-flash"

// Config is the immutable startup configuration. It is constructed once by
// Load and passed by reference into every component; nothing mutates it
// after validation.
type Config struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GitHubToken  string `yaml:"github_token"`
	Organization string `yaml:"organization"`
	FrontendRepo string `yaml:"frontend_repo"`
	BackendRepo  string `yaml:"backend_repo"`
	BoardName    string `yaml:"board"`
	Model        string `yaml:"model"`
}

// Load builds the configuration from the process environment, optionally
// overlaid by a YAML file. File values take precedence over environment
// values; environment references inside the file are expanded.
func Load(filePath string) (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: os.Getenv(EnvGeminiAPIKey),
		GitHubToken:  os.Getenv(EnvGitHubToken),
		Organization: os.Getenv(EnvOrganization),
		FrontendRepo: os.Getenv(EnvFrontendRepo),
		BackendRepo:  os.Getenv(EnvBackendRepo),
		BoardName:    os.Getenv(EnvBoardName),
		Model:        DefaultModel,
	}

	if filePath != "" {
		if err := cfg.applyFile(filePath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigFile, fmt.Sprintf("read config file: %s", path), err)
	}

	var overlay Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &overlay); err != nil {
		return errors.Wrap(errors.ErrCodeConfigFile, fmt.Sprintf("parse config file: %s", path), err)
	}

	if overlay.GeminiAPIKey != "" {
		c.GeminiAPIKey = overlay.GeminiAPIKey
	}
	if overlay.GitHubToken != "" {
		c.GitHubToken = overlay.GitHubToken
	}
	if overlay.Organization != "" {
		c.Organization = overlay.Organization
	}
	if overlay.FrontendRepo != "" {
		c.FrontendRepo = overlay.FrontendRepo
	}
	if overlay.BackendRepo != "" {
		c.BackendRepo = overlay.BackendRepo
	}
	if overlay.BoardName != "" {
		c.BoardName = overlay.BoardName
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}

	return nil
}

// Validate checks that every required value is present and non-empty
func (c *Config) Validate() error {
	var missing []string

	if c.GeminiAPIKey == "" {
		missing = append(missing, EnvGeminiAPIKey)
	}
	if c.GitHubToken == "" {
		missing = append(missing, EnvGitHubToken)
	}
	if c.Organization == "" {
		missing = append(missing, EnvOrganization)
	}
	if c.FrontendRepo == "" {
		missing = append(missing, EnvFrontendRepo)
	}
	if c.BackendRepo == "" {
		missing = append(missing, EnvBackendRepo)
	}
	if c.BoardName == "" {
		missing = append(missing, EnvBoardName)
	}

	if len(missing) > 0 {
		return errors.NewConfigMissingError(missing)
	}

	return nil
}

// Repositories returns the repository-key to repository-name mapping
func (c *Config) Repositories() map[string]string {
	return map[string]string{
		RepoKeyFrontend: c.FrontendRepo,
		RepoKeyBackend:  c.BackendRepo,
	}
}
