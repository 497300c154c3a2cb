/*
PURPOSE:
  Defines the configuration structure and loading logic for Prompt Sweep.
  Adheres to "Config IS Code" philosophy: one struct, built once, passed down.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the grid, prompt, retries, timeouts and output paths.
  - CONCENTRATE_API_KEY must be present before any run executes.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs environment overrides (CONCENTRATE_BASE_URL) and .env files.
  - Grid presets reproduce the sweeps used so far.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3, github.com/joho/godotenv

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config file is not an error (falls back to defaults).
  - ErrMissingAPIKey is returned by RequireAPIKey.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible (2 attempts, 2s delay, 60s timeout).
  - No package-level mutable state; the API key lives on the struct.

USAGE:
  cfg, err := config.Load("prompt_sweep.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go
  - internal/config/presets.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/daryltucker/prompt-sweep/internal/model"
	"github.com/daryltucker/prompt-sweep/internal/scoring"
	"gopkg.in/yaml.v3"
)

const (
	// APIKeyEnv holds the bearer token for the generation endpoint.
	APIKeyEnv = "CONCENTRATE_API_KEY"
	// BaseURLEnv optionally overrides the endpoint base URL.
	BaseURLEnv = "CONCENTRATE_BASE_URL"

	DefaultBaseURL = "https://api.concentrate.ai"
)

// ErrMissingAPIKey is returned when CONCENTRATE_API_KEY is not set.
var ErrMissingAPIKey = errors.New("set " + APIKeyEnv + " environment variable first")

// Config represents the full configuration for Prompt Sweep.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"-"`
	OutputDir   string `yaml:"output_dir"`
	SummaryFile string `yaml:"summary_file"`
	// CSVFile is written next to the summary; empty disables it.
	CSVFile string `yaml:"csv_file"`

	Attempts       int           `yaml:"attempts"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// DefaultMaxOutputTokens is sent when a grid point has no max_output_tokens. 0 omits it.
	DefaultMaxOutputTokens int `yaml:"default_max_output_tokens"`

	Prompt     string            `yaml:"prompt"`
	Grid       []model.RunConfig `yaml:"grid"`
	Validators []string          `yaml:"validators"`
	KeepRaw    bool              `yaml:"keep_raw"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	grid, _ := Preset(PresetTemperature)
	return &Config{
		BaseURL:                DefaultBaseURL,
		OutputDir:              "results",
		SummaryFile:            "summary.json",
		CSVFile:                "summary.csv",
		Attempts:               2,
		RetryDelay:             2 * time.Second,
		RequestTimeout:         60 * time.Second,
		DefaultMaxOutputTokens: 400,
		Prompt:                 DefaultPrompt,
		Grid:                   grid,
		Validators:             []string{"schema"},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range []string{"prompt_sweep.yaml", "sweep.yaml"} {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv copies the API key and an optional base URL override from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.APIKey = strings.TrimSpace(getenv(APIKeyEnv))
	if u := strings.TrimSpace(getenv(BaseURLEnv)); u != "" {
		c.BaseURL = u
	}
}

// RequireAPIKey fails fast when no credential is configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Validate checks the grid and tuning values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base_url must not be empty")
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must not be negative, got %s", c.RetryDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.DefaultMaxOutputTokens < 0 {
		return fmt.Errorf("default_max_output_tokens must not be negative, got %d", c.DefaultMaxOutputTokens)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir must not be empty")
	}
	if strings.TrimSpace(c.SummaryFile) == "" {
		return errors.New("summary_file must not be empty")
	}
	if len(c.Grid) == 0 {
		return errors.New("grid must contain at least one entry")
	}
	for i, rc := range c.Grid {
		if strings.TrimSpace(rc.Model) == "" {
			return fmt.Errorf("grid[%d]: model must not be empty", i)
		}
		if rc.Temperature < 0 || rc.Temperature > 1 {
			return fmt.Errorf("grid[%d]: temperature %g outside [0,1]", i, rc.Temperature)
		}
		if rc.MaxOutputTokens != nil && *rc.MaxOutputTokens <= 0 {
			return fmt.Errorf("grid[%d]: max_output_tokens must be positive, got %d", i, *rc.MaxOutputTokens)
		}
	}
	if len(c.Validators) == 0 {
		return errors.New("at least one validator is required")
	}
	if _, err := scoring.LookupAll(c.Validators); err != nil {
		return err
	}
	return nil
}
