package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/daryltucker/prompt-sweep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, "summary.json", cfg.SummaryFile)
	assert.Equal(t, 2, cfg.Attempts)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"schema"}, cfg.Validators)
	assert.Len(t, cfg.Grid, 4)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
}

func TestLoad(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sweep.yaml")
		yaml := `
base_url: http://localhost:8080
output_dir: out
attempts: 3
retry_delay: 500ms
request_timeout: 5s
validators: [schema, adherence]
keep_raw: true
grid:
  - model: openai/gpt-5.2
    temperature: 0.2
    max_output_tokens: 120
  - model: anthropic/claude-opus-4-5
    temperature: 0.8
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
		t.Setenv(APIKeyEnv, "test-key")
		t.Setenv(BaseURLEnv, "")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
		assert.Equal(t, "out", cfg.OutputDir)
		assert.Equal(t, "summary.json", cfg.SummaryFile, "unset fields keep defaults")
		assert.Equal(t, 3, cfg.Attempts)
		assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, []string{"schema", "adherence"}, cfg.Validators)
		assert.True(t, cfg.KeepRaw)
		assert.Equal(t, "test-key", cfg.APIKey)

		require.Len(t, cfg.Grid, 2)
		require.NotNil(t, cfg.Grid[0].MaxOutputTokens)
		assert.Equal(t, 120, *cfg.Grid[0].MaxOutputTokens)
		assert.Nil(t, cfg.Grid[1].MaxOutputTokens)
		assert.Equal(t, 0.8, cfg.Grid[1].Temperature)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("grid: [unterminated"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		APIKeyEnv:  "  secret  ",
		BaseURLEnv: "http://proxy.local",
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "http://proxy.local", cfg.BaseURL)
	assert.NoError(t, cfg.RequireAPIKey())
}

func TestRequireAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(string) string { return "" })

	assert.ErrorIs(t, cfg.RequireAPIKey(), ErrMissingAPIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty grid", func(c *Config) { c.Grid = nil }, "at least one entry"},
		{"empty model", func(c *Config) { c.Grid[0].Model = " " }, "model must not be empty"},
		{"temperature too high", func(c *Config) { c.Grid[1].Temperature = 1.5 }, "outside [0,1]"},
		{"negative temperature", func(c *Config) { c.Grid[1].Temperature = -0.1 }, "outside [0,1]"},
		{"zero max tokens", func(c *Config) { c.Grid[0].MaxOutputTokens = model.IntPtr(0) }, "must be positive"},
		{"zero attempts", func(c *Config) { c.Attempts = 0 }, "attempts"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request_timeout"},
		{"unknown validator", func(c *Config) { c.Validators = []string{"vibes"} }, "unknown validator"},
		{"no validators", func(c *Config) { c.Validators = nil }, "validator"},
		{"empty summary file", func(c *Config) { c.SummaryFile = "" }, "summary_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPreset(t *testing.T) {
	t.Run("max tokens", func(t *testing.T) {
		grid, err := Preset(PresetMaxTokens)
		require.NoError(t, err)
		require.Len(t, grid, 4)
		for _, rc := range grid {
			require.NotNil(t, rc.MaxOutputTokens)
			assert.Equal(t, 0.2, rc.Temperature)
		}
		assert.Equal(t, 120, *grid[0].MaxOutputTokens)
		assert.Equal(t, 800, *grid[1].MaxOutputTokens)
	})

	t.Run("returns a copy", func(t *testing.T) {
		a, err := Preset(PresetMaxTokens)
		require.NoError(t, err)
		*a[0].MaxOutputTokens = 1
		a[0].Model = "changed"

		b, err := Preset(PresetMaxTokens)
		require.NoError(t, err)
		assert.Equal(t, 120, *b[0].MaxOutputTokens)
		assert.Equal(t, "openai/gpt-5.2", b[0].Model)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Preset("nope")
		assert.Error(t, err)
	})

	assert.Equal(t, []string{PresetMaxTokens, PresetTemperature}, PresetNames())
}

func TestLoadDotEnv(t *testing.T) {
	const key = "PROMPT_SWEEP_TEST_VALUE"

	t.Run("explicit file sets unset variables", func(t *testing.T) {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))

		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0644))

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv(key))
	})

	t.Run("does not override existing variables", func(t *testing.T) {
		t.Setenv(key, "from-shell")

		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0644))

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "from-shell", os.Getenv(key))
	})

	t.Run("missing explicit file", func(t *testing.T) {
		err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}
