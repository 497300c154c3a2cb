/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the configured sweep.

REQUIREMENTS:
  User-specified:
  - Run the sweep with no arguments using built-in defaults.
  - Fail fast when CONCENTRATE_API_KEY is absent.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config, then validate.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load, validation or summary write fails.
  - Individual failed runs are not errors.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Validate -> Require key -> Engine.Run.

USAGE:
  prompt-sweep run --preset max-tokens -o ./results

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"fmt"
	"os"

	"github.com/daryltucker/prompt-sweep/internal/config"
	"github.com/daryltucker/prompt-sweep/internal/engine"
	"github.com/spf13/cobra"
)

var (
	outputOverride     string
	promptFile         string
	validatorsOverride []string
	attemptsOverride   int
	baseURLOverride    string
	keepRaw            bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sweep",
	Long: `Executes every grid point in order against the generation endpoint.
For each grid point:
1. Call: POST /v1/responses, retried a fixed number of times with a fixed delay.
2. Extract: output[0].content[0].text, or the whole body when that path is missing.
3. Score: apply the configured validators (schema, adherence).
4. Save: one JSON file per run, then summary.json (and summary.csv) after the loop.

Failed grid points are saved as well, with the error body as text.`,
	Example: `  # Run the default temperature grid
  prompt-sweep run

  # Sweep max output tokens instead
  prompt-sweep run --preset max-tokens

  # Score with both strategies and keep the raw body
  prompt-sweep run --validator schema,adherence --keep-raw

  # Use a specific prompt file and output directory
  prompt-sweep run -p ./prompts/strict.txt -o ./results/strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := applyRunOverrides(cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		_, err = engine.Run(cmd.Context(), cfg, cmd.OutOrStdout())
		return err
	},
}

func applyRunOverrides(cfg *config.Config) error {
	if outputOverride != "" {
		cfg.OutputDir = outputOverride
	}
	if promptFile != "" {
		data, err := os.ReadFile(promptFile)
		if err != nil {
			return fmt.Errorf("failed to read prompt file: %w", err)
		}
		cfg.Prompt = string(data)
	}
	if len(validatorsOverride) > 0 {
		cfg.Validators = validatorsOverride
	}
	if attemptsOverride > 0 {
		cfg.Attempts = attemptsOverride
	}
	if baseURLOverride != "" {
		cfg.BaseURL = baseURLOverride
	}
	if keepRaw {
		cfg.KeepRaw = true
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&presetName, "preset", "", "Grid preset to run instead of the configured grid (temperature, max-tokens)")
	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results")
	runCmd.Flags().StringVarP(&promptFile, "prompt-file", "p", "", "Path to a text file containing the prompt (overrides config)")
	runCmd.Flags().StringSliceVar(&validatorsOverride, "validator", nil, "Comma-separated validators (schema, adherence)")
	runCmd.Flags().IntVar(&attemptsOverride, "attempts", 0, "Attempts per grid point (overrides config)")
	runCmd.Flags().StringVar(&baseURLOverride, "base-url", "", "Endpoint base URL (overrides config and "+config.BaseURLEnv+")")
	runCmd.Flags().BoolVar(&keepRaw, "keep-raw", false, "Store the full response body in each record")
}
