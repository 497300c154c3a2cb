/*
PURPOSE:
  Defines the root Cobra command for the Prompt Sweep CLI.
  Handles global flags and configuration loading shared by subcommands.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - .env must be loaded before the config reads CONCENTRATE_API_KEY.
  - Logger is configured once, before any subcommand runs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/prompt-sweep/main.go
  - Calls: Child commands (run, grid, score)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/prompt-sweep/main.go
  - internal/config/config.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/daryltucker/prompt-sweep/internal/config"
	"github.com/daryltucker/prompt-sweep/internal/output"
	"github.com/spf13/cobra"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	envFile string
	logJSON bool
	verbose bool

	// Shared by run and grid.
	presetName string

	rootCmd = &cobra.Command{
		Use:           "prompt-sweep",
		Short:         "Parameter sweeps against a hosted text-generation API",
		Long:          `Runs a fixed grid of (model, temperature, max tokens) calls, scores each response and saves the records. Use 'run --help' for sweep options.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.Configure(cmd.ErrOrStderr(), logJSON, verbose)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./prompt_sweep.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default is ./.env if present)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig reads .env, the config file and environment, then applies the preset.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if presetName != "" {
		grid, err := config.Preset(presetName)
		if err != nil {
			return nil, err
		}
		cfg.Grid = grid
	}
	return cfg, nil
}
