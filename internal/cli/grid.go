package cli

import (
	"fmt"
	"path/filepath"

	"github.com/daryltucker/prompt-sweep/internal/output"
	"github.com/spf13/cobra"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Show the resolved grid and output file names without calling the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		w := cmd.OutOrStdout()
		for i, rc := range cfg.Grid {
			run := i + 1
			fmt.Fprintf(w, "%d. %s -> %s\n", run, rc, filepath.Join(cfg.OutputDir, output.RunFileName(run, rc)))
		}
		fmt.Fprintf(w, "summary -> %s\n", filepath.Join(cfg.OutputDir, cfg.SummaryFile))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.Flags().StringVar(&presetName, "preset", "", "Grid preset to show instead of the configured grid")
}
