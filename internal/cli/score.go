package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/daryltucker/prompt-sweep/internal/scoring"
	"github.com/spf13/cobra"
)

var scoreValidators []string

var scoreCmd = &cobra.Command{
	Use:   "score [file...]",
	Short: "Apply validators to saved response text (reads stdin when no file is given)",
	Example: `  prompt-sweep score response.txt
  echo '{"insights":["a","b","c"],"risk":"r","next_action":"n"}' | prompt-sweep score --validator schema,adherence`,
	RunE: func(cmd *cobra.Command, args []string) error {
		validators, err := scoring.LookupAll(scoreValidators)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			printSignals(w, "-", string(data), validators)
			return nil
		}

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			printSignals(w, path, string(data), validators)
		}
		return nil
	},
}

func printSignals(w io.Writer, name, text string, validators []scoring.Validator) {
	fmt.Fprintf(w, "%s:", name)
	for _, v := range validators {
		fmt.Fprintf(w, " %s", v.Validate(text))
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringSliceVar(&scoreValidators, "validator", []string{scoring.NameSchema, scoring.NameAdherence}, "Comma-separated validators")
}
