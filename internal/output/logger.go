/*
PURPOSE:
  Provides a structured logger for Prompt Sweep.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. One line per attempt failure, a few per run.

  Implementation-discovered:
  - Needs Info/Warn/Error, plus Debug behind --verbose.
  - JSON handler for non-interactive use (--log-json).

ARCHITECTURE INTEGRATION:
  - Used everywhere.

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")

SELF-HEALING INSTRUCTIONS:
  - Ensure Go 1.21+ is used.

RELATED FILES:
  - internal/cli/root.go (flags)

MAINTENANCE:
  - Add handlers here, not at call sites.
*/

package output

import (
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// Configure rebuilds the logger from CLI flags.
func Configure(w io.Writer, jsonFormat, verbose bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if jsonFormat {
		Logger = slog.New(slog.NewJSONHandler(w, opts))
		return
	}
	Logger = slog.New(slog.NewTextHandler(w, opts))
}

// Discard silences logging; used by tests.
func Discard() {
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}
