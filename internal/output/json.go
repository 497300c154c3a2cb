/*
PURPOSE:
  Persists run results as pretty-printed JSON documents.
  One file per run plus one summary file holding the ordered sequence.

REQUIREMENTS:
  User-specified:
  - Per-run file named from run index, model, temperature (and max tokens).
  - Summary file written once after the sweep.

  Implementation-discovered:
  - Output directory is created if absent.
  - HTML escaping is disabled so response text stays readable.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.RunResult

ERROR HANDLING:
  - Returns error on directory creation or write failure.

IMPLEMENTATION RULES:
  - Two-space indentation.
  - Thread-safe.

USAGE:
  s, err := output.NewStore("results", "summary.json")
  path, err := s.WriteRun(result)
  path, err = s.WriteSummary(results)

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/output/naming.go

MAINTENANCE:
  - Keep file names stable; analysis notebooks glob on them.
*/

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/daryltucker/prompt-sweep/internal/model"
)

// Store writes run results under a directory.
type Store struct {
	dir         string
	summaryName string
	mu          sync.Mutex
}

// NewStore creates the output directory if needed.
func NewStore(dir, summaryName string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &Store{dir: dir, summaryName: summaryName}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// WriteRun writes a single result to its own file and returns the path.
func (s *Store) WriteRun(r model.RunResult) (string, error) {
	path := filepath.Join(s.dir, RunFileName(r.Run, runConfigOf(r)))
	return path, s.write(path, r)
}

// WriteSummary writes the ordered results and returns the path.
// A nil slice is written as an empty array.
func (s *Store) WriteSummary(results []model.RunResult) (string, error) {
	if results == nil {
		results = []model.RunResult{}
	}
	path := filepath.Join(s.dir, s.summaryName)
	return path, s.write(path, results)
}

func (s *Store) write(path string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := MarshalPretty(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// MarshalPretty encodes v with two-space indentation and no HTML escaping.
// The trailing newline added by the encoder is kept.
func MarshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PrettyJSON is MarshalPretty without the trailing newline, for embedding in text fields.
func PrettyJSON(v any) (string, error) {
	data, err := MarshalPretty(v)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(data, "\n")), nil
}
