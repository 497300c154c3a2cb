/*
PURPOSE:
  Defines the core data structures used throughout Prompt Sweep.
  A RunConfig is one grid point; a RunResult is the durable record of one run.

REQUIREMENTS:
  User-specified:
  - Record run index, model, temperature, optional max tokens.
  - Record final status, latency, validity signal, text, usage, timestamp.

  Implementation-discovered:
  - Both validity signals (json_valid, adherence) are optional so either strategy,
    or both, can be recorded without merging their meaning.
  - Timestamp is integer epoch seconds to match existing result files.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output, internal/scoring, internal/config
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Never change JSON tag names; downstream notebooks read them.

USAGE:
  res := model.RunResult{Run: 1, Model: "openai/gpt-5.2", ...}

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add field and update CSV/table writers.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go

MAINTENANCE:
  - Update when adding new signals to capture.
*/

package model

import "fmt"

// StatusOK is the upstream status that marks a successful call.
const StatusOK = 200

// RunConfig is a single point of the parameter grid.
type RunConfig struct {
	Model           string  `yaml:"model" json:"model"`
	Temperature     float64 `yaml:"temperature" json:"temperature"`
	MaxOutputTokens *int    `yaml:"max_output_tokens,omitempty" json:"max_output_tokens,omitempty"`
}

// String renders the grid point for log lines.
func (rc RunConfig) String() string {
	if rc.MaxOutputTokens != nil {
		return fmt.Sprintf("%s | temp=%g | max_tokens=%d", rc.Model, rc.Temperature, *rc.MaxOutputTokens)
	}
	return fmt.Sprintf("%s | temp=%g", rc.Model, rc.Temperature)
}

// RunResult is the persisted outcome of one grid point.
type RunResult struct {
	Run             int            `json:"run"`
	Model           string         `json:"model"`
	Temperature     float64        `json:"temperature"`
	MaxOutputTokens *int           `json:"max_output_tokens,omitempty"`
	Status          int            `json:"status"`
	LatencyMS       int64          `json:"latency_ms"`
	Attempts        int            `json:"attempts"`
	JSONValid       *bool          `json:"json_valid,omitempty"`
	Adherence       *int           `json:"adherence,omitempty"`
	Usage           map[string]any `json:"usage"`
	Text            string         `json:"text"`
	Error           string         `json:"error,omitempty"` // transport failure of the last attempt
	Raw             map[string]any `json:"raw,omitempty"`
	Timestamp       int64          `json:"timestamp"`
}

// OK reports whether the last attempt succeeded.
func (r RunResult) OK() bool {
	return r.Status == StatusOK
}

// UsageInt returns an integer usage counter such as "total_tokens".
// The second value is false when the counter is absent or not numeric.
func (r RunResult) UsageInt(key string) (int, bool) {
	v, ok := r.Usage[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// IntPtr is a convenience for building grids in code.
func IntPtr(v int) *int {
	return &v
}
