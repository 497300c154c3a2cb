/*
PURPOSE:
  High-level runner that drives the parameter sweep.
  Loops through the grid in order, one call (with retries) per grid point.

REQUIREMENTS:
  User-specified:
  - One durable record per grid point, numbered by its 1-based grid position.
  - Per-run file and one summary file after the loop.
  - Never abort the sweep because one grid point failed.

  Implementation-discovered:
  - Failed runs are persisted too; their text is the serialized error body.
  - Extra writers (CSV) receive each result as it completes.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine (Client, RetryPolicy), internal/scoring, internal/output

ERROR HANDLING:
  - Logs per-run write errors but continues (resilience).
  - Returns an error only when the summary cannot be written.

IMPLEMENTATION RULES:
  - Strictly sequential. No goroutines.
  - Grid order determines run numbering.

USAGE:
  engine.Run(ctx, cfg, os.Stdout)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go
  - internal/engine/retry.go

MAINTENANCE:
  - Update result assembly when RunResult gains fields.
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/daryltucker/prompt-sweep/internal/config"
	"github.com/daryltucker/prompt-sweep/internal/model"
	"github.com/daryltucker/prompt-sweep/internal/output"
	"github.com/daryltucker/prompt-sweep/internal/scoring"
)

// Sink persists individual results and the final summary.
type Sink interface {
	WriteRun(r model.RunResult) (string, error)
	WriteSummary(results []model.RunResult) (string, error)
}

// ResultWriter receives each result as soon as it is built.
type ResultWriter interface {
	Write(r model.RunResult) error
}

// Engine executes a grid.
type Engine struct {
	Caller     Caller
	Retry      RetryPolicy
	Validators []scoring.Validator
	Sink       Sink
	Writers    []ResultWriter
	KeepRaw    bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// New creates an Engine backed by the HTTP client.
func New(cfg *config.Config, sink Sink) (*Engine, error) {
	validators, err := scoring.LookupAll(cfg.Validators)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Caller:     NewClient(cfg),
		Retry:      RetryPolicy{Attempts: cfg.Attempts, Delay: cfg.RetryDelay},
		Validators: validators,
		Sink:       sink,
		KeepRaw:    cfg.KeepRaw,
		Now:        time.Now,
	}, nil
}

// CallWithRetry runs the retry policy against the engine's caller.
func (e *Engine) CallWithRetry(ctx context.Context, rc model.RunConfig, prompt string) (Response, int) {
	return e.Retry.Call(ctx, e.Caller, rc, prompt)
}

// ExecuteGrid runs every grid point in order and writes the summary.
// The returned slice has exactly one entry per grid point.
func (e *Engine) ExecuteGrid(ctx context.Context, grid []model.RunConfig, prompt string) ([]model.RunResult, error) {
	if len(grid) == 0 {
		return nil, errors.New("grid is empty")
	}

	results := make([]model.RunResult, 0, len(grid))
	for i, rc := range grid {
		run := i + 1
		output.Logger.Info("Running", "run", run, "of", len(grid), "config", rc.String())

		resp, attempts := e.CallWithRetry(ctx, rc, prompt)
		res := e.BuildResult(run, rc, resp, attempts)
		e.record(res)
		results = append(results, res)
	}

	path, err := e.Sink.WriteSummary(results)
	if err != nil {
		return results, fmt.Errorf("failed to write summary: %w", err)
	}
	output.Logger.Info("All runs complete", "runs", len(results), "summary", path)
	return results, nil
}

// BuildResult assembles the record for one grid point from the last attempt.
func (e *Engine) BuildResult(run int, rc model.RunConfig, resp Response, attempts int) model.RunResult {
	var text string
	if resp.OK() {
		text = ExtractText(resp.Body)
	} else {
		text = SerializeBody(resp.Body)
	}

	res := model.RunResult{
		Run:             run,
		Model:           rc.Model,
		Temperature:     rc.Temperature,
		MaxOutputTokens: rc.MaxOutputTokens,
		Status:          resp.Status,
		LatencyMS:       resp.LatencyMS,
		Attempts:        attempts,
		Usage:           usageOf(resp.Body),
		Text:            text,
		Timestamp:       e.now().Unix(),
	}
	if resp.Err != nil {
		res.Error = resp.Err.Error()
	}
	if e.KeepRaw {
		res.Raw = resp.Body
	}
	for _, v := range e.Validators {
		v.Validate(text).Record(&res)
	}
	return res
}

func (e *Engine) record(res model.RunResult) {
	path, err := e.Sink.WriteRun(res)
	if err != nil {
		output.Logger.Error("Failed to write run result", "run", res.Run, "error", err)
	}

	for _, w := range e.Writers {
		if err := w.Write(res); err != nil {
			output.Logger.Error("Failed to write result", "run", res.Run, "error", err)
		}
	}

	args := []any{"run", res.Run, "model", res.Model, "status", res.Status, "latency_ms", res.LatencyMS}
	if res.JSONValid != nil {
		args = append(args, "json_valid", *res.JSONValid)
	}
	if res.Adherence != nil {
		args = append(args, "adherence", *res.Adherence)
	}
	if n, ok := res.UsageInt("total_tokens"); ok {
		args = append(args, "total_tokens", n)
	}
	if n, ok := res.UsageInt("output_tokens"); ok {
		args = append(args, "output_tokens", n)
	}
	if path != "" && err == nil {
		args = append(args, "saved", path)
	}

	if !res.OK() {
		output.Logger.Error("Run failed", append(args, "body", res.Text)...)
		return
	}
	output.Logger.Info("Run complete", args...)
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Run executes the configured sweep end to end and prints a summary table to w.
func Run(ctx context.Context, cfg *config.Config, w io.Writer) ([]model.RunResult, error) {
	store, err := output.NewStore(cfg.OutputDir, cfg.SummaryFile)
	if err != nil {
		return nil, err
	}

	e, err := New(cfg, store)
	if err != nil {
		return nil, err
	}

	if cfg.CSVFile != "" {
		csvPath := filepath.Join(cfg.OutputDir, cfg.CSVFile)
		csvWriter, err := output.NewCSVWriter(csvPath)
		if err != nil {
			return nil, fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
		}
		defer csvWriter.Close()
		e.Writers = append(e.Writers, csvWriter)
	}

	results, err := e.ExecuteGrid(ctx, cfg.Grid, cfg.Prompt)
	output.WriteTable(w, results)
	return results, err
}
