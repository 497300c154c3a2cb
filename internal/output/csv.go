/*
PURPOSE:
  Writes run results to a CSV file as they complete.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Flat table of the sweep for spreadsheets.

  Implementation-discovered:
  - Overwrite on each sweep; the JSON summary is the source of truth.
  - Empty cells for signals a validator did not produce.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (as a ResultWriter)
  - Consumes: internal/model.RunResult

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).

USAGE:
  w, err := output.NewCSVWriter("results/summary.csv")
  w.Write(result)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when RunResult struct changes.
*/

package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/prompt-sweep/internal/model"
)

var csvHeader = []string{
	"run", "model", "temperature", "max_output_tokens", "status", "latency_ms", "attempts",
	"json_valid", "adherence", "total_tokens", "output_tokens", "timestamp", "error",
}

// CSVWriter handles writing results to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single result to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(r model.RunResult) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if err := cw.writer.Write(csvRecord(r)); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}

func csvRecord(r model.RunResult) []string {
	return []string{
		strconv.Itoa(r.Run),
		r.Model,
		strconv.FormatFloat(r.Temperature, 'g', -1, 64),
		optInt(r.MaxOutputTokens),
		strconv.Itoa(r.Status),
		strconv.FormatInt(r.LatencyMS, 10),
		strconv.Itoa(r.Attempts),
		optBool(r.JSONValid),
		optInt(r.Adherence),
		usageCell(r, "total_tokens"),
		usageCell(r, "output_tokens"),
		strconv.FormatInt(r.Timestamp, 10),
		r.Error,
	}
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func usageCell(r model.RunResult, key string) string {
	n, ok := r.UsageInt(key)
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}
