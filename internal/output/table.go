package output

import (
	"fmt"
	"io"

	"github.com/daryltucker/prompt-sweep/internal/model"
	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable renders a console summary of the sweep.
func WriteTable(w io.Writer, results []model.RunResult) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 runs)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Model", "Temp", "Max Tokens", "Status", "Latency (ms)", "Valid", "Adherence", "Tokens"})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.Run,
			r.Model,
			r.Temperature,
			dash(optInt(r.MaxOutputTokens)),
			r.Status,
			r.LatencyMS,
			dash(optBool(r.JSONValid)),
			dash(optInt(r.Adherence)),
			dash(usageCell(r, "total_tokens")),
		})
	}

	ok := 0
	for _, r := range results {
		if r.OK() {
			ok++
		}
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d/%d ok", ok, len(results))})
	t.Render()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
