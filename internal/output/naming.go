package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/daryltucker/prompt-sweep/internal/model"
)

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// RunFileName builds the per-run file name, e.g. run_1_openai_gpt-5.2_t2.json.
// The max-token suffix is only added when the grid point sets it.
func RunFileName(run int, rc model.RunConfig) string {
	name := fmt.Sprintf("run_%d_%s_t%d", run, SanitizeModel(rc.Model), int(math.Round(rc.Temperature*10)))
	if rc.MaxOutputTokens != nil {
		name += fmt.Sprintf("_m%d", *rc.MaxOutputTokens)
	}
	return name + ".json"
}

// SanitizeModel replaces path separators so a model id is safe as a file name part.
func SanitizeModel(modelName string) string {
	return pathSeparators.Replace(modelName)
}

func runConfigOf(r model.RunResult) model.RunConfig {
	return model.RunConfig{Model: r.Model, Temperature: r.Temperature, MaxOutputTokens: r.MaxOutputTokens}
}
