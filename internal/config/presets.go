package config

import (
	"fmt"
	"sort"

	"github.com/daryltucker/prompt-sweep/internal/model"
)

const (
	PresetTemperature = "temperature"
	PresetMaxTokens   = "max-tokens"
)

// DefaultPrompt asks for the three-key JSON object the schema validator checks.
const DefaultPrompt = "Respond ONLY in valid JSON with this exact schema. " +
	"Do not include explanation, markdown, or code fences.\n\n" +
	"{\n" +
	"  \"insights\": [\"\", \"\", \"\"],\n" +
	"  \"risk\": \"\",\n" +
	"  \"next_action\": \"\"\n" +
	"}\n\n" +
	"Text:\n" +
	"Revenue grew 18% YoY, but churn increased from 3.1% to 4.0%. " +
	"Support tickets rose 25% after a pricing change. " +
	"New enterprise deals improved ARPA."

var presets = map[string][]model.RunConfig{
	PresetTemperature: {
		{Model: "openai/gpt-5.2", Temperature: 0.2},
		{Model: "openai/gpt-5.2", Temperature: 0.8},
		{Model: "anthropic/claude-opus-4-5", Temperature: 0.2},
		{Model: "anthropic/claude-opus-4-5", Temperature: 0.8},
	},
	PresetMaxTokens: {
		{Model: "openai/gpt-5.2", Temperature: 0.2, MaxOutputTokens: model.IntPtr(120)},
		{Model: "openai/gpt-5.2", Temperature: 0.2, MaxOutputTokens: model.IntPtr(800)},
		{Model: "anthropic/claude-opus-4-5", Temperature: 0.2, MaxOutputTokens: model.IntPtr(120)},
		{Model: "anthropic/claude-opus-4-5", Temperature: 0.2, MaxOutputTokens: model.IntPtr(800)},
	},
}

// Preset returns a copy of a named grid.
func Preset(name string) ([]model.RunConfig, error) {
	grid, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown grid preset %q (available: %v)", name, PresetNames())
	}
	out := make([]model.RunConfig, len(grid))
	for i, rc := range grid {
		out[i] = rc
		if rc.MaxOutputTokens != nil {
			out[i].MaxOutputTokens = model.IntPtr(*rc.MaxOutputTokens)
		}
	}
	return out, nil
}

// PresetNames lists the available presets in stable order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
