package engine

import (
	"fmt"

	"github.com/daryltucker/prompt-sweep/internal/output"
)

// ExtractText returns output[0].content[0].text, or the pretty-printed body
// when that path is missing or has the wrong shape. It never fails.
func ExtractText(body map[string]any) string {
	if text, ok := responseText(body); ok {
		return text
	}
	return SerializeBody(body)
}

// SerializeBody pretty-prints a body with two-space indentation.
func SerializeBody(body map[string]any) string {
	if body == nil {
		body = map[string]any{}
	}
	s, err := output.PrettyJSON(body)
	if err != nil {
		return fmt.Sprintf("%v", body)
	}
	return s
}

func responseText(body map[string]any) (string, bool) {
	items, ok := body["output"].([]any)
	if !ok || len(items) == 0 {
		return "", false
	}
	item, ok := items[0].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := item["content"].([]any)
	if !ok || len(content) == 0 {
		return "", false
	}
	part, ok := content[0].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := part["text"].(string)
	return text, ok
}

// usageOf returns the usage mapping, or an empty one when absent.
func usageOf(body map[string]any) map[string]any {
	if usage, ok := body["usage"].(map[string]any); ok {
		return usage
	}
	return map[string]any{}
}
