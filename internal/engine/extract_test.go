package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{
			name: "expected shape",
			body: map[string]any{"output": []any{map[string]any{"content": []any{map[string]any{"text": "X"}}}}},
			want: "X",
		},
		{
			name: "empty body",
			body: map[string]any{},
			want: "{}",
		},
		{
			name: "nil body",
			body: nil,
			want: "{}",
		},
		{
			name: "empty output",
			body: map[string]any{"output": []any{}},
			want: "{\n  \"output\": []\n}",
		},
		{
			name: "output is not a list",
			body: map[string]any{"output": "nope"},
			want: "{\n  \"output\": \"nope\"\n}",
		},
		{
			name: "content item is not an object",
			body: map[string]any{"output": []any{map[string]any{"content": []any{"x"}}}},
			want: "{\n  \"output\": [\n    {\n      \"content\": [\n        \"x\"\n      ]\n    }\n  ]\n}",
		},
		{
			name: "text is not a string",
			body: map[string]any{"output": []any{map[string]any{"content": []any{map[string]any{"text": 1.0}}}}},
			want: "{\n  \"output\": [\n    {\n      \"content\": [\n        {\n          \"text\": 1\n        }\n      ]\n    }\n  ]\n}",
		},
		{
			name: "raw text wrapper keeps markup unescaped",
			body: map[string]any{"raw_text": "<html>&</html>"},
			want: "{\n  \"raw_text\": \"<html>&</html>\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, ExtractText(tt.body))
			})
		})
	}
}

func TestUsageOf(t *testing.T) {
	assert.Equal(t, map[string]any{}, usageOf(map[string]any{}))
	assert.Equal(t, map[string]any{}, usageOf(map[string]any{"usage": "n/a"}))
	assert.Equal(t, map[string]any{"total_tokens": 3.0}, usageOf(map[string]any{"usage": map[string]any{"total_tokens": 3.0}}))
}
