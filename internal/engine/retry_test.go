package engine

import (
	"context"
	"testing"
	"time"

	"github.com/daryltucker/prompt-sweep/internal/model"
	"github.com/daryltucker/prompt-sweep/internal/output"
	"github.com/stretchr/testify/assert"
)

// callerFunc adapts a function to the Caller interface.
type callerFunc func(ctx context.Context, rc model.RunConfig, prompt string) Response

func (f callerFunc) CallOnce(ctx context.Context, rc model.RunConfig, prompt string) Response {
	return f(ctx, rc, prompt)
}

// sequence returns the given responses in order and counts calls.
func sequence(calls *int, responses ...Response) Caller {
	return callerFunc(func(context.Context, model.RunConfig, string) Response {
		i := min(*calls, len(responses)-1)
		*calls++
		return responses[i]
	})
}

func status(code int) Response {
	return Response{Status: code, LatencyMS: 10, Body: map[string]any{"code": float64(code)}}
}

func TestRetryPolicy(t *testing.T) {
	output.Discard()
	rc := model.RunConfig{Model: "m", Temperature: 0.2}

	tests := []struct {
		name         string
		attempts     int
		responses    []Response
		wantStatus   int
		wantCalls    int
		wantSleeps   int
		wantAttempts int
	}{
		{"always failing", 2, []Response{status(500)}, 500, 2, 1, 2},
		{"first succeeds", 2, []Response{status(200)}, 200, 1, 0, 1},
		{"second succeeds", 2, []Response{status(500), status(200)}, 200, 2, 1, 2},
		{"last failure wins", 2, []Response{status(500), status(429)}, 429, 2, 1, 2},
		{"client errors retried too", 3, []Response{status(400)}, 400, 3, 2, 3},
		{"zero attempts means one", 0, []Response{status(500)}, 500, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			var sleeps []time.Duration
			p := RetryPolicy{
				Attempts: tt.attempts,
				Delay:    2 * time.Second,
				Sleep:    func(d time.Duration) { sleeps = append(sleeps, d) },
			}

			resp, attempts := p.Call(context.Background(), sequence(&calls, tt.responses...), rc, "p")

			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantAttempts, attempts)
			assert.Len(t, sleeps, tt.wantSleeps)
			for _, d := range sleeps {
				assert.Equal(t, 2*time.Second, d)
			}
		})
	}
}

func TestRetryPolicy_ReturnsLastBody(t *testing.T) {
	output.Discard()

	var calls int
	first := Response{Status: 500, Body: map[string]any{"attempt": "first"}}
	last := Response{Status: 503, Body: map[string]any{"attempt": "last"}}
	p := RetryPolicy{Attempts: 2, Sleep: func(time.Duration) {}}

	resp, _ := p.Call(context.Background(), sequence(&calls, first, last), model.RunConfig{Model: "m"}, "p")
	assert.Equal(t, 503, resp.Status)
	assert.Equal(t, "last", resp.Body["attempt"])
}
