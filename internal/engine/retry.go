package engine

import (
	"context"
	"time"

	"github.com/daryltucker/prompt-sweep/internal/model"
	"github.com/daryltucker/prompt-sweep/internal/output"
)

// Caller performs a single attempt. *Client implements it.
type Caller interface {
	CallOnce(ctx context.Context, rc model.RunConfig, prompt string) Response
}

// RetryPolicy is a fixed-count, fixed-delay retry. Every non-200 outcome is
// retried the same way; there is no backoff, jitter or error classification.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Call runs up to Attempts calls and returns the last response together with
// the number of calls made. The delay only separates attempts.
func (p RetryPolicy) Call(ctx context.Context, caller Caller, rc model.RunConfig, prompt string) (Response, int) {
	attempts := max(p.Attempts, 1)
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var resp Response
	for i := 0; i < attempts; i++ {
		if i > 0 {
			sleep(p.Delay)
			output.Logger.Info("Retrying...", "model", rc.Model, "attempt", i+1)
		}

		resp = caller.CallOnce(ctx, rc, prompt)
		if resp.OK() {
			return resp, i + 1
		}

		args := []any{"model", rc.Model, "attempt", i + 1, "of", attempts, "status", resp.Status}
		if resp.Err != nil {
			args = append(args, "error", resp.Err)
		}
		output.Logger.Warn("Attempt failed", args...)
	}
	return resp, attempts
}
