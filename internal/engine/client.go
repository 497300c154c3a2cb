/*
PURPOSE:
  Client for the hosted text-generation endpoint (POST {base_url}/v1/responses).
  Performs exactly one attempt per call; retries live in retry.go.

REQUIREMENTS:
  User-specified:
  - Bearer auth, JSON content type and accept headers.
  - Body fields: model, input, temperature, max_output_tokens (optional).
  - Latency measured around the whole call, in milliseconds.
  - 60s bound on the whole request.

  Implementation-discovered:
  - A body that is not a JSON object becomes {"raw_text": ...}; never an error.
  - Transport failures (timeout, refused) become status 0 with {"error": ...}
    so the retry wrapper treats them like any other non-200.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (RetryPolicy, Engine)
  - Uses: internal/config, internal/model

ERROR HANDLING:
  - CallOnce never returns an error value on its own; Response.Err carries transport errors.

IMPLEMENTATION RULES:
  - Use net/http.
  - Enforce timeouts with a per-request context.
  - Read the full body before stopping the latency clock.

USAGE:
  c := engine.NewClient(cfg)
  resp := c.CallOnce(ctx, rc, prompt)

SELF-HEALING INSTRUCTIONS:
  - If the upstream path changes, update ResponsesPath.

RELATED FILES:
  - internal/engine/retry.go
  - internal/engine/extract.go

MAINTENANCE:
  - Update when the upstream request contract changes.
*/

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daryltucker/prompt-sweep/internal/config"
	"github.com/daryltucker/prompt-sweep/internal/model"
	"github.com/daryltucker/prompt-sweep/internal/output"
)

// ResponsesPath is appended to the base URL.
const ResponsesPath = "/v1/responses"

// Response is the outcome of a single attempt.
type Response struct {
	Status    int
	LatencyMS int64
	Body      map[string]any
	Err       error // transport-level failure; Status is 0 when set
}

// OK reports whether the attempt succeeded.
func (r Response) OK() bool {
	return r.Status == model.StatusOK
}

// Client talks to the generation endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// DefaultMaxOutputTokens is sent when the grid point has none. 0 omits the field.
	DefaultMaxOutputTokens int
	HTTP                   *http.Client
}

// NewClient creates a Client from the configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:                strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:                 cfg.APIKey,
		Timeout:                cfg.RequestTimeout,
		DefaultMaxOutputTokens: cfg.DefaultMaxOutputTokens,
		HTTP:                   &http.Client{},
	}
}

// CallOnce sends one request and never fails on a malformed body.
func (c *Client) CallOnce(ctx context.Context, rc model.RunConfig, prompt string) Response {
	payload := map[string]any{
		"model":       rc.Model,
		"input":       prompt,
		"temperature": rc.Temperature,
	}
	if n := c.maxOutputTokens(rc); n > 0 {
		payload["max_output_tokens"] = n
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return transportFailure(fmt.Errorf("failed to encode request: %w", err), 0)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+ResponsesPath, bytes.NewReader(reqBody))
	if err != nil {
		return transportFailure(err, 0)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	output.Logger.Debug("Network: Request Sent", "model", rc.Model, "url", req.URL.String())

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return transportFailure(fmt.Errorf("network/connection error: %w", err), time.Since(start))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	latency := time.Since(start)
	if err != nil {
		return transportFailure(fmt.Errorf("failed to read response body: %w", err), latency)
	}

	body, ok := decodeObject(raw)
	if !ok {
		output.Logger.Debug("Response body is not a JSON object", "model", rc.Model, "status", resp.StatusCode)
		body = map[string]any{"raw_text": string(raw)}
	}

	return Response{
		Status:    resp.StatusCode,
		LatencyMS: latency.Milliseconds(),
		Body:      body,
	}
}

func (c *Client) maxOutputTokens(rc model.RunConfig) int {
	if rc.MaxOutputTokens != nil {
		return *rc.MaxOutputTokens
	}
	return c.DefaultMaxOutputTokens
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// decodeObject reports ok=false for anything that is not a JSON object,
// including valid JSON arrays, scalars and null.
func decodeObject(raw []byte) (map[string]any, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

func transportFailure(err error, latency time.Duration) Response {
	return Response{
		LatencyMS: latency.Milliseconds(),
		Body:      map[string]any{"error": err.Error()},
		Err:       err,
	}
}
