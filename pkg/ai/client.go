package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/pkg/ai/formatters"

	"go.uber.org/zap"
)

// ErrUpstream wraps every failure caused by the ai-service itself.
var ErrUpstream = errors.New("ai-service unavailable")

// Client calls the internal ai-service. Its answers are passed through to
// callers as opaque JSON.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Language string
	Attempts int
	Backoff  time.Duration
	log      *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		Attempts: 3,
		Backoff:  time.Second,
		log:      log,
	}
}

// Analyze asks for a job match when jobDescription is set and for a general
// review otherwise.
func (c *Client) Analyze(ctx context.Context, doc domain.ResumeContent, jobDescription string) (json.RawMessage, error) {
	var f formatters.Formatter = formatters.NewStatsFormatter(c.Language)
	payload := map[string]interface{}{"resume": doc}
	if jd := strings.TrimSpace(jobDescription); jd != "" {
		f = formatters.NewMatchFormatter(c.Language)
		payload["jobDescription"] = jd
	}

	input, err := f.Input(payload)
	if err != nil {
		return nil, err
	}
	out, err := c.chat(ctx, input)
	if err != nil {
		c.log.Warn("ai analyze failed", zap.String("formatter", f.Name()), zap.Error(err))
		return nil, err
	}
	return out, nil
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

func (c *Client) chat(ctx context.Context, input string) (json.RawMessage, error) {
	b, err := json.Marshal(chatRequest{Agent: "auto", Input: input})
	if err != nil {
		return nil, err
	}

	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	c.log.Debug("ai response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(respBytes)))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	obj, err := extractObject(chatResp.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return obj, nil
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff.
// Only transport errors are retried.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if i < attempts-1 {
			backoff := c.Backoff * time.Duration(1<<i)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// extractObject returns the JSON object in s, tolerating prose or code
// fences around it.
func extractObject(s string) (json.RawMessage, error) {
	var probe map[string]interface{}
	if err := json.Unmarshal([]byte(s), &probe); err == nil {
		return json.RawMessage(s), nil
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		sub := s[start : end+1]
		if err := json.Unmarshal([]byte(sub), &probe); err == nil {
			return json.RawMessage(sub), nil
		}
	}
	return nil, errors.New("ai-service returned non-json content")
}
