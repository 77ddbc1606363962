// Package llm is the client for an OpenAI-compatible chat-completions
// API. It issues single-turn, non-streaming requests only.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zonetools/zonebridge/internal/errs"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options bounds a completion request.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Completion is the provider's reply. Text is the first choice's message
// content; empty means the provider returned no usable reply, which
// callers must treat as "no summary available", not as an error.
type Completion struct {
	Text string
	Raw  json.RawMessage
}

// Client calls the completion API. A zero APIKey means not configured:
// Complete fails before any network I/O.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// New creates a completion client for the given model. apiKey may be
// empty; Configured reports whether calls can succeed.
func New(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		APIKey:     strings.TrimSpace(apiKey),
		Model:      model,
		Timeout:    timeout,
		HTTPClient: &http.Client{},
	}
}

// Configured reports whether a credential is present.
func (c *Client) Configured() bool { return c.APIKey != "" }

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat-completion request and extracts the reply.
func (c *Client) Complete(ctx context.Context, messages []Message, opts Options) (Completion, error) {
	if !c.Configured() {
		return Completion{}, errs.New(errs.CodeNotConfigured, "no completion API key configured")
	}

	payload, err := json.Marshal(completionRequest{
		Model:       c.Model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return Completion{}, errs.Wrap(err, errs.CodeInvalidPayload, "encoding completion request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Completion{}, errs.Wrap(err, errs.CodeHTTP, "building completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Completion{}, errs.Newf(errs.CodeTimeout, "completion request timed out after %v", c.Timeout)
		}
		return Completion{}, errs.Wrap(err, errs.CodeHTTP, "completion request failed: "+err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, errs.Wrap(err, errs.CodeHTTP, "reading completion response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Completion{}, errs.HTTPError(resp.StatusCode, http.StatusText(resp.StatusCode), string(raw))
	}

	var decoded completionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Completion{}, errs.Wrap(err, errs.CodeHTTP, "malformed completion response")
	}

	text := ""
	if len(decoded.Choices) > 0 {
		text = decoded.Choices[0].Message.Content
	}
	return Completion{Text: text, Raw: raw}, nil
}
