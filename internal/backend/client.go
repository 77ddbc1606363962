// Package backend is the HTTP client for the remote projects store.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zonetools/zonebridge/internal/errs"
)

// Client talks to the projects REST backend. Every request gets its own
// deadline; cancellation is advisory only — the remote side may keep
// processing after we stop waiting.
type Client struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// New creates a backend client. apiKey may be empty; timeout must be
// positive (the caller's config layer validates that).
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIKey:     strings.TrimSpace(apiKey),
		Timeout:    timeout,
		HTTPClient: &http.Client{},
	}
}

// Request issues one HTTP call and decodes the response under a uniform
// policy: the body is read fully as text; a non-2xx status fails with an
// HTTP error carrying status and raw body; otherwise the text is JSON
// decoded when possible and returned raw when not. Callers must tolerate
// either return shape.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errs.Wrap(err, errs.CodeInvalidPayload, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeHTTP, "building backend request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.Newf(errs.CodeTimeout, "backend request timed out after %v: %s %s", c.Timeout, method, path)
		}
		return nil, errs.Wrap(err, errs.CodeHTTP, "backend request failed: "+err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.Newf(errs.CodeTimeout, "backend response timed out after %v: %s %s", c.Timeout, method, path)
		}
		return nil, errs.Wrap(err, errs.CodeHTTP, "reading backend response")
	}
	text := string(raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.HTTPError(resp.StatusCode, http.StatusText(resp.StatusCode), text)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Non-JSON success bodies pass through unchanged.
		return text, nil
	}
	return decoded, nil
}
