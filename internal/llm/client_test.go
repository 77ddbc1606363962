package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zonetools/zonebridge/internal/errs"
)

func TestCompleteFailsFastWithoutCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New("", "gpt-4o-mini", time.Second)
	c.BaseURL = srv.URL

	_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	if !errs.HasCode(err, errs.CodeNotConfigured) {
		t.Fatalf("err = %v, want NotConfigured", err)
	}
	if called {
		t.Error("network call made despite missing credential")
	}
}

func TestCompleteExtractsFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("auth header = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("request not JSON: %v", err)
		}
		if req["model"] != "gpt-4o-mini" {
			t.Errorf("model = %v", req["model"])
		}
		if req["max_tokens"] != float64(120) {
			t.Errorf("max_tokens = %v", req["max_tokens"])
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"A short summary."}}]}`))
	}))
	defer srv.Close()

	c := New("sk-test", "gpt-4o-mini", time.Second)
	c.BaseURL = srv.URL

	got, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "summarize"}}, Options{MaxTokens: 120, Temperature: 0.2})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.Text != "A short summary." {
		t.Errorf("text = %q", got.Text)
	}
}

func TestCompleteEmptyChoicesIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New("sk-test", "gpt-4o-mini", time.Second)
	c.BaseURL = srv.URL

	got, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, Options{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.Text != "" {
		t.Errorf("text = %q, want empty", got.Text)
	}
}

func TestCompleteNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := New("sk-test", "gpt-4o-mini", time.Second)
	c.BaseURL = srv.URL

	_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, Options{})
	if !errs.HasCode(err, errs.CodeHTTP) {
		t.Fatalf("err = %v, want HTTP error", err)
	}
}
