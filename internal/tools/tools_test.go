package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/errs"
	"github.com/zonetools/zonebridge/internal/llm"
	"github.com/zonetools/zonebridge/internal/memory"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// newBackend spins up a mock backend and returns a client pointed at it.
func newBackend(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, "", time.Second)
}

// newLLM returns a configured completion client pointed at a mock provider.
func newLLM(t *testing.T, h http.HandlerFunc) *llm.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := llm.New("sk-test", "gpt-4o-mini", time.Second)
	c.BaseURL = srv.URL
	return c
}

// noLLM returns an unconfigured completion client.
func noLLM() *llm.Client {
	return llm.New("", "gpt-4o-mini", time.Second)
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// jsonOK writes a JSON body with status 200.
func jsonOK(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

const oakProject = `{"id":"1","projectName":"Oak St","address":"1 Oak","zoningCode":"R1","zoneType":"Residential"}`

// ─── Registry ────────────────────────────────────────────────────────────────

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry()
	_, err := r.Invoke(context.Background(), "nope", nil)
	if !errs.HasCode(err, errs.CodeUnknownTool) {
		t.Fatalf("err = %v, want UnknownTool", err)
	}
}

func TestRegistryPreservesOrder(t *testing.T) {
	mem := memory.New()
	be := newBackend(t, func(w http.ResponseWriter, r *http.Request) { jsonOK(w, "[]") })
	r := NewRegistry(
		NewSearchTool(be, mem),
		NewCreateTool(be, mem),
		NewGetTool(be, noLLM(), mem),
	)

	defs := r.Definitions()
	want := []string{"search", "create", "get"}
	if len(defs) != len(want) {
		t.Fatalf("got %d definitions, want %d", len(defs), len(want))
	}
	for i, name := range want {
		if defs[i].Name != name {
			t.Errorf("defs[%d].Name = %q, want %q", i, defs[i].Name, name)
		}
	}
}

func TestRegistryNotifiesObservers(t *testing.T) {
	mem := memory.New()
	be := newBackend(t, func(w http.ResponseWriter, r *http.Request) { jsonOK(w, "[]") })
	r := NewRegistry(NewSearchTool(be, mem))

	var gotTool string
	var gotErr error
	r.Observe(observerFunc(func(tool string, callErr error, _ time.Duration) {
		gotTool, gotErr = tool, callErr
	}))

	if _, err := r.Invoke(context.Background(), "search", nil); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if gotTool != "search" || gotErr != nil {
		t.Errorf("observer saw (%q, %v)", gotTool, gotErr)
	}
}

type observerFunc func(string, error, time.Duration)

func (f observerFunc) OnInvoke(tool string, err error, elapsed time.Duration) { f(tool, err, elapsed) }

// ─── Argument helpers ────────────────────────────────────────────────────────

func TestRequiredStringValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		ok   bool
	}{
		{"present", map[string]any{"k": "v"}, true},
		{"missing", map[string]any{}, false},
		{"blank", map[string]any{"k": "   "}, false},
		{"wrong type", map[string]any{"k": float64(3)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := requiredString(tt.args, "k")
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if !errs.HasCode(err, errs.CodeInvalidArgument) {
					t.Errorf("err = %v, want InvalidArgument", err)
				}
				if err != nil && !strings.Contains(err.Error(), "'k'") {
					t.Errorf("error %q does not name the field", err)
				}
			}
		})
	}
}

func TestOptionalStringSkipsFalsyValues(t *testing.T) {
	args := map[string]any{
		"empty": "", "blank": " ", "zero": float64(0), "no": false,
		"num": float64(5), "yes": true, "s": "x",
	}
	for _, key := range []string{"empty", "blank", "zero", "no", "absent"} {
		if _, ok := optionalString(args, key); ok {
			t.Errorf("optionalString(%q) reported present", key)
		}
	}
	if v, ok := optionalString(args, "num"); !ok || v != "5" {
		t.Errorf("num → (%q, %t)", v, ok)
	}
	if v, ok := optionalString(args, "yes"); !ok || v != "true" {
		t.Errorf("yes → (%q, %t)", v, ok)
	}
	if v, ok := optionalString(args, "s"); !ok || v != "x" {
		t.Errorf("s → (%q, %t)", v, ok)
	}
}
