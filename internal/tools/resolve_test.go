package tools

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/zonetools/zonebridge/internal/entity"
	"github.com/zonetools/zonebridge/internal/errs"
	"github.com/zonetools/zonebridge/internal/memory"
)

func TestResolveExplicitIDWinsOverMemory(t *testing.T) {
	be := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected for explicit id")
	})
	mem := memory.New()
	mem.SetLastEntity(entity.Entity{"id": "memory-id"})
	mem.SetLastSearchResults([]entity.Entity{{"id": "search-id"}})

	id, display, err := resolveTarget(context.Background(), be, mem, map[string]any{"id": "explicit"})
	if err != nil {
		t.Fatalf("resolveTarget: %v", err)
	}
	if id != "explicit" || display != "" {
		t.Errorf("got (%q, %q), want (explicit, empty)", id, display)
	}
}

func TestResolveByNameIssuesSearch(t *testing.T) {
	be := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Oak" || q.Get("limit") != "1" {
			t.Errorf("query = %v, want q=Oak&limit=1", q)
		}
		jsonOK(w, `{"items":[`+oakProject+`]}`)
	})

	id, display, err := resolveTarget(context.Background(), be, memory.New(), map[string]any{"name": "Oak"})
	if err != nil {
		t.Fatalf("resolveTarget: %v", err)
	}
	if id != "1" || display != "Oak St" {
		t.Errorf("got (%q, %q), want (1, Oak St)", id, display)
	}
}

func TestResolveByNameNotFound(t *testing.T) {
	be := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		jsonOK(w, `{"items":[],"total":0}`)
	})

	_, _, err := resolveTarget(context.Background(), be, memory.New(), map[string]any{"name": "Ghost"})
	if !errs.HasCode(err, errs.CodeNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestResolveFallsBackToLastEntity(t *testing.T) {
	be := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected for memory fallback")
	})
	mem := memory.New()
	mem.SetLastEntity(entity.Entity{"id": "7", "projectName": "Harbor View"})
	mem.SetLastSearchResults([]entity.Entity{{"id": "99"}})

	id, display, err := resolveTarget(context.Background(), be, mem, map[string]any{})
	if err != nil {
		t.Fatalf("resolveTarget: %v", err)
	}
	if id != "7" || display != "Harbor View" {
		t.Errorf("got (%q, %q), want last entity before search results", id, display)
	}
}

func TestResolveFallsBackToFirstSearchResult(t *testing.T) {
	be := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected for memory fallback")
	})
	mem := memory.New()
	mem.SetLastSearchResults([]entity.Entity{
		{"_id": "a", "name": "First"},
		{"_id": "b", "name": "Second"},
	})

	id, display, err := resolveTarget(context.Background(), be, mem, map[string]any{})
	if err != nil {
		t.Fatalf("resolveTarget: %v", err)
	}
	if id != "a" || display != "First" {
		t.Errorf("got (%q, %q), want first search hit", id, display)
	}
}

func TestResolveWithNoContextFailsWithInstruction(t *testing.T) {
	be := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected")
	})

	_, _, err := resolveTarget(context.Background(), be, memory.New(), map[string]any{})
	if !errs.HasCode(err, errs.CodeInvalidArgument) {
		t.Fatalf("err = %v, want InvalidArgument", err)
	}
	if !strings.Contains(err.Error(), "search/get first") {
		t.Errorf("error %q should instruct the caller how to recover", err)
	}
}
