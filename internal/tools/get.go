package tools

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/llm"
	"github.com/zonetools/zonebridge/internal/memory"
)

// notesSummaryMaxTokens bounds the best-effort notes summary on get.
const notesSummaryMaxTokens = 120

// GetTool handles the get tool: fetch one project, optionally enriched
// with an AI summary of its notes.
type GetTool struct {
	backend *backend.Client
	llm     *llm.Client
	memory  *memory.Memory
}

// NewGetTool creates a GetTool.
func NewGetTool(be *backend.Client, lc *llm.Client, mem *memory.Memory) *GetTool {
	return &GetTool{backend: be, llm: lc, memory: mem}
}

// Definition returns the tool definition for get.
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool("get",
		mcp.WithDescription(
			"Fetch one zoning project by id or name. With neither, falls back to the "+
				"most recently viewed project or the first result of the last search.",
		),
		mcp.WithString("id", mcp.Description("Project identifier")),
		mcp.WithString("name", mcp.Description("Project name to look up when the id is unknown")),
	)
}

// Call resolves the target, fetches it, and remembers it. When a
// completion credential is configured and the project has notes, a short
// summary is attached — its failure is recorded on the entity, never
// propagated, because summarization is an enhancement, not part of get.
func (t *GetTool) Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	id, _, err := resolveTarget(ctx, t.backend, t.memory, args)
	if err != nil {
		return nil, err
	}

	resp, err := t.backend.Request(ctx, http.MethodGet, "/projects/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	ent := responseEntity(resp)
	if ent == nil {
		touchedEntity(t.memory, nil)
		return structuredResult(resp), nil
	}

	if t.llm.Configured() {
		if notes := ent.Description(); notes != "" {
			t.attachNotesSummary(ctx, ent, notes)
		}
	}

	touchedEntity(t.memory, ent)
	return structuredResult(ent), nil
}

func (t *GetTool) attachNotesSummary(ctx context.Context, ent map[string]any, notes string) {
	comp, err := t.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: "Summarize the following project notes in 1-2 sentences."},
		{Role: "user", Content: notes},
	}, llm.Options{MaxTokens: notesSummaryMaxTokens, Temperature: 0.2})
	if err != nil {
		ent["aiSummaryError"] = err.Error()
		return
	}
	if comp.Text != "" {
		ent["aiSummary"] = comp.Text
	}
}
