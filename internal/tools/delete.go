package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/memory"
)

// DeleteTool handles the delete tool: remove one project.
type DeleteTool struct {
	backend *backend.Client
	memory  *memory.Memory
}

// NewDeleteTool creates a DeleteTool.
func NewDeleteTool(be *backend.Client, mem *memory.Memory) *DeleteTool {
	return &DeleteTool{backend: be, memory: mem}
}

// Definition returns the tool definition for delete.
func (t *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription(
			"Delete a zoning project by id or name. With neither, deletes the most "+
				"recently viewed project or the first result of the last search.",
		),
		mcp.WithString("id", mcp.Description("Project identifier")),
		mcp.WithString("name", mcp.Description("Project name to look up when the id is unknown")),
	)
}

// Call resolves the target (capturing a display name when the winning
// fallback tier knows one), deletes it, and clears the conversational
// "it" so later calls can't refer to a project that no longer exists.
func (t *DeleteTool) Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	id, display, err := resolveTarget(ctx, t.backend, t.memory, args)
	if err != nil {
		return nil, err
	}

	if _, err := t.backend.Request(ctx, http.MethodDelete, "/projects/"+id, nil, nil); err != nil {
		return nil, err
	}

	t.memory.SetLastEntity(nil)

	msg := fmt.Sprintf("Deleted project %s", id)
	if display != "" {
		msg = fmt.Sprintf("Deleted project %q (%s)", display, id)
	}
	return mcp.NewToolResultText(msg), nil
}
