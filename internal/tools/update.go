package tools

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/memory"
)

// updatableFields are the recognized fields update will forward. Only
// the ones actually provided go into the PUT body.
var updatableFields = []string{"projectName", "address", "zoningCode", "zoneType", "description"}

// UpdateTool handles the update tool: modify fields on a project.
type UpdateTool struct {
	backend *backend.Client
	memory  *memory.Memory
}

// NewUpdateTool creates an UpdateTool.
func NewUpdateTool(be *backend.Client, mem *memory.Memory) *UpdateTool {
	return &UpdateTool{backend: be, memory: mem}
}

// Definition returns the tool definition for update.
func (t *UpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("update",
		mcp.WithDescription("Update fields on an existing zoning project. Only provided fields change."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project identifier")),
		mcp.WithString("projectName", mcp.Description("New project name")),
		mcp.WithString("address", mcp.Description("New street address")),
		mcp.WithString("zoningCode", mcp.Description("New zoning code")),
		mcp.WithString("zoneType", mcp.Description("New zone type")),
		mcp.WithString("description", mcp.Description("New notes text")),
	)
}

// Call PUTs only the provided fields and remembers the updated entity.
func (t *UpdateTool) Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	id, err := requiredString(args, "id")
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	for _, key := range updatableFields {
		if v, ok := optionalString(args, key); ok {
			body[key] = v
		}
	}

	resp, err := t.backend.Request(ctx, http.MethodPut, "/projects/"+id, nil, body)
	if err != nil {
		return nil, err
	}

	ent := responseEntity(resp)
	touchedEntity(t.memory, ent)
	if ent != nil {
		return structuredResult(ent), nil
	}
	return structuredResult(resp), nil
}
