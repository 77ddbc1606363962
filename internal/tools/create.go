package tools

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/memory"
)

// CreateTool handles the create tool: register a new zoning project.
type CreateTool struct {
	backend *backend.Client
	memory  *memory.Memory
}

// NewCreateTool creates a CreateTool.
func NewCreateTool(be *backend.Client, mem *memory.Memory) *CreateTool {
	return &CreateTool{backend: be, memory: mem}
}

// Definition returns the tool definition for create.
func (t *CreateTool) Definition() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Create a new zoning project in the backend store."),
		mcp.WithString("projectName", mcp.Required(), mcp.Description("Project display name")),
		mcp.WithString("address", mcp.Required(), mcp.Description("Street address of the parcel")),
		mcp.WithString("zoningCode", mcp.Required(), mcp.Description("Zoning code, e.g. R1, C2")),
		mcp.WithString("zoneType", mcp.Required(), mcp.Description("Zone type, e.g. Residential, Commercial")),
		mcp.WithString("description", mcp.Description("Free-text notes")),
	)
}

// Call validates the required fields, POSTs the project, and remembers
// the created entity as the conversational "it".
func (t *CreateTool) Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	body := map[string]any{}
	for _, key := range []string{"projectName", "address", "zoningCode", "zoneType"} {
		v, err := requiredString(args, key)
		if err != nil {
			return nil, err
		}
		body[key] = v
	}
	if v, ok := optionalString(args, "description"); ok {
		body["description"] = v
	}

	resp, err := t.backend.Request(ctx, http.MethodPost, "/projects", nil, body)
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
