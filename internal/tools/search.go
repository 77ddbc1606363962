package tools

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/listing"
	"github.com/zonetools/zonebridge/internal/memory"
)

// searchFilters maps tool argument names onto the backend's query
// parameters. Order matters only for deterministic URL encoding in tests.
var searchFilters = []struct{ arg, param string }{
	{"q", "q"},
	{"zoningCode", "zoning_code"},
	{"zoneType", "zone_type"},
	{"address", "address"},
	{"city", "city"},
	{"state", "state"},
	{"page", "page"},
	{"limit", "limit"},
}

// SearchTool handles the search tool: list/filter projects.
type SearchTool struct {
	backend *backend.Client
	memory  *memory.Memory
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(be *backend.Client, mem *memory.Memory) *SearchTool {
	return &SearchTool{backend: be, memory: mem}
}

// Definition returns the tool definition for search.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription(
			"Search zoning projects. All filters are optional; with none, lists projects.",
		),
		mcp.WithString("q", mcp.Description("Free-text query matched against name and address")),
		mcp.WithString("zoningCode", mcp.Description("Filter by zoning code, e.g. R1")),
		mcp.WithString("zoneType", mcp.Description("Filter by zone type, e.g. Residential")),
		mcp.WithString("address", mcp.Description("Filter by street address")),
		mcp.WithString("city", mcp.Description("Filter by city")),
		mcp.WithString("state", mcp.Description("Filter by state")),
		mcp.WithNumber("page", mcp.Description("Result page number")),
		mcp.WithNumber("limit", mcp.Description("Max results per page")),
	)
}

// Call forwards the provided filters to the backend list endpoint,
// normalizes whatever shape comes back, and remembers the result set —
// including an empty one, which forgets previous hits.
func (t *SearchTool) Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	query := url.Values{}
	for _, f := range searchFilters {
		if v, ok := optionalString(args, f.arg); ok {
			query.Set(f.param, v)
		}
	}

	resp, err := t.backend.Request(ctx, http.MethodGet, "/projects", query, nil)
	if err != nil {
		return nil, err
	}
	page, err := listing.Normalize(resp)
	if err != nil {
		return nil, err
	}

	t.memory.SetLastSearchResults(page.Items)
	return structuredResult(page), nil
}
