// Package render turns tool results into markdown for the browser
// frontend. Rendering is pure: the same result always produces the same
// string.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/entity"
	"github.com/zonetools/zonebridge/internal/listing"
)

// searchRowLimit caps the search table at this many rows. It is a
// display limit, independent of whatever page size the backend used.
const searchRowLimit = 5

// missingField is the placeholder for fields the entity doesn't carry.
const missingField = "—"

// Human renders a tool result as markdown for the named tool.
func Human(toolName string, res *mcp.CallToolResult) string {
	switch toolName {
	case "search":
		return searchTable(res)
	case "get":
		return entityDetail(res)
	case "create":
		return confirmation("Created", res)
	case "update":
		return confirmation("Updated", res)
	case "delete", "deleteRandom":
		return "✅ " + text(res)
	case "ai.summarize":
		return text(res)
	default:
		return fallback(res)
	}
}

func searchTable(res *mcp.CallToolResult) string {
	page, ok := pageOf(res)
	if !ok || len(page.Items) == 0 {
		return "No projects matched your search."
	}

	var b strings.Builder
	b.WriteString("| Name | Address | Zoning Code | Zone Type | ID |\n")
	b.WriteString("|---|---|---|---|---|\n")

	shown := page.Items
	if len(shown) > searchRowLimit {
		shown = shown[:searchRowLimit]
	}
	for _, e := range shown {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			cell(e.Name()), cell(e.Address()),
			cell(e.ZoningCode()), cell(e.ZoneType()), cell(e.ID()),
		)
	}

	if len(page.Items) > searchRowLimit || page.Total > searchRowLimit {
		fmt.Fprintf(&b, "\n_Showing first %d of %d results._\n", len(shown), page.Total)
	}
	return b.String()
}

func entityDetail(res *mcp.CallToolResult) string {
	e, ok := entityOf(res)
	if !ok {
		return "Project not found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", orMissing(e.DisplayName()))
	fmt.Fprintf(&b, "- Address: %s\n", orMissing(e.Address()))
	fmt.Fprintf(&b, "- Zoning code: %s\n", orMissing(e.ZoningCode()))
	fmt.Fprintf(&b, "- Zone type: %s\n", orMissing(e.ZoneType()))
	fmt.Fprintf(&b, "- ID: %s\n", orMissing(e.ID()))

	if summary, ok := e["aiSummary"].(string); ok && summary != "" {
		fmt.Fprintf(&b, "- Notes summary: %s\n", summary)
	}
	if notes := e.Description(); notes != "" {
		fmt.Fprintf(&b, "\n<details><summary>Notes</summary>\n\n%s\n\n</details>\n", notes)
	}
	return b.String()
}

func confirmation(verb string, res *mcp.CallToolResult) string {
	e, ok := entityOf(res)
	if !ok {
		return verb + " project."
	}
	return fmt.Sprintf("%s project %q — address %s, zoning %s (%s), id %s.",
		verb, orMissing(e.DisplayName()), orMissing(e.Address()),
		orMissing(e.ZoningCode()), orMissing(e.ZoneType()), orMissing(e.ID()),
	)
}

func fallback(res *mcp.CallToolResult) string {
	if t := text(res); t != "" {
		return t
	}
	if res != nil && res.StructuredContent != nil {
		data, err := json.MarshalIndent(res.StructuredContent, "", "  ")
		if err == nil {
			return "```json\n" + string(data) + "\n```"
		}
	}
	return "Done."
}

// text extracts the first text block from a result.
func text(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// pageOf extracts the normalized page from a search result, tolerating
// both the in-process typed value and a JSON-roundtripped map.
func pageOf(res *mcp.CallToolResult) (listing.Page, bool) {
	if res == nil {
		return listing.Page{}, false
	}
	switch v := res.StructuredContent.(type) {
	case listing.Page:
		return v, true
	case map[string]any:
		page, err := listing.Normalize(v)
		if err != nil {
			return listing.Page{}, false
		}
		return page, true
	default:
		return listing.Page{}, false
	}
}

func entityOf(res *mcp.CallToolResult) (entity.Entity, bool) {
	if res == nil {
		return nil, false
	}
	switch v := res.StructuredContent.(type) {
	case entity.Entity:
		return v, true
	case map[string]any:
		return entity.Entity(v), true
	default:
		return nil, false
	}
}

// cell escapes literal pipes so a value can't break the table, and
// substitutes the placeholder for missing fields.
func cell(s string) string {
	if s == "" {
		return missingField
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

func orMissing(s string) string {
	if s == "" {
		return missingField
	}
	return s
}
