package tools

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/errs"
	"github.com/zonetools/zonebridge/internal/listing"
	"github.com/zonetools/zonebridge/internal/memory"
)

// defaultRandomBatch is how many candidates deleteRandom fetches when
// the caller gives no limit.
const defaultRandomBatch = 25

// DeleteRandomTool handles the deleteRandom tool: delete one project
// chosen uniformly at random from a fetched batch.
type DeleteRandomTool struct {
	backend *backend.Client
	memory  *memory.Memory
	// pick selects an index in [0, n). Injectable so tests can pin the
	// selection; defaults to the shared math/rand source.
	pick func(n int) int
}

// NewDeleteRandomTool creates a DeleteRandomTool with uniform selection.
func NewDeleteRandomTool(be *backend.Client, mem *memory.Memory) *DeleteRandomTool {
	return &DeleteRandomTool{backend: be, memory: mem, pick: rand.IntN}
}

// WithPick overrides the random index selection. Used by tests.
func (t *DeleteRandomTool) WithPick(pick func(n int) int) *DeleteRandomTool {
	t.pick = pick
	return t
}

// Definition returns the tool definition for deleteRandom.
func (t *DeleteRandomTool) Definition() mcp.Tool {
	return mcp.NewTool("deleteRandom",
		mcp.WithDescription("Delete one project chosen at random from the store."),
		mcp.WithNumber("limit", mcp.Description("How many candidates to fetch before choosing (default 25)")),
	)
}

// Call fetches up to limit candidates (clamped to at least one), picks
// one uniformly, deletes it, and clears the conversational "it".
func (t *DeleteRandomTool) Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	limit := intArg(args, "limit", defaultRandomBatch)
	if limit < 1 {
		limit = 1
	}

	q := url.Values{"limit": {strconv.Itoa(limit)}}
	resp, err := t.backend.Request(ctx, http.MethodGet, "/projects", q, nil)
	if err != nil {
		return nil, err
	}
	page, err := listing.Normalize(resp)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, errs.New(errs.CodeNotFound, "no projects available to delete")
	}

	victim := page.Items[t.pick(len(page.Items))]
	id := victim.ID()
	if id == "" {
		return nil, errs.New(errs.CodeInvalidPayload, "selected project has no identifier")
	}

	if _, err := t.backend.Request(ctx, http.MethodDelete, "/projects/"+id, nil, nil); err != nil {
		return nil, err
	}

	t.memory.SetLastEntity(nil)

	label := victim.DisplayName()
	if label == "" {
		label = id
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted randomly selected project %q (%s)", label, id)), nil
}
