package tools

import (
	"context"
	"net/http"
	"net/url"

	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/entity"
	"github.com/zonetools/zonebridge/internal/errs"
	"github.com/zonetools/zonebridge/internal/listing"
	"github.com/zonetools/zonebridge/internal/memory"
)

// resolveTarget identifies which project a get/delete-style call refers
// to when the caller didn't spell it out. The fallback order is strict
// and first-success-wins:
//
//  1. explicit id argument
//  2. explicit project name → backend search, first hit
//  3. the last fetched/created/updated entity
//  4. the first entry of the last search results
//
// Alongside the identifier it captures the best display name the winning
// tier knows (empty for tier 1), so delete confirmations can name what
// they removed.
func resolveTarget(ctx context.Context, be *backend.Client, mem *memory.Memory, args map[string]any) (id, display string, err error) {
	if v, ok := optionalString(args, "id"); ok {
		return v, "", nil
	}

	if name, ok := optionalString(args, "projectName"); ok {
		return resolveByName(ctx, be, name)
	}
	if name, ok := optionalString(args, "name"); ok {
		return resolveByName(ctx, be, name)
	}

	if last := mem.LastEntity(); last != nil && last.ID() != "" {
		return last.ID(), last.DisplayName(), nil
	}

	if results := mem.LastSearchResults(); len(results) > 0 && results[0].ID() != "" {
		return results[0].ID(), results[0].DisplayName(), nil
	}

	return "", "", errs.New(errs.CodeInvalidArgument,
		"provide id or name, or run a search/get first")
}

// resolveByName searches the backend for a single project matching name
// and returns the first hit's identifier and display name.
func resolveByName(ctx context.Context, be *backend.Client, name string) (string, string, error) {
	q := url.Values{"q": {name}, "limit": {"1"}}
	resp, err := be.Request(ctx, http.MethodGet, "/projects", q, nil)
	if err != nil {
		return "", "", err
	}
	page, err := listing.Normalize(resp)
	if err != nil {
		return "", "", err
	}
	if len(page.Items) == 0 {
		return "", "", errs.Newf(errs.CodeNotFound, "no project found matching %q", name)
	}
	first := page.Items[0]
	return first.ID(), first.DisplayName(), nil
}

// touchedEntity records e as the conversational "it" after a successful
// create/get/update.
func touchedEntity(mem *memory.Memory, e entity.Entity) {
	if e != nil {
		mem.SetLastEntity(e)
	}
}
