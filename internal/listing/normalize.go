// Package listing normalizes the backend's heterogeneous list responses
// into one canonical page shape.
//
// The backend has gone through several framework revisions and each one
// wraps collections differently: a bare array, `{items: [...]}`,
// `{data: [...]}`, `{results: [...]}`, `{rows: [...]}`, `{projects: [...]}`,
// or `{data: {items: [...]}}`. Callers should never care which era of the
// backend answered, so every list-style response goes through Normalize.
package listing

import (
	"math"
	"strconv"

	"github.com/zonetools/zonebridge/internal/entity"
	"github.com/zonetools/zonebridge/internal/errs"
)

// Page is the canonical list shape. Total may exceed len(Items) when the
// backend reports a collection-wide count alongside one page.
type Page struct {
	Items []entity.Entity `json:"items"`
	Total int             `json:"total"`
}

// itemKeys is the probe order for array-bearing properties on a wrapping
// object. First match wins; the order is part of the contract and is
// exercised directly by tests.
var itemKeys = []string{"items", "data", "results", "rows", "projects"}

// totalKeys is the probe order for the collection-wide count on a
// wrapping object.
var totalKeys = []string{"total", "count", "totalCount"}

// Normalize maps an arbitrary decoded JSON value onto a Page.
//
// A bare array wraps directly. An object is probed for the first
// array-valued key in itemKeys (also `items` nested one level under
// `data`). An object with no recognized wrapping is treated as a single
// entity rather than an error; only non-object scalars fail.
func Normalize(v any) (Page, error) {
	if seq, ok := v.([]any); ok {
		return Page{Items: toEntities(seq), Total: len(seq)}, nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return Page{}, errs.Newf(errs.CodeInvalidPayload, "cannot normalize list payload of type %T", v)
	}

	if seq, ok := probeItems(obj); ok {
		items := toEntities(seq)
		return Page{Items: items, Total: probeTotal(obj, len(items))}, nil
	}

	// Unrecognized object shape: lenient single-entity fallback.
	return Page{Items: []entity.Entity{entity.Entity(obj)}, Total: 1}, nil
}

func probeItems(obj map[string]any) ([]any, bool) {
	for _, key := range itemKeys {
		if seq, ok := obj[key].([]any); ok {
			return seq, true
		}
	}
	if data, ok := obj["data"].(map[string]any); ok {
		if seq, ok := data["items"].([]any); ok {
			return seq, true
		}
	}
	return nil, false
}

func probeTotal(obj map[string]any, fallback int) int {
	for _, key := range totalKeys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		if n, ok := coerceCount(v); ok {
			return n
		}
	}
	return fallback
}

// coerceCount converts a JSON value to a non-negative count. Strings are
// accepted because at least one backend revision serialized counts as
// strings.
func coerceCount(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return int(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

func toEntities(seq []any) []entity.Entity {
	items := make([]entity.Entity, 0, len(seq))
	for _, v := range seq {
		if e := entity.From(v); e != nil {
			items = append(items, e)
		} else {
			// Non-object list members still count as items; wrap the
			// raw value so nothing silently disappears.
			items = append(items, entity.Entity{"value": v})
		}
	}
	return items
}
