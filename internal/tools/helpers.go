// Package tools implements the tool catalog and its dispatcher.
//
// Each tool is a struct with its dependencies injected via constructor.
// Definition() returns the mcp.Tool schema and Call() executes the
// operation against the backend or the completion API, consulting and
// updating the conversational memory on the way. The Registry holds the
// fixed catalog and is the single dispatch point for both transports.
package tools

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/entity"
	"github.com/zonetools/zonebridge/internal/errs"
)

// requiredString extracts a declared-required string argument. It must
// be present as a string and non-blank after trimming; anything else is
// an InvalidArgument naming the field.
func requiredString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", errs.Newf(errs.CodeInvalidArgument, "'%s' is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", errs.Newf(errs.CodeInvalidArgument, "'%s' must be a string", key)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.Newf(errs.CodeInvalidArgument, "'%s' cannot be empty", key)
	}
	return s, nil
}

// optionalString extracts an optional argument, coerced to string.
// Absent, nil, empty-string, false, and zero values all count as
// "not provided" — absent optionals are omitted from outgoing payloads,
// never sent as null or empty.
func optionalString(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", false
	}
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return "", false
		}
		return x, true
	case bool:
		if !x {
			return "", false
		}
		return "true", true
	case float64:
		if x == 0 {
			return "", false
		}
		return entity.Stringify(x), true
	default:
		return entity.Stringify(x), true
	}
}

// intArg extracts an integer argument, returning defaultVal if the key
// is missing or not a number (JSON numbers arrive as float64).
func intArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// structuredResult builds a tool result carrying v as structured content
// plus a JSON text block for hosts that only render text.
func structuredResult(v any) *mcp.CallToolResult {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		text = []byte("{}")
	}
	res := mcp.NewToolResultText(string(text))
	res.StructuredContent = v
	return res
}

// responseEntity extracts the entity from a backend response. Single
// resources usually arrive bare, but one backend revision wraps them as
// {data: {...}}. Returns nil when no object can be found.
func responseEntity(v any) entity.Entity {
	if e := entity.From(v); e != nil {
		if data, ok := e["data"].(map[string]any); ok {
			return entity.Entity(data)
		}
		return e
	}
	return nil
}
