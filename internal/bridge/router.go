package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zonetools/zonebridge/internal/errs"
	"github.com/zonetools/zonebridge/internal/llm"
)

// routerMaxTokens bounds the routing reply; a plan is tiny.
const routerMaxTokens = 200

// Plan is the router's decision: which tool to call with what arguments.
type Plan struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

// route maps free text onto a tool call by asking the completion API
// for a strict-JSON plan. The model is told to answer with JSON only,
// but replies wrapped in prose or code fences are tolerated: the first
// balanced-brace object is extracted and parsed.
func (s *Server) route(ctx context.Context, text string) (Plan, error) {
	comp, err := s.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: s.routerPrompt()},
		{Role: "user", Content: text},
	}, llm.Options{MaxTokens: routerMaxTokens})
	if err != nil {
		return Plan{}, err
	}

	raw, ok := firstJSONObject(comp.Text)
	if !ok {
		return Plan{}, errs.Newf(errs.CodeRouter, "router reply contains no JSON object: %q", comp.Text)
	}

	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return Plan{}, errs.Wrap(err, errs.CodeRouter, "router reply is not valid JSON")
	}
	if plan.Tool == "" {
		return Plan{}, errs.New(errs.CodeRouter, "router reply names no tool")
	}
	if !s.registry.Has(plan.Tool) {
		return Plan{}, errs.Newf(errs.CodeRouter, "router chose unknown tool %q", plan.Tool)
	}
	if plan.Arguments == nil {
		plan.Arguments = map[string]any{}
	}
	return plan, nil
}

func (s *Server) routerPrompt() string {
	var b strings.Builder
	b.WriteString("You map a user request onto exactly one tool call.\n")
	b.WriteString("Available tools:\n")
	for _, def := range s.registry.Definitions() {
		fmt.Fprintf(&b, "- %s: %s\n", def.Name, def.Description)
	}
	b.WriteString("\nRespond with strict JSON only, no prose: " +
		`{"tool": "<name>", "arguments": {...}}`)
	return b.String()
}

// firstJSONObject extracts the first balanced-brace object from s,
// skipping braces inside JSON string literals.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
