package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zonetools/zonebridge/internal/errs"
)

// Tool is one named operation in the catalog.
type Tool interface {
	// Definition returns the tool's name, description, and argument
	// schema as exposed identically over both transports.
	Definition() mcp.Tool
	// Call validates args, performs the operation, and returns a result
	// or a coded error. It never mutates args.
	Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)
}

// Observer is notified after every invocation. Optional dependency —
// the registry works fine with none registered.
type Observer interface {
	OnInvoke(tool string, callErr error, elapsed time.Duration)
}

// Registry is the fixed, ordered tool catalog and the dispatch point
// shared by the stdio and HTTP transports. It is immutable after New.
type Registry struct {
	ordered   []Tool
	byName    map[string]Tool
	observers []Observer
}

// NewRegistry builds a registry from the given tools, preserving order.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{
		ordered: tools,
		byName:  make(map[string]Tool, len(tools)),
	}
	for _, t := range tools {
		r.byName[t.Definition().Name] = t
	}
	return r
}

// Observe adds an invocation observer. Nil observers are ignored.
func (r *Registry) Observe(obs Observer) {
	if obs == nil {
		return
	}
	r.observers = append(r.observers, obs)
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Definitions returns the catalog in registration order.
func (r *Registry) Definitions() []mcp.Tool {
	defs := make([]mcp.Tool, 0, len(r.ordered))
	for _, t := range r.ordered {
		defs = append(defs, t.Definition())
	}
	return defs
}

// Invoke dispatches one tool call. Unregistered names fail UnknownTool;
// everything else is the tool's own result or coded error.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, errs.Newf(errs.CodeUnknownTool, "unknown tool %q", name)
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	res, err := t.Call(ctx, args)
	elapsed := time.Since(start)

	for _, obs := range r.observers {
		obs.OnInvoke(name, err, elapsed)
	}
	return res, err
}

// Register adds every tool to the MCP server. Failures surface to the
// host as error-flagged content blocks, never as transport errors — the
// connection stays up.
func (r *Registry) Register(s *server.MCPServer) {
	for _, t := range r.ordered {
		tool := t
		s.AddTool(tool.Definition(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			res, err := r.Invoke(ctx, tool.Definition().Name, req.GetArguments())
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return res, nil
		})
	}
}
