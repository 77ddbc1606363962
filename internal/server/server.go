// Package server wires all components and creates the transport
// instances.
//
// This is the composition root: it creates the concrete clients and
// injects them into the tools that depend on them. No business logic
// lives here — only wiring.
package server

import (
	"fmt"
	"log"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/zonetools/zonebridge/internal/audit"
	"github.com/zonetools/zonebridge/internal/backend"
	"github.com/zonetools/zonebridge/internal/bridge"
	"github.com/zonetools/zonebridge/internal/config"
	"github.com/zonetools/zonebridge/internal/llm"
	"github.com/zonetools/zonebridge/internal/memory"
	"github.com/zonetools/zonebridge/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// App bundles the two transports over one shared dispatcher.
type App struct {
	MCP      *mcpserver.MCPServer
	Bridge   *bridge.Server
	Registry *tools.Registry
}

// New creates the fully wired application. The returned cleanup closes
// the audit database (when enabled) and must be called on shutdown. It
// is always non-nil and safe to call.
func New(cfg config.Config) (*App, func(), error) {
	be := backend.New(cfg.BackendURL, cfg.BackendAPIKey, cfg.RequestTimeout)
	lc := llm.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.RequestTimeout)
	mem := memory.New()

	// The catalog order is fixed; both transports expose it identically.
	registry := tools.NewRegistry(
		tools.NewSummarizeTool(lc),
		tools.NewCreateTool(be, mem),
		tools.NewGetTool(be, lc, mem),
		tools.NewUpdateTool(be, mem),
		tools.NewDeleteTool(be, mem),
		tools.NewDeleteRandomTool(be, mem),
		tools.NewSearchTool(be, mem),
	)

	cleanup := noop
	if cfg.AuditDBPath != "" {
		auditLog, err := audit.Open(cfg.AuditDBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("opening audit log: %w", err)
		}
		registry.Observe(auditLog)
		cleanup = func() {
			if err := auditLog.Close(); err != nil {
				log.Printf("WARNING: closing audit log: %v", err)
			}
		}
	}

	s := mcpserver.NewMCPServer(
		"zonebridge",
		Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(serverInstructions()),
	)
	registry.Register(s)

	return &App{
		MCP:      s,
		Bridge:   bridge.New(cfg.BridgePort, registry, lc),
		Registry: registry,
	}, cleanup, nil
}

func noop() {}

func serverInstructions() string {
	return `ZoneBridge manages zoning projects in a remote store.

Use search to find projects, get to inspect one, and create/update/delete
to change them. get and delete remember context: after a search or get you
can omit the id and the most recent project is used. ai.summarize condenses
arbitrary text and requires a completion API key.`
}
