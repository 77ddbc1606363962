// ZoneBridge: tool-routing bridge for a zoning-project store.
//
// Exposes a fixed tool catalog over MCP stdio (for an AI assistant
// host) and over a local HTTP bridge (for a browser frontend). Each
// tool proxies to the projects REST backend or to an OpenAI-compatible
// completion API.
//
// Usage:
//
//	zonebridge serve    # Start both transports
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/zonetools/zonebridge/internal/config"
	zbserver "github.com/zonetools/zonebridge/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("zonebridge v%s\n", zbserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app, cleanup, err := zbserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt. Cancelling the context stops the
	// HTTP bridge; the stdio transport ends when the host closes stdin.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// The bridge runs alongside the stdio transport. Its failures are
	// fatal: a frontend expecting the bridge should not silently lose it.
	bridgeErr := make(chan error, 1)
	go func() {
		bridgeErr <- app.Bridge.Start(ctx)
	}()

	stdioErr := make(chan error, 1)
	go func() {
		stdioErr <- mcpserver.ServeStdio(app.MCP)
	}()

	select {
	case err := <-bridgeErr:
		return err
	case err := <-stdioErr:
		cancel()
		return err
	case <-ctx.Done():
		return <-bridgeErr
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ZoneBridge v%s — zoning project tool bridge

Usage:
  zonebridge serve   Start the MCP stdio transport and the HTTP bridge

Configuration (environment, .env, or zonebridge.yaml):
  BACKEND_URL         Projects backend base URL (default http://localhost:3333)
  BACKEND_API_KEY     Forwarded as x-api-key (optional)
  REQUEST_TIMEOUT_MS  Outbound request timeout (default 10000)
  OPENAI_API_KEY      Completion API key; enables ai.summarize and /chat
  OPENAI_MODEL        Completion model (default gpt-4o-mini)
  BRIDGE_PORT         HTTP bridge port (default 4545)
  AUDIT_DB_PATH       SQLite invocation log path (optional)

MCP host config:

  {
    "mcpServers": {
      "zonebridge": {
        "command": "zonebridge",
        "args": ["serve"]
      }
    }
  }
`, zbserver.Version)
}
