// Package bridge exposes the tool catalog to a browser frontend over
// HTTP. It is a thin adapter: requests become dispatcher calls, results
// become JSON envelopes with a markdown rendering attached.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/llm"
	"github.com/zonetools/zonebridge/internal/render"
	"github.com/zonetools/zonebridge/internal/tools"
)

// Server is the HTTP bridge listener.
type Server struct {
	registry *tools.Registry
	llm      *llm.Client
	httpSrv  *http.Server
}

// New creates a bridge server listening on the given port.
func New(port int, registry *tools.Registry, lc *llm.Client) *Server {
	s := &Server{registry: registry, llm: lc}
	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.handleTool)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/", s.handleNotFound)
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsMiddleware(mux),
	}
	return s
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("bridge: listening on %s", s.httpSrv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler exposes the full route table; tests drive it directly.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// corsMiddleware allows any origin: the bridge serves a local frontend
// and performs no authentication of its own.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "content-type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type toolRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type chatRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.handleNotFound(w, r)
		return
	}

	var req toolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "'name' is required")
		return
	}

	res, err := s.registry.Invoke(r.Context(), req.Name, req.Arguments)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"content": blocks(res),
		"human":   render.Human(req.Name, res),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.handleNotFound(w, r)
		return
	}

	if !s.llm.Configured() {
		writeError(w, http.StatusBadRequest, "chat requires a completion API key")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "'text' is required")
		return
	}

	plan, err := s.route(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := s.registry.Invoke(r.Context(), plan.Tool, plan.Arguments)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"plan":    plan,
		"content": blocks(res),
		"human":   render.Human(plan.Tool, res),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

// blocks flattens a tool result into transport-neutral content blocks:
// the text blocks first, then the structured payload if any.
func blocks(res *mcp.CallToolResult) []map[string]any {
	out := make([]map[string]any, 0, len(res.Content)+1)
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			out = append(out, map[string]any{"type": "text", "text": tc.Text})
		}
	}
	if res.StructuredContent != nil {
		out = append(out, map[string]any{"type": "structured-data", "data": res.StructuredContent})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("WARNING: bridge: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
