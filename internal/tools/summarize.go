package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zonetools/zonebridge/internal/errs"
	"github.com/zonetools/zonebridge/internal/llm"
)

// summarizeMaxTokens bounds the ai.summarize reply.
const summarizeMaxTokens = 180

// SummarizeTool handles the ai.summarize tool: condense arbitrary text
// into a few bullet points.
type SummarizeTool struct {
	llm *llm.Client
}

// NewSummarizeTool creates a SummarizeTool.
func NewSummarizeTool(lc *llm.Client) *SummarizeTool {
	return &SummarizeTool{llm: lc}
}

// Definition returns the tool definition for ai.summarize.
func (t *SummarizeTool) Definition() mcp.Tool {
	return mcp.NewTool("ai.summarize",
		mcp.WithDescription("Summarize a block of text into 1-3 bullet points."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to summarize")),
	)
}

// Call checks the credential before anything else — no network traffic
// happens when the completion API is unconfigured.
func (t *SummarizeTool) Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	if !t.llm.Configured() {
		return nil, errs.New(errs.CodeNotConfigured, "ai.summarize requires a completion API key")
	}

	text, err := requiredString(args, "text")
	if err != nil {
		return nil, err
	}

	comp, err := t.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: "Summarize the user's text in 1-3 concise bullet points."},
		{Role: "user", Content: text},
	}, llm.Options{MaxTokens: summarizeMaxTokens, Temperature: 0.3})
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(comp.Text), nil
}
