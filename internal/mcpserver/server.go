// Package mcpserver exposes the sanitization engine as an MCP tool so
// coding agents and other MCP clients can redact sensitive text inline
// without shelling out to the CLI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quietline/sanitize/internal/redact"
)

const sanitizeDescription = `Redact secrets, tokens, and personal data from a block of text using declarative regex rules (emails, API keys, SSNs, IP addresses, and more). Call this before including untrusted or user-supplied text in a prompt, log, or shared artifact. Returns the sanitized text plus a per-rule summary of what was redacted.`

// NewServer creates and registers the sanitize_text tool on a new MCP
// server backed by engine and ruleset.
func NewServer(engine redact.Engine, ruleset *redact.CompiledRuleSet, version string) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("quietline", version)
	registerTools(s, engine, ruleset)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
func Serve(_ context.Context, engine redact.Engine, ruleset *redact.CompiledRuleSet, version string) error {
	return mcpserver.ServeStdio(NewServer(engine, ruleset, version))
}

func registerTools(s *mcpserver.MCPServer, engine redact.Engine, ruleset *redact.CompiledRuleSet) {
	s.AddTool(mcp.NewTool("sanitize_text",
		mcp.WithDescription(sanitizeDescription),
		mcp.WithString("text",
			mcp.Description("The text to sanitize."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSanitize(engine, ruleset, req)
	})
}

func handleSanitize(engine redact.Engine, ruleset *redact.CompiledRuleSet, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	output, matches, err := engine.Sanitize([]byte(text), ruleset)
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("sanitize: %w", err).Error()), nil
	}

	summary := redact.BuildSummary(matches, redact.DefaultSampleCap)
	counts := make(map[string]int, len(summary))
	for _, name := range summary.SortedRuleNames() {
		counts[name] = summary[name].Count
	}

	return jsonResult(map[string]any{
		"sanitized_text": output,
		"match_count":    len(matches),
		"rule_counts":    counts,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
