package mcpserver

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quietline/sanitize/internal/redact"
)

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestHandleSanitizeRedactsAndSummarizes(t *testing.T) {
	ruleset, err := redact.Compile(redact.DefaultRulesYAML, nil, nil, nil, redact.ActiveSetDefault, nil, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	engine := redact.NewRegexEngine(nil)

	result, err := handleSanitize(engine, ruleset, toolRequest(map[string]any{
		"text": "contact me at alice@example.com",
	}))
	if err != nil {
		t.Fatalf("handleSanitize: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result.Content)
	}

	text := firstTextContent(t, result)
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}

	if payload["match_count"].(float64) != 1 {
		t.Errorf("match_count = %v, want 1", payload["match_count"])
	}
	sanitized, _ := payload["sanitized_text"].(string)
	if sanitized == "contact me at alice@example.com" {
		t.Error("expected sanitized_text to differ from input")
	}
}

func TestHandleSanitizeRequiresText(t *testing.T) {
	ruleset, err := redact.Compile(redact.DefaultRulesYAML, nil, nil, nil, redact.ActiveSetDefault, nil, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	engine := redact.NewRegexEngine(nil)

	result, err := handleSanitize(engine, ruleset, toolRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handleSanitize: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for missing text argument")
	}
}

func firstTextContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected at least one content item")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}
