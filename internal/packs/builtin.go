// ABOUTME: Tool and pack types for in-process tools backed by the uv wrapper.
// ABOUTME: Definitions carry the JSON Schema and capability requirements for MCP clients.

package packs

import (
	"context"
	"encoding/json"
)

// ToolDefinition describes one tool to MCP clients.
type ToolDefinition struct {
	Name        string
	Description string

	// InputSchemaJSON is the tool's input contract as a JSON Schema document.
	InputSchemaJSON string

	// RequiredCapabilities a caller must hold to see and call this tool.
	// Empty means available to everyone.
	RequiredCapabilities []string

	// TimeoutSeconds overrides the router's default execution bound.
	TimeoutSeconds int
}

// ToolHandler executes a built-in tool. It receives the tool input as JSON
// and returns the result as JSON or an error.
type ToolHandler func(ctx context.Context, input json.RawMessage) (json.RawMessage, error)

// BuiltinTool is a tool that executes in the gateway process.
type BuiltinTool struct {
	Definition *ToolDefinition
	Handler    ToolHandler
}

// BuiltinPack is a collection of built-in tools with a pack ID.
type BuiltinPack struct {
	ID    string
	Tools []*BuiltinTool
}

// ToolResponse is the outcome of one routed tool call. Exactly one of
// OutputJSON and Error is meaningful: handler failures are carried as text
// so the MCP layer can surface them as isError tool results with the full
// diagnostic context preserved.
type ToolResponse struct {
	RequestID  string
	OutputJSON string
	Error      string
}
