// ABOUTME: Routes tool calls to built-in tool handlers.
// ABOUTME: Enforces per-tool execution timeouts and converts handler failures to tool errors.

package packs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// ErrToolNotFound indicates the requested tool is not registered.
var ErrToolNotFound = errors.New("tool not found")

// DefaultTimeout is the default bound for tool execution. Package
// mutations (install, sync) can legitimately take minutes.
const DefaultTimeout = 5 * time.Minute

// Router dispatches tool calls to the registered handlers.
type Router struct {
	registry *Registry
	logger   *slog.Logger
	timeout  time.Duration
}

// RouterConfig contains configuration options for the Router.
type RouterConfig struct {
	Registry *Registry
	Logger   *slog.Logger
	Timeout  time.Duration
}

// NewRouter creates a new Router with the given configuration.
func NewRouter(cfg RouterConfig) *Router {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		registry: cfg.Registry,
		logger:   logger,
		timeout:  timeout,
	}
}

// RouteToolCall executes the named tool's handler. Handler failures are
// carried in the response's Error field so the protocol layer can surface
// them as tool errors with the diagnostic text intact; only a missing tool
// or a cancelled context produce a Go error.
func (r *Router) RouteToolCall(ctx context.Context, toolName, inputJSON, requestID string) (*ToolResponse, error) {
	tool := r.registry.GetTool(toolName)
	if tool == nil {
		r.logger.Debug("tool not found in registry",
			"tool_name", toolName,
			"request_id", requestID,
		)
		return nil, ErrToolNotFound
	}

	timeout := r.timeout
	if tool.Definition.TimeoutSeconds > 0 {
		timeout = time.Duration(tool.Definition.TimeoutSeconds) * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.logger.Info("→ dispatching tool call",
		"tool_name", toolName,
		"request_id", requestID,
	)

	output, err := tool.Handler(ctx, json.RawMessage(inputJSON))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// Timeout or caller cancellation is a routing failure, not a
			// tool-reported error.
			return nil, ctxErr
		}
		r.logger.Warn("tool error",
			"tool_name", toolName,
			"request_id", requestID,
			"error", err,
		)
		return &ToolResponse{RequestID: requestID, Error: err.Error()}, nil
	}

	r.logger.Info("← tool responded",
		"tool_name", toolName,
		"request_id", requestID,
	)
	return &ToolResponse{RequestID: requestID, OutputJSON: string(output)}, nil
}

// HasTool checks if a tool with the given name is registered.
func (r *Router) HasTool(toolName string) bool {
	return r.registry.GetTool(toolName) != nil
}

// GetToolDefinition returns the tool definition for a given tool name.
// Returns nil if the tool is not found.
func (r *Router) GetToolDefinition(toolName string) *ToolDefinition {
	tool := r.registry.GetTool(toolName)
	if tool == nil {
		return nil
	}
	return tool.Definition
}
