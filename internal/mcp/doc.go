// Package mcp implements the Model Context Protocol server for external tool access.
//
// # Overview
//
// MCP (Model Context Protocol) is a standard for AI tool integration. This package
// provides an MCP-compatible HTTP server that exposes the uv tool packs and
// package resources to external AI clients (like Claude Desktop, other LLMs, or
// custom applications).
//
// # Protocol
//
// The server implements the Streamable HTTP transport: JSON-RPC 2.0 messages
// over HTTP POST to a single /mcp endpoint, with sessions tracked through the
// Mcp-Session-Id header. Supported methods:
//
//   - initialize               - handshake; creates a session
//   - tools/list               - discover tools, filtered by capabilities
//   - tools/call               - execute a tool
//   - resources/list           - fixed-URI resources
//   - resources/templates/list - parameterized resource families
//   - resources/read           - read a resource by URI
//
// Server-initiated SSE streams are not supported; GET returns 405.
//
// # Authentication
//
// Three credential forms are accepted, tried in order:
//
//   - Path token: /mcp/<token>, resolved against the TokenStore
//   - Query token: /mcp?token=<token>, resolved against the TokenStore
//   - Bearer JWT: Authorization header, verified by the auth package
//
// Each credential maps to a capability set; only tools whose required
// capabilities are covered can be listed and called. With RequireAuth
// disabled, unauthenticated sessions fall back to DefaultCaps.
//
// # Tool Execution
//
// Clients call tools/call to execute a tool:
//
//	{
//	  "jsonrpc": "2.0",
//	  "method": "tools/call",
//	  "params": {
//	    "name": "pip_install",
//	    "arguments": {"name": "flask", "version": "3.0.0"}
//	  },
//	  "id": 2
//	}
//
// Tool failures surface as isError results whose text preserves the failed
// command, exit code, and stderr.
//
// # Usage
//
//	tokenStore := mcp.NewTokenStore()
//	server, err := mcp.NewServer(mcp.Config{
//	    Registry:   registry,
//	    Router:     router,
//	    Catalog:    catalog,
//	    TokenStore: tokenStore,
//	})
//	server.RegisterRoutes(mux)
//
// # Integration with Claude Desktop
//
// Add to Claude Desktop's MCP configuration:
//
//	{
//	  "mcpServers": {
//	    "uv": {
//	      "url": "http://localhost:8080/mcp/<token>"
//	    }
//	  }
//	}
package mcp
