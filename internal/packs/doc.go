// Package packs provides the tool pack system exposed over MCP.
//
// # Overview
//
// Tool packs are collections of related tools. All packs in this gateway are
// built in: their tools execute in-process by calling into the uv wrapper,
// so there is no remote pack transport.
//
// # Architecture
//
// The pack system has two main components:
//
//   - Registry: tracks registered packs, detects tool name collisions, and
//     filters the catalog by caller capabilities
//   - Router: dispatches tools/call requests to tool handlers with per-tool
//     timeout enforcement
//
// # Built-in Packs
//
// The gateway registers 3 packs (see internal/builtins):
//
//	builtin:pip      - package queries and mutations (pip list/show/install/...)
//	builtin:project  - project lifecycle (run, init, add, remove, sync, lock)
//	builtin:envs     - virtualenv creation and environment comparison
//
// # Capabilities
//
// Each tool declares the capabilities a caller must hold. The MCP layer
// resolves a caller's capabilities from its token and the registry filters
// tools/list accordingly; the router re-checks on tools/call.
package packs
