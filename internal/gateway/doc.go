// Package gateway wires the uv-gateway components into a running server.
//
// # Overview
//
// The gateway owns construction order: invoker, uv client, pack registry and
// router, resource catalog, token store, JWT verifier, MCP server, and the
// HTTP server that fronts them all. Everything hangs off one http.ServeMux:
//
//   - /health        - liveness, always 200 while the process runs
//   - /health/ready  - readiness, 200 only when the uv binary responds
//   - /mcp, /mcp/*   - the MCP Streamable HTTP endpoint
//
// # Lifecycle
//
//	gw, err := gateway.New(cfg, logger)
//	err = gw.Run(ctx)
//
// Run serves until the context is canceled or the server fails, then shuts
// down with a five second grace period.
package gateway
