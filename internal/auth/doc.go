// Package auth provides authentication for uv-gateway.
//
// # Authentication Methods
//
// Two methods are supported:
//
//   - JWT Tokens: API clients authenticate with HS256-signed JWTs carrying
//     a "sub" claim (principal ID) and a "caps" claim (granted capabilities).
//     The signing secret comes from configuration and must be at least
//     MinSecretLength bytes.
//
//   - Static Tokens: Opaque tokens mapped to capability sets in the MCP
//     token store, typically embedded in /mcp/<token> URLs. Managed by the
//     mcp package; this package only covers JWTs.
//
// # Capabilities
//
// Capabilities are plain strings checked against each tool's requirements,
// e.g. "packages:read", "packages:manage", "project:manage", "envs:manage".
// A token with no caps claim authenticates but can call nothing that
// requires a capability.
//
// # Token Management
//
//	verifier, err := auth.NewJWTVerifier(secret)
//	token, err := verifier.Generate("user:alice", []string{"packages:read"}, time.Hour)
//	principal, caps, err := verifier.Verify(token)
package auth
