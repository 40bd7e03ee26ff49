// Package config handles configuration loading for uv-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion
// and UV_GATEWAY_* environment overrides. The package provides validation and
// sensible defaults; running without a config file is supported via FromEnv.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${UV_GATEWAY_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Environment Overrides
//
// After the file is parsed, these variables override file values:
//
//	UV_GATEWAY_HTTP_ADDR       - server.http_addr
//	UV_GATEWAY_BIN             - uv.binary
//	UV_MCP_VENV_PATH           - uv.venv_path
//	UV_GATEWAY_INVOKE_TIMEOUT  - uv.invoke_timeout
//	UV_GATEWAY_REQUIRE_AUTH    - auth.require_auth
//	UV_GATEWAY_JWT_SECRET      - auth.jwt_secret
//	UV_GATEWAY_LOG_LEVEL       - logging.level
//	UV_GATEWAY_LOG_FORMAT      - logging.format
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	uv:
//	  invoke_timeout: "2m"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "localhost:8080"
//
// uv invocation settings:
//
//	uv:
//	  binary: "/usr/local/bin/uv"
//	  venv_path: "/srv/envs/app"
//	  invoke_timeout: "2m"
//
// Authentication:
//
//	auth:
//	  require_auth: true
//	  jwt_secret: "${UV_GATEWAY_JWT_SECRET}"
//	  tokens:
//	    - token: "ci-read-token"
//	      capabilities: ["packages:read"]
//
// MCP behavior:
//
//	mcp:
//	  default_capabilities: ["packages:read"]
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
