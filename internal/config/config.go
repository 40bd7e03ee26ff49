// ABOUTME: Configuration loading and parsing for uv-gateway
// ABOUTME: Supports YAML files with env var expansion, env overrides, and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the complete uv-gateway configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	UV      UVConfig      `yaml:"uv"`
	Auth    AuthConfig    `yaml:"auth"`
	MCP     MCPConfig     `yaml:"mcp"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr" env:"UV_GATEWAY_HTTP_ADDR"`
}

// UVConfig holds configuration for locating and invoking the uv binary
type UVConfig struct {
	// Binary is an explicit path to uv. Empty means discover via the
	// virtualenv path and then PATH.
	Binary string `yaml:"binary" env:"UV_GATEWAY_BIN"`
	// VenvPath points at a virtual environment whose uv takes priority
	// over the system one.
	VenvPath string `yaml:"venv_path" env:"UV_MCP_VENV_PATH"`

	InvokeTimeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	InvokeTimeoutRaw string `yaml:"invoke_timeout" env:"UV_GATEWAY_INVOKE_TIMEOUT"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	RequireAuth bool          `yaml:"require_auth" env:"UV_GATEWAY_REQUIRE_AUTH"`
	JWTSecret   string        `yaml:"jwt_secret" env:"UV_GATEWAY_JWT_SECRET"`
	Tokens      []StaticToken `yaml:"tokens"`
}

// StaticToken maps a fixed access token to a capability set
type StaticToken struct {
	Token        string   `yaml:"token"`
	Capabilities []string `yaml:"capabilities"`
}

// MCPConfig holds MCP server behavior configuration
type MCPConfig struct {
	// DefaultCapabilities apply to unauthenticated sessions when
	// auth.require_auth is false.
	DefaultCapabilities []string `yaml:"default_capabilities"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"UV_GATEWAY_LOG_LEVEL"`
	Format string `yaml:"format" env:"UV_GATEWAY_LOG_FORMAT"`
}

// Default returns a configuration suitable for local development: HTTP on
// localhost, no auth, read-only capabilities.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{HTTPAddr: "localhost:8080"},
		MCP:     MCPConfig{DefaultCapabilities: []string{"packages:read"}},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded, and UV_GATEWAY_*
// environment variables override file values. Duration strings are parsed into
// time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(&cfg)
}

// FromEnv builds a configuration from defaults plus environment overrides,
// for running without a config file.
func FromEnv() (*Config, error) {
	return finish(Default())
}

// finish applies env overrides, parses durations, and validates.
func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Auth.RequireAuth && c.Auth.JWTSecret == "" && len(c.Auth.Tokens) == 0 {
		return fmt.Errorf("auth.jwt_secret or auth.tokens is required when auth.require_auth is set")
	}

	for i, tok := range c.Auth.Tokens {
		if tok.Token == "" {
			return fmt.Errorf("auth.tokens[%d].token must not be empty", i)
		}
	}

	if c.UV.InvokeTimeout < 0 {
		return fmt.Errorf("uv.invoke_timeout must not be negative")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.UV.InvokeTimeoutRaw != "" {
		cfg.UV.InvokeTimeout, err = time.ParseDuration(cfg.UV.InvokeTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing invoke_timeout %q: %w", cfg.UV.InvokeTimeoutRaw, err)
		}
	}

	return nil
}
