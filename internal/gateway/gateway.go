// ABOUTME: Gateway wiring: builds the uv client, tool packs, MCP server, and HTTP server.
// ABOUTME: Owns the serve loop with graceful shutdown on context cancellation.

package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/2389/uv-gateway/internal/auth"
	"github.com/2389/uv-gateway/internal/builtins"
	"github.com/2389/uv-gateway/internal/config"
	"github.com/2389/uv-gateway/internal/mcp"
	"github.com/2389/uv-gateway/internal/packs"
	"github.com/2389/uv-gateway/internal/uv"
)

// Gateway ties the uv client, tool packs, and MCP server into one HTTP server.
type Gateway struct {
	config     *config.Config
	logger     *slog.Logger
	client     *uv.Client
	registry   *packs.Registry
	router     *packs.Router
	catalog    *builtins.Catalog
	mcpTokens  *mcp.TokenStore
	mcpServer  *mcp.Server
	httpServer *http.Server
}

// New creates a new Gateway instance with the given configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	invoker := uv.NewBinaryInvoker(uv.InvokerConfig{
		Binary:   cfg.UV.Binary,
		VenvPath: cfg.UV.VenvPath,
		Timeout:  cfg.UV.InvokeTimeout,
		Logger:   logger.With("component", "uv"),
	})
	client := uv.NewClient(invoker, logger.With("component", "uv-client"))

	registry := packs.NewRegistry(logger.With("component", "pack-registry"))
	router := packs.NewRouter(packs.RouterConfig{
		Registry: registry,
		Logger:   logger.With("component", "pack-router"),
	})
	if err := registerBuiltinPacks(registry, client); err != nil {
		return nil, err
	}

	catalog := builtins.NewCatalog(client, logger.With("component", "resources"))

	mcpTokens := mcp.NewTokenStore()
	for _, tok := range cfg.Auth.Tokens {
		mcpTokens.AddToken(tok.Token, tok.Capabilities)
	}

	var verifier auth.TokenVerifier
	if cfg.Auth.JWTSecret != "" {
		v, err := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
		if err != nil {
			return nil, fmt.Errorf("creating JWT verifier: %w", err)
		}
		verifier = v
	}

	gw := &Gateway{
		config:    cfg,
		logger:    logger.With("component", "gateway"),
		client:    client,
		registry:  registry,
		router:    router,
		catalog:   catalog,
		mcpTokens: mcpTokens,
	}

	mux := http.NewServeMux()

	// Health endpoints - no auth required
	mux.HandleFunc("/health", gw.handleHealth)
	mux.HandleFunc("/health/ready", gw.handleReady)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Registry:      registry,
		Router:        router,
		Catalog:       catalog,
		TokenStore:    mcpTokens,
		TokenVerifier: verifier,
		Logger:        logger.With("component", "mcp"),
		RequireAuth:   cfg.Auth.RequireAuth,
		DefaultCaps:   cfg.MCP.DefaultCapabilities,
	})
	if err != nil {
		return nil, fmt.Errorf("creating MCP server: %w", err)
	}
	gw.mcpServer = mcpServer
	gw.mcpServer.RegisterRoutes(mux)

	gw.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return gw, nil
}

// registerBuiltinPacks registers the pip, project, and envs packs.
func registerBuiltinPacks(registry *packs.Registry, client *uv.Client) error {
	for _, pack := range []*packs.BuiltinPack{
		builtins.PipPack(client),
		builtins.ProjectPack(client),
		builtins.EnvsPack(client),
	} {
		if err := registry.RegisterPack(pack); err != nil {
			return fmt.Errorf("registering %s: %w", pack.ID, err)
		}
	}
	return nil
}

// Registry exposes the pack registry for CLI inspection.
func (g *Gateway) Registry() *packs.Registry {
	return g.registry
}

// TokenStore exposes the MCP token store for runtime token minting.
func (g *Gateway) TokenStore() *mcp.TokenStore {
	return g.mcpTokens
}

// Run serves HTTP until the context is canceled or the server fails, then
// shuts down gracefully.
func (g *Gateway) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", g.config.Server.HTTPAddr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := g.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		g.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := g.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.Shutdown(ctx)
}

// Shutdown gracefully stops the HTTP server.
func (g *Gateway) Shutdown(ctx context.Context) error {
	if err := g.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return nil
}

// handleHealth returns 200 OK if the server is alive.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 OK if the uv binary is reachable.
func (g *Gateway) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := g.client.Version(ctx)
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintf(w, "uv unavailable: %v", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "ready (%s)", res.Text())
}
