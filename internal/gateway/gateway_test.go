// ABOUTME: Tests for gateway construction and HTTP endpoints.
// ABOUTME: Exercises health handlers and full pack registration over the real mux.

package gateway

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389/uv-gateway/internal/config"
)

func newTestGateway(t *testing.T, mutate func(*config.Config)) *Gateway {
	t.Helper()
	cfg := config.Default()
	cfg.Server.HTTPAddr = "localhost:0"
	if mutate != nil {
		mutate(cfg)
	}
	gw, err := New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return gw
}

func TestNewRegistersAllPacks(t *testing.T) {
	gw := newTestGateway(t, nil)

	packs := gw.Registry().ListPacks()
	if len(packs) != 3 {
		t.Fatalf("expected 3 packs, got %d", len(packs))
	}

	// 9 pip + 6 project + 2 envs tools
	tools := gw.Registry().GetAllTools()
	if len(tools) != 17 {
		t.Errorf("expected 17 tools, got %d", len(tools))
	}
}

func TestNewLoadsStaticTokens(t *testing.T) {
	gw := newTestGateway(t, func(cfg *config.Config) {
		cfg.Auth.Tokens = []config.StaticToken{
			{Token: "ci-token", Capabilities: []string{"packages:read"}},
		}
	})

	caps := gw.TokenStore().GetCapabilities("ci-token")
	if len(caps) != 1 || caps[0] != "packages:read" {
		t.Errorf("unexpected caps: %v", caps)
	}
}

func TestNewRejectsWeakJWTSecret(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.JWTSecret = "short"
	if _, err := New(cfg, slog.Default()); err == nil {
		t.Fatal("expected error for weak JWT secret")
	}
}

func TestHandleHealth(t *testing.T) {
	gw := newTestGateway(t, nil)

	rr := httptest.NewRecorder()
	gw.httpServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "OK" {
		t.Errorf("unexpected body: %q", rr.Body.String())
	}
}

func TestHandleReadyWithoutUV(t *testing.T) {
	// Point at a nonexistent binary so readiness must fail.
	gw := newTestGateway(t, func(cfg *config.Config) {
		cfg.UV.Binary = "/nonexistent/uv"
	})

	rr := httptest.NewRecorder()
	gw.httpServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "uv unavailable") {
		t.Errorf("unexpected body: %q", rr.Body.String())
	}
}

func TestMCPEndpointMounted(t *testing.T) {
	gw := newTestGateway(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/mcp",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`))
	rr := httptest.NewRecorder()
	gw.httpServer.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("Mcp-Session-Id") == "" {
		t.Error("missing Mcp-Session-Id header")
	}
}
