// ABOUTME: Tests for envs pack tool handlers.
// ABOUTME: Covers venv creation ordering and environment diff output.

package builtins

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/2389/uv-gateway/internal/uv"
)

func TestVenvCreate(t *testing.T) {
	inv := &fakeInvoker{stdout: "ok"}
	pack := EnvsPack(uv.NewClient(inv, nil))

	input := `{"path": "/tmp/venv", "packages": ["flask", "httpx"]}`
	result, err := findHandler(pack, "venv_create")(context.Background(), json.RawMessage(input))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// one create plus one install per package
	if inv.calls != 3 {
		t.Errorf("expected 3 invocations, got %d", inv.calls)
	}

	var resp map[string]any
	if err := json.Unmarshal(result, &resp); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if resp["path"] != "/tmp/venv" {
		t.Errorf("unexpected path: %v", resp["path"])
	}
	if resp["packages_installed"].(float64) != 2 {
		t.Errorf("unexpected package count: %v", resp["packages_installed"])
	}
}

func TestVenvCreateRequiresPath(t *testing.T) {
	pack := EnvsPack(uv.NewClient(&fakeInvoker{}, nil))

	if _, err := findHandler(pack, "venv_create")(context.Background(), json.RawMessage(`{}`)); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestCompareEnvironments(t *testing.T) {
	// Both environments get the same listing; the diff is empty but the
	// three buckets must still be present in the output.
	inv := &fakeInvoker{stdout: `[{"name":"flask","version":"3.0.0"}]`}
	pack := EnvsPack(uv.NewClient(inv, nil))

	input := `{"left_path": "/envs/a", "right_path": "/envs/b"}`
	result, err := findHandler(pack, "compare_environments")(context.Background(), json.RawMessage(input))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if inv.calls != 2 {
		t.Errorf("expected 2 invocations, got %d", inv.calls)
	}

	var diff map[string]json.RawMessage
	if err := json.Unmarshal(result, &diff); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	for _, key := range []string{"only_left", "only_right", "version_differences"} {
		if _, ok := diff[key]; !ok {
			t.Errorf("missing %s in diff output", key)
		}
	}
}

func TestCompareEnvironmentsRequiresBothPaths(t *testing.T) {
	pack := EnvsPack(uv.NewClient(&fakeInvoker{}, nil))

	if _, err := findHandler(pack, "compare_environments")(context.Background(), json.RawMessage(`{"left_path": "/envs/a"}`)); err == nil {
		t.Error("expected error for missing right_path")
	}
}
