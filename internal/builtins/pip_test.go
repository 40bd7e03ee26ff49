// ABOUTME: Tests for pip pack tool handlers.
// ABOUTME: Uses a scripted in-memory invoker instead of a real uv binary.

package builtins

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/2389/uv-gateway/internal/packs"
	"github.com/2389/uv-gateway/internal/uv"
)

func TestPipList(t *testing.T) {
	inv := &fakeInvoker{stdout: `[{"name":"flask","version":"3.0.0"}]`}
	pack := PipPack(uv.NewClient(inv, nil))

	handler := findHandler(pack, "pip_list")
	if handler == nil {
		t.Fatal("pip_list handler not found")
	}

	result, err := handler(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var pkgs []map[string]string
	if err := json.Unmarshal(result, &pkgs); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0]["name"] != "flask" {
		t.Errorf("unexpected result: %s", result)
	}
	if got := inv.lastArgs; len(got) != 2 || got[0] != "pip" || got[1] != "list" {
		t.Errorf("unexpected args: %v", got)
	}
}

func TestPipListTextFallback(t *testing.T) {
	inv := &fakeInvoker{stdout: "not json"}
	pack := PipPack(uv.NewClient(inv, nil))

	result, err := findHandler(pack, "pip_list")(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(result, &resp); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if resp["output"] != "not json" {
		t.Errorf("unexpected output: %q", resp["output"])
	}
}

func TestPipShow(t *testing.T) {
	inv := &fakeInvoker{stdout: "Name: requests\nVersion: 2.31.0"}
	pack := PipPack(uv.NewClient(inv, nil))

	result, err := findHandler(pack, "pip_show")(context.Background(), json.RawMessage(`{"name": "requests"}`))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	json.Unmarshal(result, &resp)
	if !strings.Contains(resp["output"], "requests") {
		t.Errorf("unexpected output: %q", resp["output"])
	}
	if got := inv.lastArgs; len(got) != 3 || got[2] != "requests" {
		t.Errorf("unexpected args: %v", got)
	}
}

func TestPipShowRequiresName(t *testing.T) {
	pack := PipPack(uv.NewClient(&fakeInvoker{}, nil))

	_, err := findHandler(pack, "pip_show")(context.Background(), json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestPipInstallVersionPin(t *testing.T) {
	inv := &fakeInvoker{stdout: "Installed flask==3.0.0"}
	pack := PipPack(uv.NewClient(inv, nil))

	_, err := findHandler(pack, "pip_install")(context.Background(), json.RawMessage(`{"name": "flask", "version": "3.0.0"}`))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := inv.lastArgs; len(got) != 3 || got[2] != "flask==3.0.0" {
		t.Errorf("unexpected args: %v", got)
	}
}

func TestPipUninstallNonInteractive(t *testing.T) {
	inv := &fakeInvoker{stdout: "Uninstalled flask"}
	pack := PipPack(uv.NewClient(inv, nil))

	_, err := findHandler(pack, "pip_uninstall")(context.Background(), json.RawMessage(`{"name": "flask"}`))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := []string{"pip", "uninstall", "--yes", "flask"}
	if got := inv.lastArgs; len(got) != len(want) || got[2] != "--yes" {
		t.Errorf("unexpected args: %v", got)
	}
}

func TestPipCheckInstalled(t *testing.T) {
	inv := &fakeInvoker{stdout: `[{"name":"Flask","version":"3.0.0"}]`}
	pack := PipPack(uv.NewClient(inv, nil))

	result, err := findHandler(pack, "pip_check_installed")(context.Background(), json.RawMessage(`{"name": "flask"}`))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	json.Unmarshal(result, &resp)
	if resp["installed"] != true {
		t.Errorf("expected installed=true, got %v", resp["installed"])
	}
	if resp["name"] != "flask" {
		t.Errorf("expected queried name echoed back, got %v", resp["name"])
	}
}

func TestPipHandlerPreservesCommandError(t *testing.T) {
	cmdErr := &uv.CommandError{Command: "uv pip install ghost", ExitCode: 1, Stderr: "No solution found"}
	inv := &fakeInvoker{err: cmdErr}
	pack := PipPack(uv.NewClient(inv, nil))

	_, err := findHandler(pack, "pip_install")(context.Background(), json.RawMessage(`{"name": "ghost"}`))
	if err == nil {
		t.Fatal("expected error")
	}
	var got *uv.CommandError
	if !errors.As(err, &got) {
		t.Fatalf("expected *uv.CommandError, got %T", err)
	}
	if got.ExitCode != 1 || !strings.Contains(got.Stderr, "No solution found") {
		t.Errorf("diagnostics lost: %+v", got)
	}
}

func TestPipPassthrough(t *testing.T) {
	inv := &fakeInvoker{stdout: "ok"}
	pack := PipPack(uv.NewClient(inv, nil))

	_, err := findHandler(pack, "pip")(context.Background(), json.RawMessage(`{"args": ["cache", "dir"]}`))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := []string{"pip", "cache", "dir"}
	for i, arg := range want {
		if inv.lastArgs[i] != arg {
			t.Fatalf("unexpected args: %v", inv.lastArgs)
		}
	}

	if _, err := findHandler(pack, "pip")(context.Background(), json.RawMessage(`{"args": []}`)); err == nil {
		t.Error("expected error for empty args")
	}
}

func TestPipPackCapabilities(t *testing.T) {
	pack := PipPack(uv.NewClient(&fakeInvoker{}, nil))

	readOnly := map[string]bool{
		"pip_list": true, "pip_outdated": true, "pip_show": true,
		"pip_check_installed": true, "parse_requirements": true,
	}
	for _, tool := range pack.Tools {
		caps := tool.Definition.RequiredCapabilities
		if len(caps) != 1 {
			t.Fatalf("%s: expected one capability, got %v", tool.Definition.Name, caps)
		}
		want := CapPackagesManage
		if readOnly[tool.Definition.Name] {
			want = CapPackagesRead
		}
		if caps[0] != want {
			t.Errorf("%s: expected %s, got %s", tool.Definition.Name, want, caps[0])
		}
	}
}

// fakeInvoker returns scripted output for every invocation and records
// the last argument vector it saw.
type fakeInvoker struct {
	stdout   string
	err      error
	lastArgs []string
	calls    int
}

func (f *fakeInvoker) Invoke(_ context.Context, args []string, structured bool) (uv.Result, error) {
	f.lastArgs = args
	f.calls++
	if f.err != nil {
		return uv.Result{}, f.err
	}
	return uv.Normalize(f.stdout, structured), nil
}

func findHandler(pack *packs.BuiltinPack, name string) packs.ToolHandler {
	for _, tool := range pack.Tools {
		if tool.Definition.Name == name {
			return tool.Handler
		}
	}
	return nil
}
