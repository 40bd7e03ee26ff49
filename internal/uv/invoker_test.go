// ABOUTME: Tests for the child-process invoker using stub uv executables.
// ABOUTME: Covers argv construction, exit-code capture, discovery failure, and timeouts.

package uv

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStubBinary creates an executable shell script standing in for uv.
func writeStubBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries use shell scripts")
	}

	path := filepath.Join(t.TempDir(), "uv")
	content := "#!/bin/sh\n" + script + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func newTestInvoker(binary string, timeout time.Duration) *BinaryInvoker {
	return NewBinaryInvoker(InvokerConfig{
		Binary:  binary,
		Timeout: timeout,
		Logger:  slog.Default(),
	})
}

func TestInvoke_CapturesStdout(t *testing.T) {
	bin := writeStubBinary(t, `printf 'hello from uv'`)
	inv := newTestInvoker(bin, 0)

	res, err := inv.Invoke(context.Background(), []string{"lock"}, false)
	require.NoError(t, err)
	assert.Equal(t, "hello from uv", res.Text())
}

func TestInvoke_AppendsSingleFormatFlag(t *testing.T) {
	// The stub echoes its argument vector so the test can assert on it.
	bin := writeStubBinary(t, `printf '%s\n' "$@"`)
	inv := newTestInvoker(bin, 0)

	res, err := inv.Invoke(context.Background(), []string{"pip", "list"}, true)
	require.NoError(t, err)

	args := strings.Split(strings.TrimSpace(res.Text()), "\n")
	assert.Equal(t, []string{"pip", "list", "--format=json"}, args)
}

func TestInvoke_DoesNotDuplicateFormatFlag(t *testing.T) {
	bin := writeStubBinary(t, `printf '%s\n' "$@"`)
	inv := newTestInvoker(bin, 0)

	res, err := inv.Invoke(context.Background(), []string{"pip", "list", "--format=json"}, true)
	require.NoError(t, err)

	count := strings.Count(res.Text(), "--format=json")
	assert.Equal(t, 1, count, "exactly one JSON-format flag must be present")
}

func TestInvoke_StructuredOutputDecoded(t *testing.T) {
	bin := writeStubBinary(t, `printf '[{"name":"flask","version":"3.0.1"}]'`)
	inv := newTestInvoker(bin, 0)

	res, err := inv.Invoke(context.Background(), []string{"pip", "list"}, true)
	require.NoError(t, err)

	_, ok := res.Structured()
	assert.True(t, ok)
}

func TestInvoke_NonZeroExit(t *testing.T) {
	bin := writeStubBinary(t, `printf 'No solution found\n' >&2; exit 3`)
	inv := newTestInvoker(bin, 0)

	_, err := inv.Invoke(context.Background(), []string{"pip", "install", "nonexistent-pkg"}, false)
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "No solution found\n", cmdErr.Stderr, "stderr must be preserved verbatim")
	assert.Contains(t, cmdErr.Command, "pip install nonexistent-pkg")
}

func TestInvoke_MissingBinary(t *testing.T) {
	inv := newTestInvoker(filepath.Join(t.TempDir(), "does-not-exist"), 0)

	_, err := inv.Invoke(context.Background(), []string{"pip", "list"}, false)
	assert.ErrorIs(t, err, ErrUVNotFound)
}

func TestInvoke_TimeoutKillsChild(t *testing.T) {
	bin := writeStubBinary(t, `sleep 30`)
	inv := newTestInvoker(bin, 100*time.Millisecond)

	start := time.Now()
	_, err := inv.Invoke(context.Background(), []string{"sync"}, false)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 5*time.Second, "hung child must be killed, not awaited")
}

func TestInvoke_TimeoutKillsDescendants(t *testing.T) {
	// The background sleep inherits the stdout pipe; killing only the stub
	// would leave it holding the write end for its full lifetime.
	bin := writeStubBinary(t, "sleep 30 &\nsleep 30")
	inv := newTestInvoker(bin, 100*time.Millisecond)

	start := time.Now()
	_, err := inv.Invoke(context.Background(), []string{"run", "job"}, false)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 10*time.Second, "grandchildren must not extend the wait")
}

func TestInvoke_StrayPipeHolderDoesNotFailTheCommand(t *testing.T) {
	// The stub exits successfully while a backgrounded descendant keeps
	// the pipe open. The command's own output and exit status stand.
	bin := writeStubBinary(t, "sleep 30 &\nprintf 'done'")
	inv := newTestInvoker(bin, 0)

	start := time.Now()
	res, err := inv.Invoke(context.Background(), []string{"sync"}, false)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "done", res.Text())
	assert.Less(t, elapsed, 10*time.Second, "stray writers must not extend the wait")
}

func TestInvoke_CallerCancellation(t *testing.T) {
	bin := writeStubBinary(t, `sleep 30`)
	inv := newTestInvoker(bin, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := inv.Invoke(ctx, []string{"sync"}, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveBinary_VenvScriptDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries use shell scripts")
	}

	venv := t.TempDir()
	binDir := filepath.Join(venv, venvBinDir())
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	stub := filepath.Join(binDir, "uv")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\nprintf 'venv uv'\n"), 0o755))

	inv := NewBinaryInvoker(InvokerConfig{VenvPath: venv, Logger: slog.Default()})

	res, err := inv.Invoke(context.Background(), []string{"lock"}, false)
	require.NoError(t, err)
	assert.Equal(t, "venv uv", res.Text())
}

func TestQuoteCommand(t *testing.T) {
	got := quoteCommand("/usr/bin/uv", []string{"pip", "install", "my pkg"})
	assert.Equal(t, `/usr/bin/uv pip install "my pkg"`, got)
}

func TestInvoke_ErrorsDoNotWrapEachOther(t *testing.T) {
	bin := writeStubBinary(t, `exit 1`)
	inv := newTestInvoker(bin, 0)

	_, err := inv.Invoke(context.Background(), []string{"lock"}, false)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUVNotFound), "a command failure is not a discovery failure")
}
