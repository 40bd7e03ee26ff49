// ABOUTME: Synchronous child-process invoker for the uv binary.
// ABOUTME: Resolves the binary, captures both streams, and classifies failures.

package uv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// jsonFormatFlag requests machine-readable output from uv.
const jsonFormatFlag = "--format=json"

// DefaultInvokeTimeout bounds a single uv invocation. A hung uv process is
// killed rather than stalling the calling request indefinitely.
const DefaultInvokeTimeout = 2 * time.Minute

// killWaitDelay bounds how long a finished-or-killed invocation may linger
// waiting for descendants that inherited the output pipes. Without it the
// wait is unbounded: killing uv does not kill grandchildren, and Run blocks
// until the last pipe holder exits.
const killWaitDelay = 3 * time.Second

// Invoker runs one uv command and returns its normalized output.
type Invoker interface {
	// Invoke executes uv with the given arguments. When structured is true
	// the output is decoded as JSON where possible. The call blocks until
	// the process exits, the context is cancelled, or the bound is reached.
	Invoke(ctx context.Context, args []string, structured bool) (Result, error)
}

// InvokerConfig holds configuration for a BinaryInvoker.
type InvokerConfig struct {
	// Binary is an explicit path to the uv executable. When set it wins
	// over all discovery.
	Binary string

	// VenvPath binds the invoker to a virtual environment: its script
	// directory is searched for uv before the system PATH.
	VenvPath string

	// Timeout bounds each invocation. Zero means DefaultInvokeTimeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// BinaryInvoker executes the uv binary as a child process.
type BinaryInvoker struct {
	binary   string
	venvPath string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewBinaryInvoker creates an invoker from the given configuration.
func NewBinaryInvoker(cfg InvokerConfig) *BinaryInvoker {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultInvokeTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BinaryInvoker{
		binary:   cfg.Binary,
		venvPath: cfg.VenvPath,
		timeout:  timeout,
		logger:   logger,
	}
}

// Invoke runs uv with argv exactly [binary] + args, appending a single
// JSON-format flag when structured output is requested and the caller has
// not already asked for one.
func (inv *BinaryInvoker) Invoke(ctx context.Context, args []string, structured bool) (Result, error) {
	binary, err := inv.resolveBinary()
	if err != nil {
		return Result{}, err
	}

	argv := args
	if structured && !hasFormatFlag(args) {
		argv = make([]string, 0, len(args)+1)
		argv = append(argv, args...)
		argv = append(argv, jsonFormatFlag)
	}

	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = killWaitDelay
	setProcessGroup(cmd)

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	commandLine := quoteCommand(binary, argv)
	inv.logger.Debug("uv invocation",
		"command", commandLine,
		"structured", structured,
		"elapsed", elapsed,
		"error", runErr,
	)

	if runErr != nil {
		// Timeouts and caller cancellation surface as context errors, not
		// as a command failure with a fake exit code.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("uv command %s: %w", commandLine, ctxErr)
		}

		// uv itself exited cleanly but a descendant kept the output pipes
		// open past the grace period. The command's result stands; the
		// stray writer's remaining output is abandoned.
		if errors.Is(runErr, exec.ErrWaitDelay) {
			return Normalize(stdout.String(), structured), nil
		}

		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return Result{}, &CommandError{
				Command:  commandLine,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}

		// The process never started: unexecutable or vanished binary.
		return Result{}, fmt.Errorf("%w: %v", ErrUVNotFound, runErr)
	}

	return Normalize(stdout.String(), structured), nil
}

// resolveBinary locates the uv executable. Resolution failure is distinct
// from "command ran but failed".
func (inv *BinaryInvoker) resolveBinary() (string, error) {
	if inv.binary != "" {
		if _, err := os.Stat(inv.binary); err != nil {
			return "", fmt.Errorf("%w: %s", ErrUVNotFound, inv.binary)
		}
		return inv.binary, nil
	}

	if inv.venvPath != "" {
		candidate := filepath.Join(inv.venvPath, venvBinDir(), uvExecutable())
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	path, err := exec.LookPath("uv")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUVNotFound, err)
	}
	return path, nil
}

// hasFormatFlag reports whether the caller already requested JSON output.
func hasFormatFlag(args []string) bool {
	for _, arg := range args {
		if arg == jsonFormatFlag {
			return true
		}
	}
	return false
}

// quoteCommand renders the full command line for diagnostics, quoting only
// arguments that need it.
func quoteCommand(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(binary))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\n\"'") {
		return fmt.Sprintf("%q", arg)
	}
	return arg
}

// venvBinDir returns the scripts directory name inside a virtual environment.
func venvBinDir() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

func uvExecutable() string {
	if runtime.GOOS == "windows" {
		return "uv.exe"
	}
	return "uv"
}

// venvPython returns the interpreter path inside a virtual environment,
// used to address an environment's own installed set via --python.
func venvPython(envPath string) string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(envPath, venvBinDir(), name)
}
