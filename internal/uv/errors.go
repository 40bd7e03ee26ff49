// ABOUTME: Error taxonomy for uv invocations: binary missing, command failed, file missing.
// ABOUTME: Failures carry full diagnostic context and propagate unmodified to callers.

package uv

import (
	"errors"
	"fmt"
)

// ErrUVNotFound indicates the uv binary could not be located or executed.
// Distinct from a command that ran and failed.
var ErrUVNotFound = errors.New("uv binary not found")

// ErrFileNotFound indicates a local file precondition failed before any
// process was spawned. Raised by this layer, not delegated to uv.
var ErrFileNotFound = errors.New("file not found")

// CommandError is returned when a uv command exits non-zero. It preserves
// the full command line, the child's exit code, and stderr verbatim.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("uv command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
}
