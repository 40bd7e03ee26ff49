// ABOUTME: Windows counterpart of the process-group setup.
// ABOUTME: Relies on the default kill plus WaitDelay to bound the wait.

//go:build windows

package uv

import "os/exec"

// setProcessGroup is a no-op on Windows: there is no process group to
// signal, so cancellation kills the direct child and WaitDelay bounds the
// wait on any orphaned pipe holders.
func setProcessGroup(_ *exec.Cmd) {}
