// ABOUTME: Unix process-group setup for uv invocations.
// ABOUTME: Cancellation signals the whole group so descendants die with uv.

//go:build unix

package uv

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup runs the child in its own process group and replaces the
// default cancel with a group-wide SIGKILL. uv commands that spawn
// subprocesses (run, build hooks) would otherwise survive cancellation and
// hold the output pipes open.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return os.ErrProcessDone
		}
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}
}
