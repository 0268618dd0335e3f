//go:build !windows

package shell

import (
	"os/exec"
	"strings"
	"syscall"
)

// setupProcessGroup puts the command in its own process group so the
// whole descendant tree can be signalled together.
func setupProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// terminate kills the process group, falling back to a direct kill of
// the main process.
func terminate(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}

	pid := cmd.Process.Pid

	pgid, err := syscall.Getpgid(pid)
	if err == nil && pgid > 0 {
		if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil {
			_ = syscall.Kill(-pgid, syscall.SIGTERM)
		}
	}

	if err := cmd.Process.Kill(); err != nil {
		if !strings.Contains(err.Error(), "process already finished") {
			return err
		}
	}

	return nil
}
