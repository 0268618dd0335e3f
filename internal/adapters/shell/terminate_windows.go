//go:build windows

package shell

import (
	"fmt"
	"os/exec"
	"syscall"
)

// setupProcessGroup hides the console window; tree termination on
// Windows goes through taskkill rather than process groups.
func setupProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.HideWindow = true
}

// terminate kills the process tree via taskkill, falling back to a
// direct kill of the main process.
func terminate(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}

	killCmd := exec.Command("taskkill", "/F", "/T", "/PID", fmt.Sprintf("%d", cmd.Process.Pid))
	killCmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}

	if err := killCmd.Run(); err != nil {
		return cmd.Process.Kill()
	}

	return nil
}
