//go:build unix

package launch

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup starts the worker in its own process group and points
// cancellation at that group, so the kill reaches helpers the trainer
// forked and not just the interpreter.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}
}
