//go:build unix

package step

import (
	"os"
	"os/exec"
	"syscall"
)

// detachProcessGroup moves the child into its own process group so a
// terminal interrupt aimed at the harness does not reach in-flight steps.
func detachProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killGroup(p *os.Process) {
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err != nil {
		_ = p.Kill()
	}
}
