//go:build !unix

package step

import (
	"os"
	"os/exec"
)

func detachProcessGroup(cmd *exec.Cmd) {}

func killGroup(p *os.Process) {
	_ = p.Kill()
}
