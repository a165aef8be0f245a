//go:build windows

package runner

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}

// killProcessGroup kills only the direct child on Windows. Process-group
// semantics are not available here, so descendants spawned by the command
// may survive a timeout. Documented limitation, not a defect.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
