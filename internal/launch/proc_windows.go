//go:build windows

package launch

import "os/exec"

// setProcessGroup is a no-op on Windows; CommandContext's default kill of
// the direct child is the best cancellation available there.
func setProcessGroup(cmd *exec.Cmd) {}
