//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the whole process group led by pid,
// which takes Chrome's renderer and GPU helpers down with the browser.
func KillProcessGroup(pid int) {
	// Best effort: the launcher's own Kill still runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
