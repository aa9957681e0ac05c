//go:build darwin

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Available returns the number of cores the kernel currently schedules on
// (hw.activecpu), falling back to runtime.NumCPU when the sysctl is missing.
func Available() int {
	n, err := unix.SysctlUint32("hw.activecpu")
	if err != nil || n == 0 {
		return runtime.NumCPU()
	}
	return int(n)
}

// SetupWorkerAffinity gives the worker its own OS thread. macOS has no API
// for binding a thread to a core, so Pinned only locks the thread here.
func SetupWorkerAffinity(int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
