//go:build !linux && !darwin && !windows

package cpu

import "runtime"

// Available returns the number of logical CPUs.
func Available() int {
	return runtime.NumCPU()
}

// SetupWorkerAffinity locks the goroutine to an OS thread.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
