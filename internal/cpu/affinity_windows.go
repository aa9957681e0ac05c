//go:build windows

package cpu

import (
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

// Available returns the number of logical CPUs.
func Available() int {
	return runtime.NumCPU()
}

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
// Returns the previous affinity mask on success.
func pinToCore(cpuID int) (uintptr, error) {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = cpuID % numCPU
	}

	// Bit N = CPU N
	mask := uintptr(1) << cpuID

	prevMask, _, err := setThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if prevMask == 0 {
		return 0, err
	}
	return prevMask, nil
}

// SetupWorkerAffinity locks the goroutine to an OS thread and pins it to a core.
// The returned cleanup func unlocks the thread; it should be deferred.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()
	_, _ = pinToCore(workerID)

	return func() {
		runtime.UnlockOSThread()
	}
}
