//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Available returns the number of cores the calling process is currently
// allowed to run on. The affinity mask is read on every call, so a mask
// changed after start-up (taskset, cgroup cpusets) is picked up.
func Available() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	if n := set.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// pinToCore pins the current OS thread to the workerID-th core of the
// process' allowed set, wrapping around when there are more workers than cores.
// Must be called after runtime.LockOSThread().
func pinToCore(workerID int) (int, error) {
	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil {
		return 0, err
	}

	cores := make([]int, 0, allowed.Count())
	for c := 0; len(cores) < allowed.Count(); c++ {
		if allowed.IsSet(c) {
			cores = append(cores, c)
		}
	}
	if len(cores) == 0 {
		return 0, unix.EINVAL
	}

	core := cores[workerID%len(cores)]

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, err
	}
	return core, nil
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
