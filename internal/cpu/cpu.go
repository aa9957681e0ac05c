// Package cpu reports how many cores the process may run on and pins
// worker threads to individual cores.
package cpu

// Affinity binds the calling goroutine to one core for the lifetime of a worker.
// Call Bind at the start of the worker and the returned release func when it exits.
type Affinity interface {
	Bind(workerID int) (release func())
}

// Pinned is the Affinity that locks the goroutine to an OS thread and pins
// that thread to a core chosen by worker id.
type Pinned struct{}

// Bind implements Affinity.
func (Pinned) Bind(workerID int) func() {
	return SetupWorkerAffinity(workerID)
}

// Unpinned is the no-op Affinity.
type Unpinned struct{}

// Bind implements Affinity.
func (Unpinned) Bind(int) func() {
	return func() {}
}
