// Package workers provides a fixed-size group of persistent worker goroutines.
//
// A Group is spawned once and then reused for any number of fork/join
// dispatches through RunForEach, which runs an operation once per item and
// returns the results in item order. Items are assigned to workers
// round-robin by index, so with as many items as workers each worker gets
// exactly one item.
//
// A Group is shut down either gracefully with Dispose, which lets queued
// items finish and joins the workers, or forcibly with ForceDispose, which
// cancels in-flight operations, drops queued items and releases any caller
// blocked in RunForEach with ErrTerminated.
package workers
