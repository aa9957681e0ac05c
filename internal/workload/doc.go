// Package workload holds the map and reduce functions of the workflows shipped
// with mrpool: building inverted indexes, counting words and the small
// arithmetic workloads used in examples.
//
// Every reduce function here is associative and returns a fresh value, never
// modifying its operands, so results can be combined across workers in any
// grouping.
package workload
