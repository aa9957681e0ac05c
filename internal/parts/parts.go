// Package parts splits ordered inputs into contiguous, near-equal parts.
//
// Every function here preserves element order both within a part and
// across parts: concatenating the returned parts yields the input.
package parts

import (
	"iter"
)

// Split divides xs into k contiguous parts whose lengths differ by at most one.
// Longer parts come first.
//
// The number of parts is clamped to [1, len(xs)] so that no part is empty
// unless xs itself is empty, in which case a single empty part is returned.
// The returned parts share xs' backing array.
func Split[T any](xs []T, k int) [][]T {
	n := len(xs)
	k = max(1, min(k, n))

	out := make([][]T, 0, k)
	size, extra := n/k, n%k

	start := 0
	for i := range k {
		end := start + size
		if i < extra {
			end++
		}
		out = append(out, xs[start:end:end])
		start = end
	}
	return out
}

// Chunk lazily groups seq into consecutive parts of at most size elements.
// The number of parts is determined by the input; only the last part may be short.
// A size below one is treated as one.
func Chunk[T any](seq iter.Seq[T], size int) iter.Seq[[]T] {
	size = max(1, size)
	return func(yield func([]T) bool) {
		buf := make([]T, 0, size)
		for x := range seq {
			buf = append(buf, x)
			if len(buf) == size {
				if !yield(buf) {
					return
				}
				buf = make([]T, 0, size)
			}
		}
		if len(buf) > 0 {
			yield(buf)
		}
	}
}

// Lengths reports the part sizes Split would produce for n elements and k parts
// without touching any data.
func Lengths(n, k int) []int {
	k = max(1, min(k, n))
	out := make([]int, k)
	for i := range out {
		out[i] = n / k
		if i < n%k {
			out[i]++
		}
	}
	return out
}
