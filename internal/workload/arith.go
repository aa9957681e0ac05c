package workload

// Negate returns -x.
func Negate(x int) int {
	return -x
}

// Add returns a + b.
func Add(a, b int) int {
	return a + b
}

// AddOne returns a one-element slice holding x + 1.
func AddOne(x int) []int {
	return []int{x + 1}
}

// Range returns the integers [0, n).
func Range(n int) []int {
	out := make([]int, max(0, n))
	for i := range out {
		out[i] = i
	}
	return out
}
