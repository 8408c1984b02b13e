package fibonacci

// Fibonacci returns the nth Fibonacci number, 0-indexed.
// Negative positions yield 0.
func Fibonacci(n int) int64 {
	if n <= 0 {
		return 0
	}
	var prev, cur int64 = 0, 1
	for i := 1; i < n; i++ {
		prev, cur = cur, prev+cur
	}
	return cur
}
