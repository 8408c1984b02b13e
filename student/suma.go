// Package student holds the code under test for the suma activity.
package student

// Suma returns a + b.
func Suma(a, b int) int {
	return a + b
}
