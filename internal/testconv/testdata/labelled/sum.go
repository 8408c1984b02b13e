package testdata

func Sum(a, b int) int {
	return a + b
}

func main() {
	a := 1
	b := 2
	_ = Sum(a, b)
}
