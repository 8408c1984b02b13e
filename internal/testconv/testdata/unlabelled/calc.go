package testdata

func Sum(a, b int) int {
	return a + b
}

func Su(a, b int) int {
	return a + b
}

func Product(a, b int) int {
	return a * b
}

func Diff(a, b int) int {
	return a - b
}

func half(a int) int {
	return a / 2
}
