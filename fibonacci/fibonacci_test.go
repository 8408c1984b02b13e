package fibonacci

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type FibonacciSuite struct {
	suite.Suite
}

func (s *FibonacciSuite) check(cases map[int]int64) {
	for n, want := range cases {
		s.Equal(want, Fibonacci(n), "fibonacci(%d) should return %d", n, want)
	}
}

func (s *FibonacciSuite) TestBaseCases() {
	s.check(map[int]int64{0: 0, 1: 1})
}

func (s *FibonacciSuite) TestSmallValues() {
	s.check(map[int]int64{2: 1, 3: 2, 4: 3, 5: 5})
}

func (s *FibonacciSuite) TestLargerValues() {
	s.check(map[int]int64{6: 8, 7: 13, 8: 21, 9: 34, 10: 55})
}

// 92 is the last position that fits in an int64.
func (s *FibonacciSuite) TestLargestInt64() {
	s.Equal(int64(7540113804746346429), Fibonacci(92), "fibonacci(92) should return 7540113804746346429")
	s.Positive(Fibonacci(92), "fibonacci(92) should not overflow")
}

func (s *FibonacciSuite) TestNegativePositions() {
	s.Zero(Fibonacci(-1), "fibonacci(-1) should return 0")
	s.Zero(Fibonacci(-50), "fibonacci(-50) should return 0")
}

func TestFibonacciSuite(t *testing.T) {
	suite.Run(t, new(FibonacciSuite))
}
