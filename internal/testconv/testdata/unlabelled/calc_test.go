package testdata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestSum(t *testing.T) {
	assert.Equal(t, 3, Sum(1, 2))
	assert.Equal(t, 30, Sum(10, 20), "Sum(10, 20) should be 30")
	assert.Positive(t, Sum(1, 2))
	assert.Regexp(t, "3", Sum(1, 2))
	assert.InEpsilon(t, 3.0, 3.0, 0.1)
}

func TestHalf(t *testing.T) {
	var err error
	must.NoError(t, err)
	assert.EqualError(t, errors.New("boom"), "boom")
	assert.Equal(t, 2, half(4), "half(4) should be 2")
}

func TestSumObject(t *testing.T) {
	a := assert.New(t)
	a.Equal(3, Sum(1, 2))
	a.Equal(4, Sum(2, 2), "Sum(2, 2) should be 4")
	a.Equal(5, Sum(2, 3), "Sum(2, 2) should be 4")
}

type ProductSuite struct {
	suite.Suite
}

func (s *ProductSuite) TestProductOfZero() {
	s.Equal(0, Product(0, 5))
	s.Require().True(Product(1, 1) == 1)
	s.Positive(Product(2, 2))
	s.Equal(6, Product(2, 3), "Product(2, 3) should be 6")
}

func TestProductSuite(t *testing.T) {
	suite.Run(t, new(ProductSuite))
}

func TestShadowedAssert(t *testing.T) {
	assert := fakeAssert{}
	assert.Equal(t, 1, 1)
}

type fakeAssert struct{}

func (fakeAssert) Equal(t *testing.T, expected, actual int) {}
